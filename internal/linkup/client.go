// Package linkup implements the LibreLinkUp cloud sync client: login,
// graph/logbook retrieval, sensor reconciliation and normalization of wire
// records into glucose readings and alarm events.
package linkup

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/model"
)

const (
	loginPath = "/llu/auth/login"

	defaultUserAgent = "LibreLinkUp/4.12.0"
	defaultProduct   = "llu.android"
	defaultVersion   = "4.12.0"

	// Service-level auth failure code carried in the login body, distinct
	// from the HTTP status.
	serviceStatusAuthFailure = 2
)

// AdoptPolicy decides whether a sensor observed in the service's
// active-sensor list should become the locally tracked identity when none is
// assigned yet.
type AdoptPolicy func(candidate model.Sensor) bool

// DefaultAdoptPolicy adopts newer-family (product type 4) sensors only.
func DefaultAdoptPolicy(candidate model.Sensor) bool {
	return candidate.ProductType == model.SensorFamilyCurrent
}

// AdoptNone never auto-adopts a sensor.
func AdoptNone(model.Sensor) bool { return false }

type Options struct {
	// Site is the LibreLinkUp base URL, e.g. https://api-eu.libreview.io.
	Site string
	// ScrapeLogbook enables the secondary logbook fetch when the graph
	// response rotates a token.
	ScrapeLogbook bool
	// HTTPClient owns transport behavior including timeouts. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
	// AdoptPolicy defaults to DefaultAdoptPolicy.
	AdoptPolicy AdoptPolicy

	UserAgent string
	Product   string
	Version   string
}

type Client struct {
	site          string
	scrapeLogbook bool
	http          *http.Client
	adopt         AdoptPolicy
	userAgent     string
	product       string
	version       string
}

func New(opts Options) *Client {
	c := &Client{
		site:          opts.Site,
		scrapeLogbook: opts.ScrapeLogbook,
		http:          opts.HTTPClient,
		adopt:         opts.AdoptPolicy,
		userAgent:     opts.UserAgent,
		product:       opts.Product,
		version:       opts.Version,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.adopt == nil {
		c.adopt = DefaultAdoptPolicy
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.product == "" {
		c.product = defaultProduct
	}
	if c.version == "" {
		c.version = defaultVersion
	}
	return c
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("product", c.product)
	req.Header.Set("version", c.version)
}

// getConnections issues the authenticated GET shared by the graph and
// logbook fetches; only the trailing path segment and bearer token differ.
func (c *Client) getConnections(ctx context.Context, token, patientID, view string) ([]byte, error) {
	url := fmt.Sprintf("%s/llu/connections/%s/%s", c.site, patientID, view)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Internal("failed to build request").WithCause(err)
	}
	c.setCommonHeaders(req)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NoConnection(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NoConnection(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().Str("view", view).Msg("LibreLinkUp request not authorized")
	}

	return raw, nil
}
