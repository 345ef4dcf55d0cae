package linkup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/model"
)

// Authenticate performs the login exchange and returns the resulting session
// together with the raw response body. Missing ticket fields are tolerated
// and left at their zero values; the session is simply unauthenticated then.
// No retry is performed.
func (c *Client) Authenticate(ctx context.Context, creds model.Credentials) (model.SessionState, []byte, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return model.SessionState{}, nil, apperrors.Internal("failed to encode credentials").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.site+loginPath, bytes.NewReader(body))
	if err != nil {
		return model.SessionState{}, nil, apperrors.Internal("failed to build login request").WithCause(err)
	}
	c.setCommonHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.SessionState{}, nil, apperrors.NoConnection(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.SessionState{}, nil, apperrors.NoConnection(err)
	}

	// A 401 is not conclusive on its own; the body status decides.
	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().Int("status", resp.StatusCode).Msg("login not authorized")
	}

	var parsed loginResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return model.SessionState{}, nil, apperrors.NoConnection(err)
	}

	if parsed.Status == serviceStatusAuthFailure {
		return model.SessionState{}, raw, apperrors.NotAuthenticated(parsed.Error.Message)
	}

	session := model.SessionState{
		PatientID: parsed.Data.User.ID,
		Ticket: model.AuthTicket{
			Token:    parsed.Data.AuthTicket.Token,
			Expires:  parsed.Data.AuthTicket.Expires,
			Duration: parsed.Data.AuthTicket.Duration,
		},
	}

	log.Info().
		Str("patientId", session.PatientID).
		Time("tokenExpires", session.Ticket.ExpiresAt()).
		Msg("LibreLinkUp login succeeded")

	return session, raw, nil
}
