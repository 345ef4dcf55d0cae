package model

import "time"

// Credentials are the LibreLinkUp account credentials. They are forwarded to
// the cloud login endpoint and never persisted by this service.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthTicket is the bearer token issued by the login exchange.
type AuthTicket struct {
	Token    string `json:"token"`
	Expires  int64  `json:"expires"`
	Duration int64  `json:"duration"`
}

// ExpiresAt returns the ticket expiry as an absolute time.
func (t AuthTicket) ExpiresAt() time.Time {
	return time.Unix(t.Expires, 0).UTC()
}

// SessionState is the authenticated session against the LibreLinkUp service.
// It is threaded explicitly through every call; a new value is produced only
// by a successful login, never mutated from inside response parsing.
type SessionState struct {
	PatientID string     `json:"patientId"`
	Ticket    AuthTicket `json:"ticket"`
}

// Authenticated reports whether the session carries a usable token at the
// given instant. An empty token or a past expiry makes the session unusable.
func (s SessionState) Authenticated(now time.Time) bool {
	return s.Ticket.Token != "" && now.Before(s.Ticket.ExpiresAt())
}
