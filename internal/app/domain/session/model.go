// Package session defines the authentication session model.
package session

import (
	"strings"
	"time"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Session is an issued authentication session. The token is a signed JWT; the
// record exists so sessions can be listed and expired server-side.
type Session struct {
	entity.Base
	UserID    string    `json:"user_id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Validate checks the record shape before persistence.
func Validate(s *Session) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(s.UserID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "user_id", Message: "user_id is required"})
	}
	if strings.TrimSpace(s.Token) == "" {
		issues = append(issues, errors.FieldIssue{Field: "token", Message: "token is required"})
	}
	if s.ExpiresAt.IsZero() {
		issues = append(issues, errors.FieldIssue{Field: "expires_at", Message: "expires_at is required"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid session", issues...)
	}
	return nil
}
