// Package notification defines the in-app notification model.
package notification

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Notification is an in-app notice addressed to a user.
type Notification struct {
	entity.Base
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(n *Notification) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(n.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(n.UserID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "user_id", Message: "user_id is required"})
	}
	if strings.TrimSpace(n.Title) == "" {
		issues = append(issues, errors.FieldIssue{Field: "title", Message: "title is required"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid notification", issues...)
	}
	return nil
}
