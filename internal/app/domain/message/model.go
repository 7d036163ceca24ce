// Package message defines the outbound message model.
package message

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Message is an outbound communication to a guest or operator.
type Message struct {
	entity.Base
	TenantID    string            `json:"tenant_id"`
	SenderID    string            `json:"sender_id,omitempty"`
	Destination string            `json:"destination"`
	Body        string            `json:"body"`
	Channel     string            `json:"channel,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(m *Message) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(m.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(m.Destination) == "" {
		issues = append(issues, errors.FieldIssue{Field: "destination", Message: "destination is required"})
	}
	if strings.TrimSpace(m.Body) == "" {
		issues = append(issues, errors.FieldIssue{Field: "body", Message: "body is required"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid message", issues...)
	}
	return nil
}
