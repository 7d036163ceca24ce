// Package payment defines the payment record model.
package payment

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Payment records a settlement against an order.
type Payment struct {
	entity.Base
	TenantID    string `json:"tenant_id"`
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Method      string `json:"method,omitempty"`
	Status      string `json:"status,omitempty"`
	ChargeID    string `json:"charge_id,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(p *Payment) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(p.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(p.OrderID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "order_id", Message: "order_id is required"})
	}
	if p.AmountCents < 0 {
		issues = append(issues, errors.FieldIssue{Field: "amount_cents", Message: "amount_cents must not be negative"})
	}
	if len(strings.TrimSpace(p.Currency)) != 3 {
		issues = append(issues, errors.FieldIssue{Field: "currency", Message: "currency must be a 3-letter code"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid payment", issues...)
	}
	return nil
}
