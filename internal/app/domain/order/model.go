// Package order defines the order domain model.
package order

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Status tracks the payment lifecycle of an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Order is a purchase of one or more listings by a customer.
type Order struct {
	entity.Base
	TenantID   string `json:"tenant_id"`
	CustomerID string `json:"customer_id"`
	ListingID  string `json:"listing_id,omitempty"`
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
	Status     Status `json:"status"`
	ChargeID   string `json:"charge_id,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(o *Order) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(o.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(o.CustomerID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "customer_id", Message: "customer_id is required"})
	}
	if o.TotalCents < 0 {
		issues = append(issues, errors.FieldIssue{Field: "total_cents", Message: "total_cents must not be negative"})
	}
	if len(strings.TrimSpace(o.Currency)) != 3 {
		issues = append(issues, errors.FieldIssue{Field: "currency", Message: "currency must be a 3-letter code"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid order", issues...)
	}
	return nil
}
