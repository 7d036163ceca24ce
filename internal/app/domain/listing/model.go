// Package listing defines the bookable listing model.
package listing

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Listing is a bookable offering: a stay, a table, a tour.
type Listing struct {
	entity.Base
	TenantID    string `json:"tenant_id"`
	SupplierID  string `json:"supplier_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(l *Listing) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(l.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(l.Title) == "" {
		issues = append(issues, errors.FieldIssue{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(l.Description) == "" {
		issues = append(issues, errors.FieldIssue{Field: "description", Message: "description is required"})
	}
	if l.PriceCents < 0 {
		issues = append(issues, errors.FieldIssue{Field: "price_cents", Message: "price_cents must not be negative"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid listing", issues...)
	}
	return nil
}
