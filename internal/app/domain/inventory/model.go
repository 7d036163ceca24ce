// Package inventory defines the inventory item model.
package inventory

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Item tracks sellable stock for a listing, such as seats or rooms per night.
type Item struct {
	entity.Base
	TenantID       string `json:"tenant_id"`
	ListingID      string `json:"listing_id,omitempty"`
	SKU            string `json:"sku"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(i *Item) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(i.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(i.SKU) == "" {
		issues = append(issues, errors.FieldIssue{Field: "sku", Message: "sku is required"})
	}
	if i.Quantity < 0 {
		issues = append(issues, errors.FieldIssue{Field: "quantity", Message: "quantity must not be negative"})
	}
	if i.UnitPriceCents < 0 {
		issues = append(issues, errors.FieldIssue{Field: "unit_price_cents", Message: "unit_price_cents must not be negative"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid inventory item", issues...)
	}
	return nil
}
