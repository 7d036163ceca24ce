// Package booking defines the booking domain model.
package booking

import (
	"strings"
	"time"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Booking reserves a listing for a guest over a date window.
type Booking struct {
	entity.Base
	TenantID  string    `json:"tenant_id"`
	ListingID string    `json:"listing_id"`
	GuestID   string    `json:"guest_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PartySize int       `json:"party_size,omitempty"`
}

// Validate checks the record shape before persistence. Date ordering is a
// booking-service rule, not a shape check.
func Validate(b *Booking) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(b.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(b.ListingID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "listing_id", Message: "listing_id is required"})
	}
	if strings.TrimSpace(b.GuestID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "guest_id", Message: "guest_id is required"})
	}
	if b.StartDate.IsZero() {
		issues = append(issues, errors.FieldIssue{Field: "start_date", Message: "start_date is required"})
	}
	if b.EndDate.IsZero() {
		issues = append(issues, errors.FieldIssue{Field: "end_date", Message: "end_date is required"})
	}
	if b.PartySize < 0 {
		issues = append(issues, errors.FieldIssue{Field: "party_size", Message: "party_size must not be negative"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid booking", issues...)
	}
	return nil
}
