// Package bookings manages reservations against listings. The date window
// must be ordered before anything else runs, and a confirmation message goes
// out after the booking is persisted; delivery is a side channel and never
// fails the create.
package bookings

import (
	"context"
	"fmt"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/booking"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the booking operations.
type Service struct {
	base      *usecase.UseCase[*booking.Booking]
	messenger providers.Messaging
	log       *logger.Logger
}

// New constructs the booking service. A nil messenger disables confirmation
// messages.
func New(repo storage.Repository[*booking.Booking], audits audit.Logger, limiter ratelimit.Limiter, messenger providers.Messaging, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("bookings")
	}
	return &Service{
		base:      usecase.New[*booking.Booking]("booking", usecase.SchemaFunc[*booking.Booking](booking.Validate), repo, audits, limiter, log),
		messenger: messenger,
		log:       log,
	}
}

// Create persists the booking and sends the guest a confirmation message
// carrying the booking id.
func (s *Service) Create(ctx context.Context, b *booking.Booking, actor usecase.Context) (*booking.Booking, error) {
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && !b.EndDate.After(b.StartDate) {
		return nil, errors.Validation("invalid booking",
			errors.FieldIssue{Field: "end_date", Message: "end_date must be after start_date"})
	}

	created, err := s.base.Create(ctx, b, actor)
	if err != nil {
		return nil, err
	}

	if s.messenger != nil {
		body := fmt.Sprintf("Your booking from %s to %s is confirmed.",
			created.StartDate.Format("2006-01-02"), created.EndDate.Format("2006-01-02"))
		meta := map[string]string{"booking_id": created.ID}
		if err := s.messenger.Send(ctx, created.GuestID, body, meta); err != nil {
			s.log.WithError(err).WithField("booking_id", created.ID).Warn("booking confirmation failed")
		}
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*booking.Booking, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*booking.Booking, error) {
	return s.base.List(ctx, actor)
}
