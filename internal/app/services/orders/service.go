// Package orders manages purchases and their payment lifecycle. An order is
// persisted as pending, then charged through the payment provider; a failed
// charge marks the order failed rather than leaving it pending forever. A
// reconciler sweeps orders whose compensation itself failed.
package orders

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the order operations.
type Service struct {
	base     *usecase.UseCase[*order.Order]
	repo     storage.Repository[*order.Order]
	statuses storage.OrderStatusUpdater
	payments providers.Payment
	audits   audit.Logger
	log      *logger.Logger
}

// New constructs the order service. The payment provider and status updater
// are required for the charge pipeline.
func New(repo storage.Repository[*order.Order], statuses storage.OrderStatusUpdater, payments providers.Payment, audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	if audits == nil {
		audits = audit.Nop{}
	}
	return &Service{
		base:     usecase.New[*order.Order]("order", usecase.SchemaFunc[*order.Order](order.Validate), repo, audits, limiter, log),
		repo:     repo,
		statuses: statuses,
		payments: payments,
		audits:   audits,
		log:      log,
	}
}

// Create persists the order as pending, charges the payment provider for the
// full total, and transitions the order to paid. A failed charge transitions
// the order to failed and the provider error propagates to the caller.
func (s *Service) Create(ctx context.Context, o *order.Order, actor usecase.Context) (*order.Order, error) {
	o.Status = order.StatusPending
	o.ChargeID = ""

	created, err := s.base.Create(ctx, o, actor)
	if err != nil {
		return nil, err
	}

	charge, err := s.payments.Charge(ctx, created.TotalCents, created.Currency, map[string]string{
		"order_id": created.ID,
	})
	if err != nil {
		s.compensate(ctx, created.ID, actor)
		return nil, err
	}

	if uerr := s.statuses.UpdateOrderStatus(ctx, created.ID, order.StatusPaid, charge.ID); uerr != nil {
		// The charge went through but the order is still pending, so the
		// reconciler will eventually sweep it to failed. Record the charge
		// id on the audit trail so the payment can be reconciled by hand.
		s.audits.Record(ctx, "order.charge_unrecorded", audit.Payload{
			"actor_id":  actor.ActorID,
			"order_id":  created.ID,
			"charge_id": charge.ID,
		})
		s.log.WithError(uerr).
			WithField("order_id", created.ID).
			WithField("charge_id", charge.ID).
			Error("paid transition failed after successful charge")
		return nil, errors.Persistence(uerr)
	}

	created.Status = order.StatusPaid
	created.ChargeID = charge.ID
	s.audits.Record(ctx, "order.paid", audit.Payload{
		"actor_id":  actor.ActorID,
		"order_id":  created.ID,
		"charge_id": charge.ID,
	})
	s.log.WithField("order_id", created.ID).
		WithField("charge_id", charge.ID).
		Info("order paid")
	return created, nil
}

func (s *Service) compensate(ctx context.Context, id string, actor usecase.Context) {
	if err := s.statuses.UpdateOrderStatus(ctx, id, order.StatusFailed, ""); err != nil {
		s.log.WithError(err).WithField("order_id", id).Error("failed transition did not apply; reconciler will sweep")
		return
	}
	s.audits.Record(ctx, "order.failed", audit.Payload{
		"actor_id": actor.ActorID,
		"order_id": id,
	})
	s.log.WithField("order_id", id).Warn("order marked failed after charge error")
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*order.Order, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*order.Order, error) {
	return s.base.List(ctx, actor)
}
