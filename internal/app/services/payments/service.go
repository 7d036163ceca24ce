// Package payments manages settlement records against orders.
package payments

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/payment"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the payment record operations.
type Service struct {
	base *usecase.UseCase[*payment.Payment]
}

// New constructs the payment service.
func New(repo storage.Repository[*payment.Payment], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("payments")
	}
	return &Service{
		base: usecase.New[*payment.Payment]("payment", usecase.SchemaFunc[*payment.Payment](payment.Validate), repo, audits, limiter, log),
	}
}

func (s *Service) Create(ctx context.Context, p *payment.Payment, actor usecase.Context) (*payment.Payment, error) {
	return s.base.Create(ctx, p, actor)
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*payment.Payment, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*payment.Payment, error) {
	return s.base.List(ctx, actor)
}
