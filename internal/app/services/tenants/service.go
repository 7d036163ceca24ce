// Package tenants manages tenant records.
package tenants

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the tenant operations.
type Service struct {
	base *usecase.UseCase[*tenant.Tenant]
}

// New constructs the tenant service.
func New(repo storage.Repository[*tenant.Tenant], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("tenants")
	}
	return &Service{
		base: usecase.New[*tenant.Tenant]("tenant", usecase.SchemaFunc[*tenant.Tenant](tenant.Validate), repo, audits, limiter, log),
	}
}

func (s *Service) Create(ctx context.Context, t *tenant.Tenant, actor usecase.Context) (*tenant.Tenant, error) {
	return s.base.Create(ctx, t, actor)
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*tenant.Tenant, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*tenant.Tenant, error) {
	return s.base.List(ctx, actor)
}
