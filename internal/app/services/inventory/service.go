// Package inventory manages sellable stock items.
package inventory

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/inventory"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the inventory operations.
type Service struct {
	base *usecase.UseCase[*inventory.Item]
}

// New constructs the inventory service.
func New(repo storage.Repository[*inventory.Item], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("inventory")
	}
	return &Service{
		base: usecase.New[*inventory.Item]("inventory_item", usecase.SchemaFunc[*inventory.Item](inventory.Validate), repo, audits, limiter, log),
	}
}

func (s *Service) Create(ctx context.Context, i *inventory.Item, actor usecase.Context) (*inventory.Item, error) {
	return s.base.Create(ctx, i, actor)
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*inventory.Item, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*inventory.Item, error) {
	return s.base.List(ctx, actor)
}
