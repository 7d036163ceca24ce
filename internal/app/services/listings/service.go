// Package listings manages bookable listings. Every created listing is
// submitted to the search index so it becomes discoverable; indexing is a
// side channel and never fails the create.
package listings

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/listing"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// SearchIndex is the index listings are published to.
const SearchIndex = "listings"

// Service exposes the listing operations.
type Service struct {
	base   *usecase.UseCase[*listing.Listing]
	search providers.Search
	log    *logger.Logger
}

// New constructs the listing service. A nil search provider disables
// indexing.
func New(repo storage.Repository[*listing.Listing], audits audit.Logger, limiter ratelimit.Limiter, search providers.Search, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("listings")
	}
	return &Service{
		base:   usecase.New[*listing.Listing]("listing", usecase.SchemaFunc[*listing.Listing](listing.Validate), repo, audits, limiter, log),
		search: search,
		log:    log,
	}
}

// Create persists the listing and submits it for indexing. The indexed
// document carries the persisted record's fields verbatim.
func (s *Service) Create(ctx context.Context, l *listing.Listing, actor usecase.Context) (*listing.Listing, error) {
	created, err := s.base.Create(ctx, l, actor)
	if err != nil {
		return nil, err
	}
	if s.search != nil {
		doc := providers.Document{
			ID: created.ID,
			Fields: map[string]any{
				"id":          created.ID,
				"title":       created.Title,
				"description": created.Description,
				"tenant_id":   created.TenantID,
			},
		}
		if err := s.search.IndexDocument(ctx, SearchIndex, doc); err != nil {
			s.log.WithError(err).WithField("listing_id", created.ID).Warn("listing indexing failed")
		}
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*listing.Listing, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*listing.Listing, error) {
	return s.base.List(ctx, actor)
}
