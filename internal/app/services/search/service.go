// Package search manages documents scheduled for indexing. The persisted
// record is the durable copy; submission to the index backend is a side
// channel and never fails the create.
package search

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/search"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the search document operations.
type Service struct {
	base    *usecase.UseCase[*search.Document]
	indexer providers.Search
	log     *logger.Logger
}

// New constructs the search service. A nil indexer records without
// submitting.
func New(repo storage.Repository[*search.Document], audits audit.Logger, limiter ratelimit.Limiter, indexer providers.Search, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("search")
	}
	return &Service{
		base:    usecase.New[*search.Document]("search_document", usecase.SchemaFunc[*search.Document](search.Validate), repo, audits, limiter, log),
		indexer: indexer,
		log:     log,
	}
}

// Create persists the document and submits it to the index backend.
func (s *Service) Create(ctx context.Context, d *search.Document, actor usecase.Context) (*search.Document, error) {
	created, err := s.base.Create(ctx, d, actor)
	if err != nil {
		return nil, err
	}
	if s.indexer != nil {
		doc := providers.Document{ID: created.ID, Fields: created.Fields}
		if err := s.indexer.IndexDocument(ctx, created.Index, doc); err != nil {
			s.log.WithError(err).WithField("document_id", created.ID).Warn("index submission failed")
		}
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*search.Document, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*search.Document, error) {
	return s.base.List(ctx, actor)
}
