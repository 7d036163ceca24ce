// Package files manages uploaded file metadata. Only allow-listed MIME types
// are accepted; the check runs before anything else so a rejected upload
// never consumes rate-limit budget or reaches storage.
package files

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/file"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the file metadata operations.
type Service struct {
	base *usecase.UseCase[*file.File]
}

// New constructs the file service.
func New(repo storage.Repository[*file.File], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("files")
	}
	return &Service{
		base: usecase.New[*file.File]("file", usecase.SchemaFunc[*file.File](file.Validate), repo, audits, limiter, log),
	}
}

func (s *Service) Create(ctx context.Context, f *file.File, actor usecase.Context) (*file.File, error) {
	if f.MimeType != "" && !file.MimeAllowed(f.MimeType) {
		return nil, errors.Validation("Unsupported mime type",
			errors.FieldIssue{Field: "mime_type", Message: "mime type is not on the allow-list"})
	}
	return s.base.Create(ctx, f, actor)
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*file.File, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*file.File, error) {
	return s.base.List(ctx, actor)
}
