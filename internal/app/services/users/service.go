// Package users manages user accounts. Registration hashes the supplied
// password before the record reaches storage; plaintext passwords are never
// persisted or logged.
package users

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/user"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// MinPasswordLength is the smallest password accepted at registration.
const MinPasswordLength = 8

// Service exposes the user operations.
type Service struct {
	base *usecase.UseCase[*user.User]
}

// New constructs the user service.
func New(repo storage.Repository[*user.User], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{
		base: usecase.New[*user.User]("user", usecase.SchemaFunc[*user.User](user.Validate), repo, audits, limiter, log),
	}
}

// Register hashes the password and creates the user.
func (s *Service) Register(ctx context.Context, u *user.User, password string, actor usecase.Context) (*user.User, error) {
	if len(strings.TrimSpace(password)) < MinPasswordLength {
		return nil, errors.Validation("invalid user",
			errors.FieldIssue{Field: "password", Message: "password must be at least 8 characters"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Persistence(err)
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = string(hash)
	return s.base.Create(ctx, u, actor)
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*user.User, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*user.User, error) {
	return s.base.List(ctx, actor)
}
