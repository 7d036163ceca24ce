// Package agents manages AI assistant configurations. Only allow-listed
// models are accepted; the check runs before anything else so a rejected
// model never consumes rate-limit budget or reaches storage.
package agents

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/agent"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the agent operations.
type Service struct {
	base *usecase.UseCase[*agent.Agent]
}

// New constructs the agent service.
func New(repo storage.Repository[*agent.Agent], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("agents")
	}
	return &Service{
		base: usecase.New[*agent.Agent]("agent", usecase.SchemaFunc[*agent.Agent](agent.Validate), repo, audits, limiter, log),
	}
}

func (s *Service) Create(ctx context.Context, a *agent.Agent, actor usecase.Context) (*agent.Agent, error) {
	if a.Model != "" && !agent.ModelPermitted(a.Model) {
		return nil, errors.Validation("Model not permitted",
			errors.FieldIssue{Field: "model", Message: "model is not on the allow-list"})
	}
	return s.base.Create(ctx, a, actor)
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*agent.Agent, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*agent.Agent, error) {
	return s.base.List(ctx, actor)
}
