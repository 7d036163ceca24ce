// Package messaging manages outbound messages. The persisted record is the
// source of truth; delivery through the gateway is a side channel and never
// fails the create.
package messaging

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/message"
	"github.com/roamdine/platform/internal/app/providers"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// Service exposes the message operations.
type Service struct {
	base      *usecase.UseCase[*message.Message]
	messenger providers.Messaging
	log       *logger.Logger
}

// New constructs the messaging service. A nil messenger records without
// delivering.
func New(repo storage.Repository[*message.Message], audits audit.Logger, limiter ratelimit.Limiter, messenger providers.Messaging, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("messaging")
	}
	return &Service{
		base:      usecase.New[*message.Message]("message", usecase.SchemaFunc[*message.Message](message.Validate), repo, audits, limiter, log),
		messenger: messenger,
		log:       log,
	}
}

// Create persists the message and hands it to the delivery gateway.
func (s *Service) Create(ctx context.Context, m *message.Message, actor usecase.Context) (*message.Message, error) {
	created, err := s.base.Create(ctx, m, actor)
	if err != nil {
		return nil, err
	}
	if s.messenger != nil {
		if err := s.messenger.Send(ctx, created.Destination, created.Body, created.Metadata); err != nil {
			s.log.WithError(err).WithField("message_id", created.ID).Warn("message delivery failed")
		}
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*message.Message, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*message.Message, error) {
	return s.base.List(ctx, actor)
}
