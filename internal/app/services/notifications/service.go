// Package notifications manages in-app notices and fans them out to
// connected clients.
package notifications

import (
	"context"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/notification"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/pkg/logger"
)

// Broadcaster pushes a persisted notification to live subscribers. The push
// is fire-and-forget.
type Broadcaster interface {
	Broadcast(n *notification.Notification)
}

// Service exposes the notification operations.
type Service struct {
	base        *usecase.UseCase[*notification.Notification]
	broadcaster Broadcaster
	log         *logger.Logger
}

// New constructs the notification service. A nil broadcaster records without
// pushing.
func New(repo storage.Repository[*notification.Notification], audits audit.Logger, limiter ratelimit.Limiter, broadcaster Broadcaster, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("notifications")
	}
	return &Service{
		base:        usecase.New[*notification.Notification]("notification", usecase.SchemaFunc[*notification.Notification](notification.Validate), repo, audits, limiter, log),
		broadcaster: broadcaster,
		log:         log,
	}
}

// Create persists the notification and pushes it to live subscribers.
func (s *Service) Create(ctx context.Context, n *notification.Notification, actor usecase.Context) (*notification.Notification, error) {
	created, err := s.base.Create(ctx, n, actor)
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(created)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor usecase.Context) (*notification.Notification, error) {
	return s.base.Get(ctx, id, actor)
}

func (s *Service) List(ctx context.Context, actor usecase.Context) ([]*notification.Notification, error) {
	return s.base.List(ctx, actor)
}
