// Package usecase provides the generic entity use-case factory. Given a
// schema, a repository, an audit logger and a rate limiter it produces the
// standard create/get/list operations with validation, auditing and rate
// limiting wired in uniformly. Domain services compose it and layer their own
// rules and provider side-effects on top.
package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/app/metrics"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// Context is the per-request metadata the presentation layer supplies on
// every call.
type Context struct {
	ActorID       string
	CorrelationID string
	TenantID      string
}

func (c Context) validate() error {
	if strings.TrimSpace(c.ActorID) == "" {
		return errors.Authorization("actor_id is required")
	}
	return nil
}

// Schema validates an entity's shape before persistence.
type Schema[T entity.Entity] interface {
	Validate(record T) error
}

// SchemaFunc adapts a function to the Schema interface.
type SchemaFunc[T entity.Entity] func(record T) error

func (f SchemaFunc[T]) Validate(record T) error {
	if f == nil {
		return nil
	}
	return f(record)
}

// UseCase bundles the standard operations for one entity type.
type UseCase[T entity.Entity] struct {
	name    string
	schema  Schema[T]
	repo    storage.Repository[T]
	audits  audit.Logger
	limiter ratelimit.Limiter
	log     *logger.Logger
}

// New constructs a use-case for the named entity. A nil audit logger or
// limiter degrades to a no-op, a nil logger to the component default.
func New[T entity.Entity](name string, schema Schema[T], repo storage.Repository[T], audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) *UseCase[T] {
	if audits == nil {
		audits = audit.Nop{}
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	if log == nil {
		log = logger.NewDefault(name)
	}
	return &UseCase[T]{
		name:    name,
		schema:  schema,
		repo:    repo,
		audits:  audits,
		limiter: limiter,
		log:     log,
	}
}

// Name returns the entity name used for limiter keys and audit events.
func (u *UseCase[T]) Name() string { return u.name }

// Create runs the standard mutation pipeline: rate limit, schema validation,
// persistence, best-effort audit. Steps execute strictly in that order; a
// failing step aborts before any later side-effect.
func (u *UseCase[T]) Create(ctx context.Context, input T, actor Context) (T, error) {
	var zero T
	if err := actor.validate(); err != nil {
		metrics.RecordCreate(u.name, "unauthorized")
		return zero, err
	}

	key := actor.ActorID + ":" + u.name + ":create"
	if err := u.limiter.Consume(ctx, key); err != nil {
		metrics.RecordCreate(u.name, "rate_limited")
		return zero, err
	}

	if err := u.schema.Validate(input); err != nil {
		metrics.RecordCreate(u.name, "invalid")
		return zero, err
	}

	created, err := u.repo.Create(ctx, input)
	if err != nil {
		metrics.RecordCreate(u.name, "persistence_error")
		var appErr *errors.Error
		if !stderrors.As(err, &appErr) {
			err = errors.Persistence(err)
		}
		return zero, err
	}

	u.audits.Record(ctx, u.name+".create", audit.Payload{
		"actor_id":       actor.ActorID,
		"correlation_id": actor.CorrelationID,
		"record":         created,
	})

	metrics.RecordCreate(u.name, "ok")
	u.log.WithField("id", created.GetID()).
		WithField("actor_id", actor.ActorID).
		Info(u.name + " created")
	return created, nil
}

// Get returns the record by identifier, or the zero record when nothing
// matches. Reads are not rate limited or audited.
func (u *UseCase[T]) Get(ctx context.Context, id string, actor Context) (T, error) {
	var zero T
	if err := actor.validate(); err != nil {
		return zero, err
	}
	record, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return zero, wrapPersistence(err)
	}
	return record, nil
}

// List returns all records visible to the caller's scope.
func (u *UseCase[T]) List(ctx context.Context, actor Context) ([]T, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	records, err := u.repo.List(ctx)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return records, nil
}

func wrapPersistence(err error) error {
	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.Persistence(err)
}
