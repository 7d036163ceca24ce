// Package storage defines the persistence ports domain services depend on.
package storage

import (
	"context"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/domain/user"
)

// Repository persists records of a single entity type.
//
// Create returns the persisted record with system-assigned identifier and
// timestamps populated; it either applies fully or returns an error with no
// record written. FindByID returns the zero (nil) record when nothing matches
// and never treats a miss as an error. List returns every record visible to
// the caller's scope in creation order.
type Repository[T entity.Entity] interface {
	Create(ctx context.Context, record T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
}

// UserDirectory resolves users by their unique email, used by login.
type UserDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
}

// OrderStatusUpdater applies payment lifecycle transitions to persisted
// orders. Only the orders service and its reconciler use it; no public
// mutation operation is exposed.
type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, id string, status order.Status, chargeID string) error
}
