// Package memory provides the in-memory storage implementation. It is safe
// for concurrent use and is primarily intended for tests and local
// development.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/roamdine/platform/internal/app/domain/agent"
	"github.com/roamdine/platform/internal/app/domain/booking"
	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/app/domain/file"
	"github.com/roamdine/platform/internal/app/domain/inventory"
	"github.com/roamdine/platform/internal/app/domain/listing"
	"github.com/roamdine/platform/internal/app/domain/message"
	"github.com/roamdine/platform/internal/app/domain/notification"
	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/domain/payment"
	"github.com/roamdine/platform/internal/app/domain/search"
	"github.com/roamdine/platform/internal/app/domain/session"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/domain/user"
	"github.com/roamdine/platform/internal/app/storage"
)

// Collection is an in-memory repository for one entity type. Records are kept
// in insertion order so List is stable across calls. The collection stores
// and returns copies, so callers mutating a record they hold never race with
// readers holding the same id.
type Collection[T entity.Entity] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
}

// clone returns a copy of the record so stored structs are never aliased
// outside the collection.
func clone[T entity.Entity](record T) T {
	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return record
	}
	c := reflect.New(v.Elem().Type())
	c.Elem().Set(v.Elem())
	return c.Interface().(T)
}

var _ storage.Repository[*tenant.Tenant] = (*Collection[*tenant.Tenant])(nil)

// NewCollection creates an empty collection.
func NewCollection[T entity.Entity]() *Collection[T] {
	return &Collection[T]{records: make(map[string]T)}
}

// Create stamps system fields and stores the record.
func (c *Collection[T]) Create(_ context.Context, record T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	record.GenerateID()
	record.SetTimestamps()

	id := record.GetID()
	if _, exists := c.records[id]; exists {
		return zero, fmt.Errorf("record %s already exists", id)
	}
	c.records[id] = clone(record)
	c.order = append(c.order, id)
	return record, nil
}

// FindByID returns a copy of the record, or the zero record when nothing
// matches.
func (c *Collection[T]) FindByID(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.records[id]
	if !ok {
		var zero T
		return zero, nil
	}
	return clone(record), nil
}

// List returns copies of all records in insertion order.
func (c *Collection[T]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, clone(c.records[id]))
	}
	return result, nil
}

// Store bundles one collection per entity type.
type Store struct {
	Tenants       *Collection[*tenant.Tenant]
	Users         *Collection[*user.User]
	Sessions      *Collection[*session.Session]
	Listings      *Collection[*listing.Listing]
	Bookings      *Collection[*booking.Booking]
	Orders        *Collection[*order.Order]
	Inventory     *Collection[*inventory.Item]
	Files         *Collection[*file.File]
	Messages      *Collection[*message.Message]
	Payments      *Collection[*payment.Payment]
	Documents     *Collection[*search.Document]
	Notifications *Collection[*notification.Notification]
	Agents        *Collection[*agent.Agent]
}

var _ storage.UserDirectory = (*Store)(nil)
var _ storage.OrderStatusUpdater = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		Tenants:       NewCollection[*tenant.Tenant](),
		Users:         NewCollection[*user.User](),
		Sessions:      NewCollection[*session.Session](),
		Listings:      NewCollection[*listing.Listing](),
		Bookings:      NewCollection[*booking.Booking](),
		Orders:        NewCollection[*order.Order](),
		Inventory:     NewCollection[*inventory.Item](),
		Files:         NewCollection[*file.File](),
		Messages:      NewCollection[*message.Message](),
		Payments:      NewCollection[*payment.Payment](),
		Documents:     NewCollection[*search.Document](),
		Notifications: NewCollection[*notification.Notification](),
		Agents:        NewCollection[*agent.Agent](),
	}
}

// FindUserByEmail returns the user with the given email, or nil.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

// UpdateOrderStatus transitions a persisted order's payment status.
func (s *Store) UpdateOrderStatus(_ context.Context, id string, status order.Status, chargeID string) error {
	s.Orders.mu.Lock()
	defer s.Orders.mu.Unlock()

	o, ok := s.Orders.records[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = status
	if chargeID != "" {
		o.ChargeID = chargeID
	}
	o.SetTimestamps()
	return nil
}
