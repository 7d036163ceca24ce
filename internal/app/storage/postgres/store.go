// Package postgres implements the storage ports backed by PostgreSQL. Each
// entity lives in its own document table (id, payload jsonb, created_at);
// records are schema-validated upstream, so the payload column is the source
// of truth and columns exist only for keys the store queries on.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

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

// Store implements the storage ports backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.UserDirectory = (*Store)(nil)
var _ storage.OrderStatusUpdater = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// table adapts one document table to the generic repository port.
type table[T any, PT interface {
	entity.Entity
	*T
}] struct {
	db   *sqlx.DB
	name string
}

func (t *table[T, PT]) Create(ctx context.Context, record PT) (PT, error) {
	record.GenerateID()
	record.SetTimestamps()

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO `+t.name+` (id, payload, created_at) VALUES ($1, $2, $3)`,
		record.GetID(), payload, record.GetCreatedAt(),
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (t *table[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	var payload []byte
	err := t.db.GetContext(ctx, &payload,
		`SELECT payload FROM `+t.name+` WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record T
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return PT(&record), nil
}

func (t *table[T, PT]) List(ctx context.Context) ([]PT, error) {
	var payloads [][]byte
	err := t.db.SelectContext(ctx, &payloads,
		`SELECT payload FROM `+t.name+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}

	result := make([]PT, 0, len(payloads))
	for _, payload := range payloads {
		var record T
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, err
		}
		result = append(result, PT(&record))
	}
	return result, nil
}

// Per-entity repositories ----------------------------------------------------

func (s *Store) Tenants() storage.Repository[*tenant.Tenant] {
	return &table[tenant.Tenant, *tenant.Tenant]{db: s.db, name: "tenants"}
}

func (s *Store) Users() storage.Repository[*user.User] {
	return &userTable{db: s.db}
}

func (s *Store) Sessions() storage.Repository[*session.Session] {
	return &table[session.Session, *session.Session]{db: s.db, name: "sessions"}
}

func (s *Store) Listings() storage.Repository[*listing.Listing] {
	return &table[listing.Listing, *listing.Listing]{db: s.db, name: "listings"}
}

func (s *Store) Bookings() storage.Repository[*booking.Booking] {
	return &table[booking.Booking, *booking.Booking]{db: s.db, name: "bookings"}
}

func (s *Store) Orders() storage.Repository[*order.Order] {
	return &table[order.Order, *order.Order]{db: s.db, name: "orders"}
}

func (s *Store) Inventory() storage.Repository[*inventory.Item] {
	return &table[inventory.Item, *inventory.Item]{db: s.db, name: "inventory_items"}
}

func (s *Store) Files() storage.Repository[*file.File] {
	return &table[file.File, *file.File]{db: s.db, name: "files"}
}

func (s *Store) Messages() storage.Repository[*message.Message] {
	return &table[message.Message, *message.Message]{db: s.db, name: "messages"}
}

func (s *Store) Payments() storage.Repository[*payment.Payment] {
	return &table[payment.Payment, *payment.Payment]{db: s.db, name: "payments"}
}

func (s *Store) Documents() storage.Repository[*search.Document] {
	return &table[search.Document, *search.Document]{db: s.db, name: "search_documents"}
}

func (s *Store) Notifications() storage.Repository[*notification.Notification] {
	return &table[notification.Notification, *notification.Notification]{db: s.db, name: "notifications"}
}

func (s *Store) Agents() storage.Repository[*agent.Agent] {
	return &table[agent.Agent, *agent.Agent]{db: s.db, name: "ai_agents"}
}

// userTable extends the document shape with a password_hash column. The hash
// is excluded from the JSON payload so it cannot leak through serialization;
// the column keeps it queryable for login.
type userTable struct {
	db *sqlx.DB
}

func (t *userTable) Create(ctx context.Context, u *user.User) (*user.User, error) {
	u.GenerateID()
	u.SetTimestamps()

	payload, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO users (id, payload, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, payload, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (t *userTable) FindByID(ctx context.Context, id string) (*user.User, error) {
	return scanUser(t.db.QueryRowxContext(ctx,
		`SELECT payload, password_hash FROM users WHERE id = $1`, id))
}

func (t *userTable) List(ctx context.Context) ([]*user.User, error) {
	rows, err := t.db.QueryxContext(ctx,
		`SELECT payload, password_hash FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var payload []byte
	var hash string
	err := row.Scan(&payload, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var u user.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	return &u, nil
}

// Sub-ports ------------------------------------------------------------------

// FindUserByEmail returns the user with the given email, or nil.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return scanUser(s.db.QueryRowxContext(ctx,
		`SELECT payload, password_hash FROM users WHERE lower(payload->>'email') = lower($1)`, email))
}

// UpdateOrderStatus transitions a persisted order's payment status.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status order.Status, chargeID string) error {
	patch := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if chargeID != "" {
		patch["charge_id"] = chargeID
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET payload = payload || $2::jsonb WHERE id = $1`, id, raw)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
