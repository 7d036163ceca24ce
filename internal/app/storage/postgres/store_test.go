package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/domain/user"
	"github.com/roamdine/platform/internal/platform/migrations"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateInsertsPayload(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO tenants").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.Tenants().Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("system fields not stamped: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByIDUnmarshalsPayload(t *testing.T) {
	store, mock := newMockStore(t)

	payload, _ := json.Marshal(&tenant.Tenant{Name: "Roam", Slug: "roam"})
	mock.ExpectQuery("SELECT payload FROM tenants").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	found, err := store.Tenants().FindByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.Slug != "roam" {
		t.Fatalf("unexpected record: %+v", found)
	}
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT payload FROM tenants").
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	found, err := store.Tenants().FindByID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil, got %+v", found)
	}
}

func TestUserCreateKeepsHashOutOfPayload(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "hash-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &user.User{TenantID: "t1", Email: "guest@example.com", Name: "Guest", PasswordHash: "hash-1"}
	if _, err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The payload column must not carry the hash; it travels in its own column.
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := decoded["password_hash"]; present {
		t.Fatal("password hash leaked into the JSON payload")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindUserByEmailRestoresHash(t *testing.T) {
	store, mock := newMockStore(t)

	payload, _ := json.Marshal(&user.User{TenantID: "t1", Email: "guest@example.com", Name: "Guest"})
	mock.ExpectQuery("SELECT payload, password_hash FROM users").
		WithArgs("guest@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "password_hash"}).AddRow(payload, "hash-1"))

	found, err := store.FindUserByEmail(context.Background(), "guest@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.PasswordHash != "hash-1" {
		t.Fatalf("hash not restored from column: %+v", found)
	}
}

func TestUpdateOrderStatusRequiresExistingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE orders SET payload").
		WithArgs("absent", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.UpdateOrderStatus(context.Background(), "absent", order.StatusFailed, ""); err == nil {
		t.Fatal("expected error when no row matches")
	}
}

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrations.Apply(ctx, db.DB); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	store := New(db)
	created, err := store.Tenants().Create(ctx, &tenant.Tenant{Name: "Roam", Slug: "roam-it"})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	found, err := store.Tenants().FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find tenant: %v", err)
	}
	if found == nil || found.Slug != created.Slug {
		t.Fatalf("round trip mismatch: %+v", found)
	}
}
