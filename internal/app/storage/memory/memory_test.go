package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/domain/user"
)

func TestCollectionCreateStampsSystemFields(t *testing.T) {
	c := NewCollection[*tenant.Tenant]()

	created, err := c.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("system fields not stamped: %+v", created)
	}
}

func TestCollectionRejectsDuplicateID(t *testing.T) {
	c := NewCollection[*tenant.Tenant]()

	first, err := c.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &tenant.Tenant{Name: "Other", Slug: "other"}
	dup.ID = first.ID
	if _, err := c.Create(context.Background(), dup); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestCollectionFindMissingReturnsNil(t *testing.T) {
	c := NewCollection[*tenant.Tenant]()

	record, err := c.FindByID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil, got %+v", record)
	}
}

func TestCollectionListInsertionOrder(t *testing.T) {
	c := NewCollection[*tenant.Tenant]()
	for i := 0; i < 3; i++ {
		if _, err := c.Create(context.Background(), &tenant.Tenant{Name: "T", Slug: fmt.Sprintf("t-%d", i)}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	listed, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed %d records, want 3", len(listed))
	}
	for i, record := range listed {
		if record.Slug != fmt.Sprintf("t-%d", i) {
			t.Fatalf("position %d holds %s", i, record.Slug)
		}
	}
}

func TestCollectionReturnsCopies(t *testing.T) {
	c := NewCollection[*tenant.Tenant]()

	created, err := c.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the record the caller holds must not reach the store.
	created.Name = "Mutated"
	found, err := c.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Roam" {
		t.Fatalf("stored record aliased by caller mutation: %s", found.Name)
	}

	// Nor must mutating a read result.
	found.Name = "Mutated again"
	again, _ := c.FindByID(context.Background(), created.ID)
	if again.Name != "Roam" {
		t.Fatalf("stored record aliased by reader mutation: %s", again.Name)
	}
}

func TestFindUserByEmailIsCaseInsensitive(t *testing.T) {
	s := New()
	if _, err := s.Users.Create(context.Background(), &user.User{TenantID: "t1", Email: "guest@example.com", Name: "Guest"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := s.FindUserByEmail(context.Background(), "GUEST@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil {
		t.Fatal("expected user")
	}

	missing, err := s.FindUserByEmail(context.Background(), "other@example.com")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown email")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	s := New()
	o, err := s.Orders.Create(context.Background(), &order.Order{
		TenantID:   "t1",
		CustomerID: "c1",
		TotalCents: 5000,
		Currency:   "USD",
		Status:     order.StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.UpdateOrderStatus(context.Background(), o.ID, order.StatusPaid, "ch_1"); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := s.Orders.FindByID(context.Background(), o.ID)
	if after.Status != order.StatusPaid || after.ChargeID != "ch_1" {
		t.Fatalf("transition not applied: %+v", after)
	}

	if err := s.UpdateOrderStatus(context.Background(), "absent", order.StatusFailed, ""); err == nil {
		t.Fatal("expected error for unknown order")
	}
}
