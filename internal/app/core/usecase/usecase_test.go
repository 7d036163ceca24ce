package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/domain/tenant"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/errors"
)

type mockRepo struct {
	creates int
	records map[string]*tenant.Tenant
	fail    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]*tenant.Tenant)}
}

func (m *mockRepo) Create(_ context.Context, record *tenant.Tenant) (*tenant.Tenant, error) {
	m.creates++
	if m.fail != nil {
		return nil, m.fail
	}
	record.GenerateID()
	record.SetTimestamps()
	m.records[record.ID] = record
	return record, nil
}

func (m *mockRepo) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	return m.records[id], nil
}

func (m *mockRepo) List(_ context.Context) ([]*tenant.Tenant, error) {
	out := make([]*tenant.Tenant, 0, len(m.records))
	for _, t := range m.records {
		out = append(out, t)
	}
	return out, nil
}

func newTenantUseCase(repo *mockRepo, audits audit.Logger, limiter ratelimit.Limiter) *UseCase[*tenant.Tenant] {
	return New[*tenant.Tenant]("tenant", SchemaFunc[*tenant.Tenant](tenant.Validate), repo, audits, limiter, nil)
}

func actor() Context {
	return Context{ActorID: "actor-1", CorrelationID: "corr-1"}
}

func TestCreateInvalidInputSkipsRepository(t *testing.T) {
	repo := newMockRepo()
	uc := newTenantUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), &tenant.Tenant{}, actor())
	if !errors.Is(err, errors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("repository called %d times for invalid input", repo.creates)
	}
}

func TestCreateMissingActor(t *testing.T) {
	repo := newMockRepo()
	uc := newTenantUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"}, Context{})
	if !errors.Is(err, errors.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("repository called without an actor")
	}
}

func TestCreateAssignsIdentifierAndTimestamps(t *testing.T) {
	repo := newMockRepo()
	uc := newTenantUseCase(repo, nil, nil)

	created, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"}, actor())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated identifier")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
	if created.Name != "Roam" || created.Slug != "roam" {
		t.Fatalf("input fields not preserved: %+v", created)
	}
}

func TestCreateRateLimitExhaustion(t *testing.T) {
	repo := newMockRepo()
	limiter := ratelimit.NewFixedWindow(2, time.Minute)
	uc := newTenantUseCase(repo, nil, limiter)

	for i := 0; i < 2; i++ {
		if _, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: fmt.Sprintf("roam-%d", i)}, actor()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam-3"}, actor())
	if !errors.Is(err, errors.KindRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if repo.creates != 2 {
		t.Fatalf("repository called %d times, want 2", repo.creates)
	}
}

func TestCreateRateLimitKeyIsPerActor(t *testing.T) {
	repo := newMockRepo()
	limiter := ratelimit.NewFixedWindow(1, time.Minute)
	uc := newTenantUseCase(repo, nil, limiter)

	if _, err := uc.Create(context.Background(), &tenant.Tenant{Name: "A", Slug: "a"}, Context{ActorID: "first"}); err != nil {
		t.Fatalf("first actor: %v", err)
	}
	if _, err := uc.Create(context.Background(), &tenant.Tenant{Name: "B", Slug: "b"}, Context{ActorID: "second"}); err != nil {
		t.Fatalf("second actor should have its own budget: %v", err)
	}
}

type failingSink struct{ writes int }

func (s *failingSink) Write(audit.Entry) error {
	s.writes++
	return fmt.Errorf("sink unavailable")
}

func TestCreateAuditFailureIsSwallowed(t *testing.T) {
	repo := newMockRepo()
	sink := &failingSink{}
	trail := audit.NewTrail(10, sink, nil)
	uc := newTenantUseCase(repo, trail, nil)

	created, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"}, actor())
	if err != nil {
		t.Fatalf("create must not surface audit failures: %v", err)
	}
	if created == nil || created.ID == "" {
		t.Fatal("expected persisted record")
	}
	if sink.writes != 1 {
		t.Fatalf("sink writes = %d, want 1", sink.writes)
	}
	entries := trail.List()
	if len(entries) != 1 || entries[0].Event != "tenant.create" {
		t.Fatalf("unexpected trail entries: %+v", entries)
	}
}

func TestCreatePersistenceErrorWrapped(t *testing.T) {
	repo := newMockRepo()
	repo.fail = fmt.Errorf("connection reset")
	uc := newTenantUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"}, actor())
	if !errors.Is(err, errors.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestGetMissingReturnsNilWithoutError(t *testing.T) {
	uc := newTenantUseCase(newMockRepo(), nil, nil)

	record, err := uc.Get(context.Background(), "absent", actor())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestListStableBetweenReads(t *testing.T) {
	repo := newMockRepo()
	uc := newTenantUseCase(repo, nil, nil)

	if _, err := uc.Create(context.Background(), &tenant.Tenant{Name: "Roam", Slug: "roam"}, actor()); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := uc.List(context.Background(), actor())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := uc.List(context.Background(), actor())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("list changed between reads: %d vs %d", len(first), len(second))
	}
}
