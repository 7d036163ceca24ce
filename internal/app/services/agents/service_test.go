package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/agent"
	"github.com/roamdine/platform/internal/app/storage/memory"
	"github.com/roamdine/platform/internal/errors"
)

func TestCreateRejectsUnknownModel(t *testing.T) {
	mem := memory.New()
	svc := New(mem.Agents, nil, nil, nil)

	a := &agent.Agent{TenantID: "t1", Name: "concierge", Model: "gpt-5-unreleased"}
	_, err := svc.Create(context.Background(), a, usecase.Context{ActorID: "a1"})
	if !errors.Is(err, errors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Model not permitted") {
		t.Fatalf("unexpected message: %v", err)
	}

	persisted, _ := mem.Agents.List(context.Background())
	if len(persisted) != 0 {
		t.Fatal("rejected agent must not reach storage")
	}
}

func TestCreateAcceptsPermittedModel(t *testing.T) {
	mem := memory.New()
	svc := New(mem.Agents, nil, nil, nil)

	a := &agent.Agent{TenantID: "t1", Name: "concierge", Model: "gpt-4o"}
	created, err := svc.Create(context.Background(), a, usecase.Context{ActorID: "a1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated identifier")
	}
}
