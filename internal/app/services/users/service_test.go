package users

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/user"
	"github.com/roamdine/platform/internal/app/storage/memory"
	"github.com/roamdine/platform/internal/errors"
)

func TestRegisterHashesPassword(t *testing.T) {
	mem := memory.New()
	svc := New(mem.Users, nil, nil, nil)

	u := &user.User{TenantID: "t1", Email: "Guest@Example.com", Name: "Guest"}
	created, err := svc.Register(context.Background(), u, "correct horse battery", usecase.Context{ActorID: "a1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Email != "guest@example.com" {
		t.Fatalf("email not normalized: %s", created.Email)
	}
	if created.PasswordHash == "" || created.PasswordHash == "correct horse battery" {
		t.Fatal("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse battery")) != nil {
		t.Fatal("stored hash does not verify the original password")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	mem := memory.New()
	svc := New(mem.Users, nil, nil, nil)

	u := &user.User{TenantID: "t1", Email: "guest@example.com", Name: "Guest"}
	if _, err := svc.Register(context.Background(), u, "short", usecase.Context{ActorID: "a1"}); !errors.Is(err, errors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	persisted, _ := mem.Users.List(context.Background())
	if len(persisted) != 0 {
		t.Fatal("rejected registration must not reach storage")
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc := New(memory.New().Users, nil, nil, nil)

	u := &user.User{TenantID: "t1", Email: "not-an-email", Name: "Guest"}
	if _, err := svc.Register(context.Background(), u, "long enough password", usecase.Context{ActorID: "a1"}); !errors.Is(err, errors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
