package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusUnprocessableEntity},
		{RateLimited("a1:tenant:create"), http.StatusTooManyRequests},
		{Authorization("missing actor"), http.StatusUnauthorized},
		{Provider("payment", stderrors.New("boom")), http.StatusBadGateway},
		{Persistence(stderrors.New("boom")), http.StatusInternalServerError},
		{stderrors.New("foreign"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	inner := Validation("bad input")
	wrapped := fmt.Errorf("handling request: %w", inner)

	if KindOf(wrapped) != KindValidation {
		t.Fatalf("kind = %s", KindOf(wrapped))
	}
	if !Is(wrapped, KindValidation) {
		t.Fatal("Is should see through wrapping")
	}
	if Is(wrapped, KindPersistence) {
		t.Fatal("kind mismatch should not match")
	}
	if KindOf(stderrors.New("foreign")) != "" {
		t.Fatal("foreign errors carry no kind")
	}
}

func TestValidationCarriesIssues(t *testing.T) {
	err := Validation("invalid tenant",
		FieldIssue{Field: "name", Message: "name is required"},
		FieldIssue{Field: "slug", Message: "slug is required"},
	)

	var appErr *Error
	if !stderrors.As(err, &appErr) {
		t.Fatal("expected *Error")
	}
	if len(appErr.Issues) != 2 || appErr.Issues[0].Field != "name" {
		t.Fatalf("issues = %+v", appErr.Issues)
	}
}

func TestProviderWrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Provider("payment", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
	if err.Error() != "provider: provider payment failed: connection refused" {
		t.Fatalf("message = %q", err.Error())
	}
}
