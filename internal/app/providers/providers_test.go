package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roamdine/platform/internal/errors"
)

func TestMockPaymentAlwaysSucceeds(t *testing.T) {
	p := NewMockPayment()

	charge, err := p.Charge(context.Background(), 5000, "USD", map[string]string{"order_id": "o1"})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if charge.Status != "succeeded" {
		t.Fatalf("status = %s, want succeeded", charge.Status)
	}
	if charge.ID == "" {
		t.Fatal("expected charge id")
	}
	if len(p.Charges()) != 1 {
		t.Fatalf("recorded %d charges, want 1", len(p.Charges()))
	}
}

func TestMockPaymentRejectsBadInput(t *testing.T) {
	p := NewMockPayment()

	if _, err := p.Charge(context.Background(), -1, "USD", nil); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("negative amount should fail, got %v", err)
	}
	if _, err := p.Charge(context.Background(), 100, "DOLLARS", nil); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("bad currency should fail, got %v", err)
	}
}

func TestMockSearchRequiresIndexAndID(t *testing.T) {
	s := NewMockSearch()

	if err := s.IndexDocument(context.Background(), "", Document{ID: "d1"}); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("missing index should fail, got %v", err)
	}
	if err := s.IndexDocument(context.Background(), "listings", Document{}); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("missing id should fail, got %v", err)
	}
	if err := s.IndexDocument(context.Background(), "listings", Document{ID: "d1"}); err != nil {
		t.Fatalf("index: %v", err)
	}
	if len(s.Documents("listings")) != 1 {
		t.Fatal("document not recorded")
	}
}

func TestMockMessagingRequiresDestinationAndBody(t *testing.T) {
	m := NewMockMessaging()

	if err := m.Send(context.Background(), "", "hi", nil); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("missing destination should fail, got %v", err)
	}
	if err := m.Send(context.Background(), "guest-1", "", nil); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("missing body should fail, got %v", err)
	}
	if err := m.Send(context.Background(), "guest-1", "hi", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(m.Sent()) != 1 {
		t.Fatal("delivery not recorded")
	}
}

func TestResolveDefaultsToMocks(t *testing.T) {
	set, err := Resolve(Config{}, "development", nil, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := set.Payment.(*MockPayment); !ok {
		t.Fatalf("payment = %T, want mock", set.Payment)
	}
	if _, ok := set.Search.(*MockSearch); !ok {
		t.Fatalf("search = %T, want mock", set.Search)
	}
	if _, ok := set.Messaging.(*MockMessaging); !ok {
		t.Fatalf("messaging = %T, want mock", set.Messaging)
	}
}

func TestResolveRejectsUnconfiguredPaymentInProduction(t *testing.T) {
	if _, err := Resolve(Config{}, "production", nil, nil); err == nil {
		t.Fatal("expected startup failure for unconfigured payment provider in production")
	}
}

func TestResolveRejectsUnknownProvider(t *testing.T) {
	if _, err := Resolve(Config{Payment: "carrier-pigeon"}, "development", nil, nil); err == nil {
		t.Fatal("expected error for unknown provider name")
	}
}

func TestHTTPPaymentChargeSucceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key-1" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_1","status":"succeeded"}`))
	}))
	defer srv.Close()

	p, err := NewHTTPPayment(srv.Client(), srv.URL, "key-1", nil)
	if err != nil {
		t.Fatalf("new payment: %v", err)
	}
	charge, err := p.Charge(context.Background(), 5000, "USD", nil)
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if charge.ID != "ch_1" {
		t.Fatalf("charge id = %s", charge.ID)
	}
}

func TestHTTPPaymentDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"ch_2","status":"declined"}`))
	}))
	defer srv.Close()

	p, err := NewHTTPPayment(srv.Client(), srv.URL, "", nil)
	if err != nil {
		t.Fatalf("new payment: %v", err)
	}
	if _, err := p.Charge(context.Background(), 5000, "USD", nil); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("declined charge should be a provider error, got %v", err)
	}
}

func TestHTTPPaymentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewHTTPPayment(srv.Client(), srv.URL, "", nil)
	if err != nil {
		t.Fatalf("new payment: %v", err)
	}
	if _, err := p.Charge(context.Background(), 5000, "USD", nil); !errors.Is(err, errors.KindProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestHTTPConstructorsRequireEndpoint(t *testing.T) {
	if _, err := NewHTTPPayment(nil, " ", "", nil); err == nil {
		t.Fatal("payment endpoint required")
	}
	if _, err := NewHTTPSearch(nil, "", "", nil); err == nil {
		t.Fatal("search endpoint required")
	}
	if _, err := NewHTTPMessaging(nil, "", "", nil); err == nil {
		t.Fatal("messaging endpoint required")
	}
}
