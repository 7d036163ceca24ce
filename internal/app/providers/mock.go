package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/roamdine/platform/internal/app/metrics"
	"github.com/roamdine/platform/internal/errors"
)

// MockPayment always succeeds. It is the default when no real gateway is
// configured and the fixture used by tests.
type MockPayment struct {
	mu      sync.Mutex
	charges []Charge
}

var _ Payment = (*MockPayment)(nil)

func NewMockPayment() *MockPayment { return &MockPayment{} }

func (m *MockPayment) Charge(_ context.Context, amountCents int64, currency string, _ map[string]string) (Charge, error) {
	if amountCents < 0 {
		return Charge{}, errors.Provider("payment", fmt.Errorf("amount must not be negative"))
	}
	if len(strings.TrimSpace(currency)) != 3 {
		return Charge{}, errors.Provider("payment", fmt.Errorf("currency must be a 3-letter code"))
	}
	charge := Charge{ID: uuid.NewString(), Status: "succeeded"}
	m.mu.Lock()
	m.charges = append(m.charges, charge)
	m.mu.Unlock()
	metrics.RecordProviderCall("payment", "ok")
	return charge, nil
}

// Charges returns the charges recorded so far.
func (m *MockPayment) Charges() []Charge {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Charge, len(m.charges))
	copy(out, m.charges)
	return out
}

// MockSearch keeps indexed documents in memory.
type MockSearch struct {
	mu      sync.Mutex
	indexes map[string][]Document
}

var _ Search = (*MockSearch)(nil)

func NewMockSearch() *MockSearch {
	return &MockSearch{indexes: make(map[string][]Document)}
}

func (m *MockSearch) IndexDocument(_ context.Context, index string, doc Document) error {
	if strings.TrimSpace(index) == "" || strings.TrimSpace(doc.ID) == "" {
		return errors.Provider("search", fmt.Errorf("index and document id are required"))
	}
	m.mu.Lock()
	m.indexes[index] = append(m.indexes[index], doc)
	m.mu.Unlock()
	metrics.RecordProviderCall("search", "ok")
	return nil
}

// Documents returns the documents indexed under the given index.
func (m *MockSearch) Documents(index string) []Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Document, len(m.indexes[index]))
	copy(out, m.indexes[index])
	return out
}

// SentMessage is one delivery recorded by the mock messaging provider.
type SentMessage struct {
	Destination string
	Body        string
	Metadata    map[string]string
}

// MockMessaging records deliveries in memory.
type MockMessaging struct {
	mu   sync.Mutex
	sent []SentMessage
}

var _ Messaging = (*MockMessaging)(nil)

func NewMockMessaging() *MockMessaging { return &MockMessaging{} }

func (m *MockMessaging) Send(_ context.Context, destination, body string, metadata map[string]string) error {
	if strings.TrimSpace(destination) == "" {
		return errors.Provider("messaging", fmt.Errorf("destination is required"))
	}
	if strings.TrimSpace(body) == "" {
		return errors.Provider("messaging", fmt.Errorf("body is required"))
	}
	m.mu.Lock()
	m.sent = append(m.sent, SentMessage{Destination: destination, Body: body, Metadata: metadata})
	m.mu.Unlock()
	metrics.RecordProviderCall("messaging", "ok")
	return nil
}

// Sent returns the deliveries recorded so far.
func (m *MockMessaging) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
