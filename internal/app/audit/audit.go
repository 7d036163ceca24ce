// Package audit records domain events on a side channel. Recording is
// best-effort: a failing sink never aborts the calling use-case; failures are
// routed to the diagnostic logger and counted in metrics instead.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/roamdine/platform/internal/app/metrics"
	"github.com/roamdine/platform/pkg/logger"
)

// Payload carries the event detail.
type Payload = map[string]any

// Logger is the audit port use-cases record through.
type Logger interface {
	Record(ctx context.Context, event string, payload Payload)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Record(context.Context, string, Payload) {}

// Entry is one recorded domain event.
type Entry struct {
	Time    time.Time `json:"time"`
	Event   string    `json:"event"`
	Payload Payload   `json:"payload,omitempty"`
}

// Sink persists entries beyond the in-memory trail.
type Sink interface {
	Write(entry Entry) error
}

// Trail keeps a bounded in-memory log of recent events and forwards each
// entry to an optional sink.
type Trail struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	sink    Sink
	log     *logger.Logger
}

var _ Logger = (*Trail)(nil)

// NewTrail creates a trail keeping at most max entries in memory.
func NewTrail(max int, sink Sink, log *logger.Logger) *Trail {
	if max <= 0 {
		max = 200
	}
	if log == nil {
		log = logger.NewDefault("audit")
	}
	return &Trail{max: max, sink: sink, log: log}
}

// Record appends an entry. It never panics or returns an error to the caller;
// sink failures are logged and counted.
func (t *Trail) Record(_ context.Context, event string, payload Payload) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordAuditFailure()
			t.log.WithField("event", event).Warnf("audit record panicked: %v", r)
		}
	}()

	entry := Entry{Time: time.Now().UTC(), Event: event, Payload: payload}

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
	sink := t.sink
	t.mu.Unlock()

	if sink != nil {
		if err := sink.Write(entry); err != nil {
			metrics.RecordAuditFailure()
			t.log.WithError(err).WithField("event", event).Warn("audit sink write failed")
		}
	}
}

// List returns a copy of the retained entries, oldest first.
func (t *Trail) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ListLimit returns up to limit of the most recent entries.
func (t *Trail) ListLimit(limit int) []Entry {
	if limit <= 0 || limit > t.max {
		limit = t.max
	}
	all := t.List()
	if len(all) <= limit {
		return all
	}
	return all[len(all)-limit:]
}
