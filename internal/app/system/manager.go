package system

import (
	"context"
	"fmt"
	"sync"

	"github.com/roamdine/platform/pkg/logger"
)

// Manager starts registered services in registration order and stops them in
// reverse. A failed start stops the services already running before the error
// is returned.
type Manager struct {
	log *logger.Logger

	mu       sync.Mutex
	services []Service
	started  []Service
}

// NewManager creates an empty manager.
func NewManager(log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewDefault("system")
	}
	return &Manager{log: log}
}

// Register adds a service. Registration after Start is not supported.
func (m *Manager) Register(svc Service) {
	if svc == nil {
		return
	}
	m.mu.Lock()
	m.services = append(m.services, svc)
	m.mu.Unlock()
}

// Start brings up every registered service.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, svc := range m.services {
		if err := svc.Start(ctx); err != nil {
			m.stopLocked(ctx)
			return fmt.Errorf("start %s: %w", svc.Name(), err)
		}
		m.started = append(m.started, svc)
		m.log.WithField("service", svc.Name()).Info("service started")
	}
	return nil
}

// Stop shuts down the started services in reverse order. Stop errors are
// logged and do not abort the remaining shutdowns.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(ctx)
}

func (m *Manager) stopLocked(ctx context.Context) {
	for i := len(m.started) - 1; i >= 0; i-- {
		svc := m.started[i]
		if err := svc.Stop(ctx); err != nil {
			m.log.WithError(err).WithField("service", svc.Name()).Warn("service stop failed")
			continue
		}
		m.log.WithField("service", svc.Name()).Info("service stopped")
	}
	m.started = nil
}

// Names returns the registered service names in start order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.services))
	for _, svc := range m.services {
		names = append(names, svc.Name())
	}
	return names
}
