package orders

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/roamdine/platform/internal/app/domain/order"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/app/system"
	"github.com/roamdine/platform/pkg/logger"
)

// DefaultStaleAfter is how long an order may sit pending before the
// reconciler marks it failed.
const DefaultStaleAfter = 15 * time.Minute

// DefaultSchedule runs the sweep every minute.
const DefaultSchedule = "@every 1m"

var _ system.Service = (*Reconciler)(nil)

// Reconciler sweeps orders stuck in pending. An order lands there when the
// charge failed and the compensating transition also failed, when the process
// died between persist and charge, or when the paid transition failed after a
// successful charge. In that last case the sweep marks a charged order
// failed; the charge id survives on the audit trail for manual reconciliation.
type Reconciler struct {
	repo       storage.Repository[*order.Order]
	statuses   storage.OrderStatusUpdater
	log        *logger.Logger
	staleAfter time.Duration
	schedule   string
	now        func() time.Time

	mu     sync.Mutex
	runner *cron.Cron
}

// NewReconciler creates a lifecycle-managed pending-order sweeper.
func NewReconciler(repo storage.Repository[*order.Order], statuses storage.OrderStatusUpdater, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.NewDefault("order-reconciler")
	}
	return &Reconciler{
		repo:       repo,
		statuses:   statuses,
		log:        log,
		staleAfter: DefaultStaleAfter,
		schedule:   DefaultSchedule,
		now:        time.Now,
	}
}

// WithStaleAfter overrides the pending age threshold.
func (r *Reconciler) WithStaleAfter(d time.Duration) *Reconciler {
	if d > 0 {
		r.staleAfter = d
	}
	return r
}

func (r *Reconciler) Name() string { return "order-reconciler" }

func (r *Reconciler) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runner != nil {
		return nil
	}
	runner := cron.New()
	if _, err := runner.AddFunc(r.schedule, func() { r.Sweep(context.Background()) }); err != nil {
		return err
	}
	runner.Start()
	r.runner = runner
	r.log.WithField("schedule", r.schedule).Info("order reconciler started")
	return nil
}

func (r *Reconciler) Stop(ctx context.Context) error {
	r.mu.Lock()
	runner := r.runner
	r.runner = nil
	r.mu.Unlock()
	if runner == nil {
		return nil
	}
	select {
	case <-runner.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	r.log.Info("order reconciler stopped")
	return nil
}

// Sweep marks every pending order older than the threshold as failed and
// returns how many transitions applied.
func (r *Reconciler) Sweep(ctx context.Context) int {
	records, err := r.repo.List(ctx)
	if err != nil {
		r.log.WithError(err).Warn("reconciler list failed")
		return 0
	}

	cutoff := r.now().UTC().Add(-r.staleAfter)
	swept := 0
	for _, o := range records {
		if o.Status != order.StatusPending || o.CreatedAt.After(cutoff) {
			continue
		}
		if err := r.statuses.UpdateOrderStatus(ctx, o.ID, order.StatusFailed, ""); err != nil {
			r.log.WithError(err).WithField("order_id", o.ID).Warn("reconciler transition failed")
			continue
		}
		r.log.WithField("order_id", o.ID).Info("stale pending order marked failed")
		swept++
	}
	return swept
}
