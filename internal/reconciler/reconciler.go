// Package reconciler finishes the registry writes recorded as partial
// failures: claims whose chain mint succeeded but whose approval write did
// not commit, and purchases whose escrow settlement succeeded but whose
// registry write did not. It replays the write from the persisted task
// payload and never re-invokes the chain.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/messaging"
	"github.com/jonumhills/townhall-rwa/internal/store"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// reconcilerReviewer is recorded on approvals completed by the repair job
const reconcilerReviewer = "system:reconciler"

// Config holds the reconciler configuration
type Config struct {
	// SweepInterval is the pause between sweeps
	SweepInterval time.Duration
	// BatchSize caps the tasks drained per sweep
	BatchSize int
	// Workers bounds the concurrent task repairs
	Workers int
}

// Reconciler is a long-running background job that drains pending
// reconciliation tasks
type Reconciler interface {
	// Start begins the sweep loop; blocks until the context is canceled
	Start(ctx context.Context) error
	// Name returns the job name for logging
	Name() string
}

type reconciler struct {
	cfg       Config
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
}

// New creates the partial-failure reconciler
func New(cfg Config, s store.Store, publisher messaging.Publisher, clock adapter.Clock, jsonAdapter adapter.JSON) Reconciler {
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	return &reconciler{
		cfg:       cfg,
		store:     s,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
	}
}

func (r *reconciler) Name() string {
	return "partial-failure-reconciler"
}

// Start begins the sweep loop
func (r *reconciler) Start(ctx context.Context) error {
	logger.InfoCtx(ctx, "starting reconciler",
		zap.Duration("sweep_interval", r.cfg.SweepInterval),
		zap.Int("batch_size", r.cfg.BatchSize))

	for {
		if err := r.sweep(ctx); err != nil {
			logger.ErrorCtx(ctx, err)
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "reconciler stopped")
			return ctx.Err()
		case <-r.clock.After(r.cfg.SweepInterval):
		}
	}
}

// sweep drains one batch of pending tasks through a bounded worker pool
func (r *reconciler) sweep(ctx context.Context) error {
	tasks, err := r.store.GetPendingReconciliationTasks(ctx, r.cfg.BatchSize)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	logger.InfoCtx(ctx, "reconciling partial failures", zap.Int("tasks", len(tasks)))

	pool := pond.NewPool(r.cfg.Workers)
	for _, task := range tasks {
		task := task
		pool.Submit(func() {
			if err := r.resolve(ctx, task); err != nil {
				logger.ErrorCtx(ctx, err,
					zap.Int64("task_id", task.ID),
					zap.String("claim_id", task.ClaimID))
			}
		})
	}
	pool.StopAndWait()

	return nil
}

// resolve dispatches one task to the replay path its kind selects
func (r *reconciler) resolve(ctx context.Context, task *schema.ReconciliationTask) error {
	if task.Kind == schema.ReconciliationKindPurchase {
		return r.resolvePurchase(ctx, task)
	}
	return r.resolveMint(ctx, task)
}

// resolveMint replays the approval write for one task. The claim may already
// be approved when a Decide retry beat the sweep; the task is then just
// closed.
func (r *reconciler) resolveMint(ctx context.Context, task *schema.ReconciliationTask) error {
	notes := "approval completed from recorded mint references"
	operation := func() error {
		err := r.store.ApproveClaim(ctx, store.ApproveClaimInput{
			ClaimID:       task.ClaimID,
			NFTRef:        task.NFTRef,
			ShareTokenRef: task.ShareTokenRef,
			TotalShares:   domain.TotalSharesPerParcel,
			Reviewer:      reconcilerReviewer,
			ReviewNotes:   &notes,
			DecidedAt:     r.clock.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, domain.ErrClaimNotPending) || errors.Is(err, domain.ErrClaimNotFound) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	err := backoff.Retry(operation, backoff.WithMaxRetries(policy, 5))
	if err != nil && !errors.Is(err, domain.ErrClaimNotPending) {
		return err
	}
	if errors.Is(err, domain.ErrClaimNotPending) {
		// Someone already finished the approval; close the task.
		logger.InfoCtx(ctx, "claim already decided, closing task",
			zap.String("claim_id", task.ClaimID))
	}

	return r.closeTask(ctx, task)
}

// resolvePurchase replays the registry write for a purchase whose escrow
// settlement already committed. The settlement transaction reference keys the
// idempotency check: a holding that already carries it means a prior sweep or
// a manual repair got there first.
func (r *reconciler) resolvePurchase(ctx context.Context, task *schema.ReconciliationTask) error {
	var input store.SettlePurchaseInput
	if err := r.json.Unmarshal(task.Receipt, &input); err != nil {
		return fmt.Errorf("task %d carries an unreadable settlement payload: %w", task.ID, err)
	}

	existing, err := r.store.GetHoldingByTxRef(ctx, input.TxRef)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.InfoCtx(ctx, "purchase already recorded, closing task",
			zap.String("tx_ref", input.TxRef))
		return r.closeTask(ctx, task)
	}

	operation := func() error {
		_, _, err := r.store.SettlePurchase(ctx, input)
		if err != nil {
			// Conflicts mean the registry moved on since the settlement, for
			// example the owner relisted fewer shares. The swap still
			// happened on-chain, so the task stays open for an operator.
			if errors.Is(err, domain.ErrListingNotFound) ||
				errors.Is(err, domain.ErrInsufficientListedShares) ||
				errors.Is(err, domain.ErrSelfTradeRejected) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(operation, backoff.WithMaxRetries(policy, 5)); err != nil {
		return err
	}

	return r.closeTask(ctx, task)
}

// closeTask marks a task resolved and announces the repair
func (r *reconciler) closeTask(ctx context.Context, task *schema.ReconciliationTask) error {
	if err := r.store.ResolveReconciliationTask(ctx, task.ID, r.clock.Now().UTC()); err != nil {
		return err
	}

	if r.publisher != nil {
		event := &domain.ParcelEvent{
			EventType: domain.EventReconciliationFixed,
			PIN:       task.PIN,
			CountyID:  task.CountyID,
			ClaimID:   task.ClaimID,
		}
		if err := r.publisher.PublishParcelEvent(ctx, event); err != nil {
			logger.WarnCtx(ctx, "failed to publish reconciliation event",
				zap.String("claim_id", task.ClaimID),
				zap.Error(err))
		}
	}

	return nil
}
