package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yatra-booking/internal/config"
	"yatra-booking/internal/domain"
	"yatra-booking/internal/infrastructure/payment"
	"yatra-booking/internal/repo"
)

// Settler finishes the booking half of a captured payment.
type Settler interface {
	ResumeSettlement(ctx context.Context, entry domain.Settlement) error
}

// Report summarises one reconciliation pass.
type Report struct {
	Resumed      int
	ResumeFailed int
	OrphansSeen  int
	OrphansPaid  int
	StalePending int

	// Exhausted counts entries that hit the attempt cap during this pass.
	Exhausted int
}

type ReconciliationWorker struct {
	settlements repo.SettlementRepo
	payments    repo.PaymentRepo
	settler     Settler
	gateway     payment.Gateway
	logger      *zap.Logger

	interval    time.Duration
	grace       time.Duration
	batch       int
	maxAttempts int
	now         func() time.Time
}

func NewReconciliationWorker(
	settlements repo.SettlementRepo,
	payments repo.PaymentRepo,
	settler Settler,
	gateway payment.Gateway,
	logger *zap.Logger,
	cfg config.ReconcileConfig,
) *ReconciliationWorker {
	if cfg.Batch <= 0 {
		cfg.Batch = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &ReconciliationWorker{
		settlements: settlements,
		payments:    payments,
		settler:     settler,
		gateway:     gateway,
		logger:      logger,
		interval:    cfg.Interval,
		grace:       cfg.Grace,
		batch:       cfg.Batch,
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
	}
}

func (rw *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(rw.interval)
	defer ticker.Stop()

	rw.logger.Info("reconciliation worker started",
		zap.Duration("interval", rw.interval),
		zap.Duration("grace", rw.grace),
		zap.Int("max_attempts", rw.maxAttempts),
	)

	for {
		select {
		case <-ctx.Done():
			rw.logger.Info("reconciliation worker stopped")
			return
		case <-ticker.C:
			if _, err := rw.RunOnce(ctx); err != nil {
				rw.logger.Error("reconciliation pass failed", zap.Error(err))
			}
		}
	}
}

// RunOnce looks at journal entries that have been idle for longer than
// the grace period. Captured payments get their booking update retried;
// orphaned gateway orders are checked remotely and annotated, never
// turned into local payments. Entries that reach maxAttempts are left
// open with a note and no longer picked up.
func (rw *ReconciliationWorker) RunOnce(ctx context.Context) (Report, error) {
	var report Report
	cutoff := rw.now().Add(-rw.grace)

	captured, err := rw.settlements.FindByPhase(ctx, domain.PhasePaymentCaptured, cutoff, rw.maxAttempts, rw.batch)
	if err != nil {
		return report, fmt.Errorf("load captured settlements: %w", err)
	}
	for _, entry := range captured {
		if err := rw.settler.ResumeSettlement(ctx, entry); err != nil {
			report.ResumeFailed++
			rw.logger.Warn("booking settlement retry failed",
				zap.Error(err),
				zap.String("gateway_order_id", entry.GatewayOrderID),
				zap.Int("attempts", entry.Attempts+1),
			)
			if rw.exhaust(ctx, entry, err) {
				report.Exhausted++
			}
			continue
		}
		report.Resumed++
		rw.logger.Info("booking settled by reconciliation",
			zap.String("gateway_order_id", entry.GatewayOrderID),
		)
	}

	orphans, err := rw.settlements.FindByPhase(ctx, domain.PhaseOrderOrphaned, cutoff, rw.maxAttempts, rw.batch)
	if err != nil {
		return report, fmt.Errorf("load orphaned settlements: %w", err)
	}
	for _, entry := range orphans {
		report.OrphansSeen++
		paid, err := rw.inspectOrphan(ctx, entry)
		if err != nil {
			rw.logger.Warn("orphan lookup failed",
				zap.Error(err),
				zap.String("gateway_order_id", entry.GatewayOrderID),
			)
			if rw.exhaust(ctx, entry, err) {
				report.Exhausted++
			}
			continue
		}
		if paid {
			report.OrphansPaid++
		}
	}

	stale, err := rw.payments.FindPendingBefore(ctx, cutoff, rw.batch)
	if err != nil {
		return report, fmt.Errorf("load pending payments: %w", err)
	}
	report.StalePending = len(stale)

	if report != (Report{}) {
		rw.logger.Info("reconciliation pass complete",
			zap.Int("resumed", report.Resumed),
			zap.Int("resume_failed", report.ResumeFailed),
			zap.Int("orphans_seen", report.OrphansSeen),
			zap.Int("orphans_paid", report.OrphansPaid),
			zap.Int("stale_pending", report.StalePending),
			zap.Int("exhausted", report.Exhausted),
		)
	}
	return report, nil
}

func (rw *ReconciliationWorker) inspectOrphan(ctx context.Context, entry domain.Settlement) (bool, error) {
	order, err := rw.gateway.FetchOrder(ctx, entry.GatewayOrderID)
	if err != nil {
		if ferr := rw.settlements.Fail(ctx, entry.GatewayOrderID, err.Error()); ferr != nil {
			rw.logger.Error("settlement journal write failed", zap.Error(ferr))
		}
		return false, err
	}

	note := fmt.Sprintf("gateway status %s at %s", order.Status, rw.now().UTC().Format(time.RFC3339))
	if err := rw.settlements.Annotate(ctx, entry.GatewayOrderID, note); err != nil {
		return false, err
	}

	paid := order.Status == payment.OrderPaid
	if paid {
		rw.logger.Error("customer paid a gateway order with no local payment record",
			zap.String("gateway_order_id", entry.GatewayOrderID),
			zap.Int64("amount", order.Amount),
		)
	}
	return paid, nil
}

// exhaust notes on the entry that retries stopped once the failure just
// recorded for it reaches maxAttempts.
func (rw *ReconciliationWorker) exhaust(ctx context.Context, entry domain.Settlement, cause error) bool {
	attempts := entry.Attempts + 1
	if attempts < rw.maxAttempts {
		return false
	}
	rw.logger.Error("settlement retries exhausted, manual follow-up needed",
		zap.Error(cause),
		zap.String("gateway_order_id", entry.GatewayOrderID),
		zap.String("phase", string(entry.Phase)),
		zap.Int("attempts", attempts),
	)
	note := fmt.Sprintf("retries stopped after %d attempts at %s: %v",
		attempts, rw.now().UTC().Format(time.RFC3339), cause)
	if err := rw.settlements.Annotate(ctx, entry.GatewayOrderID, note); err != nil {
		rw.logger.Error("settlement journal write failed",
			zap.Error(err),
			zap.String("gateway_order_id", entry.GatewayOrderID),
		)
	}
	return true
}
