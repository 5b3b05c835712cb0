package jobs

import (
	"context"
	"time"

	"github.com/kirish34/teketeke/internal/logger"
)

// TimeoutPendingPayments marks PENDING transactions older than the
// configured window as TIMEOUT. The payment network retries confirmations
// on its own schedule; a confirmation arriving after this sweep still
// settles normally because the settlement guard only excludes SUCCESS.
func (jr *JobRunner) TimeoutPendingPayments() {
	jr.runWithRecovery("TimeoutPendingPayments", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Payments.PendingTimeoutMinutes) * time.Minute)

		n, err := jr.store.MarkTimedOut(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to time out pending payments", "error", err)
			return
		}
		if n > 0 {
			logger.Info("Timed out pending payments", "count", n, "cutoff", cutoff)
		}
	})
}

// SeedCodePool inserts any missing code pool rows. Run at startup; safe to
// repeat.
func (jr *JobRunner) SeedCodePool() {
	jr.runWithRecovery("SeedCodePool", func() {
		if err := jr.services.CodePool.SeedPool(context.Background()); err != nil {
			logger.Error("Failed to seed code pool", "error", err)
		}
	})
}
