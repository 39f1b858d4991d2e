// Package worker pushes the overtime summary into its Google Sheets
// mirror. Messages only carry a revision number; the worker always
// reloads the ledger from storage and recomputes the report, so a
// stale or duplicated message can never write stale data.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"otslip/internal/amqp"
	"otslip/internal/core"
	"otslip/internal/sheets"
	"otslip/internal/summary"
)

// StateSource is the slice of the storage layer the worker needs.
type StateSource interface {
	Load(ctx context.Context) (core.LedgerState, bool, error)
	Revision(ctx context.Context) (int64, error)
}

type SyncWorker struct {
	storage StateSource
	writer  sheets.SummaryWriter

	mu         sync.Mutex
	lastPushed int64
}

func NewSyncWorker(storage StateSource, writer sheets.SummaryWriter) *SyncWorker {
	return &SyncWorker{storage: storage, writer: writer, lastPushed: -1}
}

// HandleSyncMessage processes a single summary sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SummarySyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"pay_period_end", msg.PayPeriodEnd,
		"revision", msg.Revision)

	w.mu.Lock()
	if msg.Revision >= 0 && msg.Revision <= w.lastPushed {
		w.mu.Unlock()
		slog.InfoContext(ctx, "Skipping stale sync message",
			"revision", msg.Revision,
			"last_pushed", w.lastPushed)
		return nil
	}
	w.mu.Unlock()

	return w.push(ctx)
}

// StartupSyncCheck pushes the current summary once at worker startup.
// This recovers from messages lost while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	revision, err := w.storage.Revision(ctx)
	if err != nil {
		return fmt.Errorf("read revision for startup check: %w", err)
	}

	slog.InfoContext(ctx, "Running startup sync", "revision", revision)
	return w.push(ctx)
}

// RunReconcileLoop re-pushes the summary whenever the stored revision has
// moved past the last push. It returns when ctx is cancelled.
func (w *SyncWorker) RunReconcileLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ReconcileOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Reconcile failed", "error", err)
			}
		}
	}
}

// ReconcileOnce compares the stored revision against the last pushed one
// and pushes if storage has moved ahead.
func (w *SyncWorker) ReconcileOnce(ctx context.Context) error {
	revision, err := w.storage.Revision(ctx)
	if err != nil {
		return fmt.Errorf("read revision: %w", err)
	}

	w.mu.Lock()
	behind := revision > w.lastPushed
	w.mu.Unlock()
	if !behind {
		return nil
	}

	slog.InfoContext(ctx, "Reconciling missed revisions",
		"stored_revision", revision)
	return w.push(ctx)
}

// push reloads the ledger, recomputes the report and writes the mirror.
// The stored revision is read before the load so a save that lands in
// between triggers one extra push instead of being missed.
func (w *SyncWorker) push(ctx context.Context) error {
	revision, err := w.storage.Revision(ctx)
	if err != nil {
		return fmt.Errorf("read revision: %w", err)
	}

	state, ok, err := w.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger state: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "No ledger state stored yet, mirroring empty summary")
	}

	report := summary.Table(state)
	if err := w.writer.WriteSummary(ctx, report, state.PayPeriodEnd); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	w.mu.Lock()
	if revision > w.lastPushed {
		w.lastPushed = revision
	}
	w.mu.Unlock()

	slog.InfoContext(ctx, "Summary pushed",
		"revision", revision,
		"rows", len(report.Rows),
		"employees", report.UniqueEmployees)
	return nil
}
