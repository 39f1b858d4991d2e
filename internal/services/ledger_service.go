// Package services orchestrates ledger mutations across SQLite and AMQP
// and builds the downloadable documents.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"otslip/internal/core"
	"otslip/internal/ledger"
	"otslip/internal/roster"
	"otslip/internal/summary"
)

// SyncPublisher publishes a summary-sync notification after a mutation.
// *amqp.Client satisfies it.
type SyncPublisher interface {
	PublishSummarySync(ctx context.Context, payPeriodEnd string, revision int64) error
}

// LedgerService wraps every ledger mutation with the sync publish.
// Publish failures never fail the mutation; the state is already saved
// locally and the worker's reconcile loop catches up.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher SyncPublisher
}

func NewLedgerService(l *ledger.Ledger, publisher SyncPublisher) *LedgerService {
	return &LedgerService{ledger: l, publisher: publisher}
}

func (s *LedgerService) Snapshot() core.LedgerState {
	return s.ledger.Snapshot()
}

func (s *LedgerService) Summary() summary.Report {
	return summary.Table(s.ledger.Snapshot())
}

// ImportRoster parses an uploaded CSV and replaces the roster. A parse
// failure leaves the ledger untouched.
func (s *LedgerService) ImportRoster(ctx context.Context, file []byte) ([]core.Employee, error) {
	employees, err := roster.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if err := s.ledger.SetRoster(ctx, employees); err != nil {
		return nil, fmt.Errorf("set roster: %w", err)
	}
	s.publishSync(ctx)
	return employees, nil
}

func (s *LedgerService) ClearRoster(ctx context.Context) error {
	if err := s.ledger.ClearRoster(ctx); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	s.publishSync(ctx)
	return nil
}

func (s *LedgerService) SetPayPeriodEnd(ctx context.Context, end core.Date) error {
	if err := s.ledger.SetPayPeriodEnd(ctx, end); err != nil {
		return fmt.Errorf("set pay period end: %w", err)
	}
	s.publishSync(ctx)
	return nil
}

func (s *LedgerService) AddEntry(ctx context.Context, empNo string, date core.Date, category core.Category, hours core.Hours) (core.Entry, error) {
	entry, err := s.ledger.AddEntry(ctx, empNo, date, category, hours)
	if err != nil {
		return core.Entry{}, err
	}
	s.publishSync(ctx)
	return entry, nil
}

func (s *LedgerService) RemoveEntry(ctx context.Context, index int) (core.Entry, error) {
	entry, err := s.ledger.RemoveEntry(ctx, index)
	if err != nil {
		return core.Entry{}, err
	}
	s.publishSync(ctx)
	return entry, nil
}

func (s *LedgerService) ClearSession(ctx context.Context) error {
	if err := s.ledger.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.publishSync(ctx)
	return nil
}

func (s *LedgerService) publishSync(ctx context.Context) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return
	}

	end := ""
	if d := s.ledger.Snapshot().PayPeriodEnd; !d.IsZero() {
		end = d.ISO()
	}
	revision := s.ledger.Revision()
	if err := s.publisher.PublishSummarySync(ctx, end, revision); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"revision", revision, "error", err)
	}
}
