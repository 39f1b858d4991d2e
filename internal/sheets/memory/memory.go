// Package memory is the in-process SummaryWriter used by tests and by
// deployments that run without a spreadsheet configured.
package memory

import (
	"context"
	"sync"

	"otslip/internal/core"
	"otslip/internal/summary"
)

type Store struct {
	mu     sync.Mutex
	report summary.Report
	end    core.Date
	writes int
}

func New() *Store {
	return &Store{}
}

// WriteSummary keeps only the latest push, like the real sheet does.
func (s *Store) WriteSummary(_ context.Context, report summary.Report, end core.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	s.end = end
	s.writes++
	return nil
}

// Last returns the most recently written report and its pay period end.
func (s *Store) Last() (summary.Report, core.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report, s.end
}

// Writes counts completed WriteSummary calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
