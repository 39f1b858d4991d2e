package sheets

import (
	"context"

	"otslip/internal/core"
	"otslip/internal/summary"
)

// Ports for outbound adapters.
type (
	// SummaryWriter replaces the mirrored summary wholesale. The write is
	// idempotent per (end, report) pair; the worker may push the same
	// revision more than once.
	SummaryWriter interface {
		WriteSummary(ctx context.Context, report summary.Report, end core.Date) error
	}
)
