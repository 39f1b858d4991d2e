package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"otslip/internal/core"
	"otslip/internal/export/excel"
	"otslip/internal/export/slips"
	"otslip/internal/summary"
)

// ErrExportBusy means the same export action is already running.
var ErrExportBusy = errors.New("export already running")

type Document struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// OvertimeBundle is the filled-slip binder plus the summary workbook,
// built together from one snapshot.
type OvertimeBundle struct {
	PDF   Document
	Excel Document
}

// ExportService builds the downloadable documents. Each action is
// single-flight: a second request for the same action while one is in
// progress gets ErrExportBusy instead of queueing.
type ExportService struct {
	deptCode string

	slipsMu    sync.Mutex
	overtimeMu sync.Mutex
}

func NewExportService(deptCode string) *ExportService {
	return &ExportService{deptCode: deptCode}
}

// BlankSlips renders a header-only slip for every roster employee.
func (s *ExportService) BlankSlips(ctx context.Context, state core.LedgerState) (Document, error) {
	if !s.slipsMu.TryLock() {
		return Document{}, ErrExportBusy
	}
	defer s.slipsMu.Unlock()

	opts := slips.Options{DeptCode: s.deptCode, PayPeriodEnd: state.PayPeriodEnd}
	pdf, err := slips.Blank(summary.SortEmployeesForExport(state.Employees), opts)
	if err != nil {
		return Document{}, fmt.Errorf("render blank slips: %w", err)
	}

	slog.InfoContext(ctx, "Blank slip binder built",
		"employees", len(state.Employees),
		"bytes", len(pdf))

	return Document{
		Name:        slips.BlankName(state.PayPeriodEnd),
		ContentType: "application/pdf",
		Bytes:       pdf,
	}, nil
}

// OvertimeDocuments renders the filled slips and the summary workbook
// concurrently from the same snapshot.
func (s *ExportService) OvertimeDocuments(ctx context.Context, state core.LedgerState) (OvertimeBundle, error) {
	if !s.overtimeMu.TryLock() {
		return OvertimeBundle{}, ErrExportBusy
	}
	defer s.overtimeMu.Unlock()

	report := summary.Table(state)
	opts := slips.Options{DeptCode: s.deptCode, PayPeriodEnd: state.PayPeriodEnd}

	var bundle OvertimeBundle
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		pdf, err := slips.Filled(exportRows(report), opts)
		if err != nil {
			return fmt.Errorf("render filled slips: %w", err)
		}
		bundle.PDF = Document{
			Name:        slips.FilledName(state.PayPeriodEnd),
			ContentType: "application/pdf",
			Bytes:       pdf,
		}
		return nil
	})
	g.Go(func() error {
		wb, err := excel.Workbook(report, state.PayPeriodEnd, s.deptCode)
		if err != nil {
			return fmt.Errorf("build summary workbook: %w", err)
		}
		bundle.Excel = Document{
			Name:        excel.Name(state.PayPeriodEnd),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Bytes:       wb,
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return OvertimeBundle{}, err
	}

	slog.InfoContext(ctx, "Overtime documents built",
		"rows", len(report.Rows),
		"pdf_bytes", len(bundle.PDF.Bytes),
		"excel_bytes", len(bundle.Excel.Bytes))

	return bundle, nil
}

// exportRows reorders report rows case-insensitively by (last, first),
// the order the printed documents use.
func exportRows(report summary.Report) []summary.Row {
	rows := make([]summary.Row, len(report.Rows))
	copy(rows, report.Rows)
	sort.SliceStable(rows, func(a, b int) bool {
		la, lb := strings.ToLower(rows[a].Last), strings.ToLower(rows[b].Last)
		if la != lb {
			return la < lb
		}
		return strings.ToLower(rows[a].First) < strings.ToLower(rows[b].First)
	})
	return rows
}
