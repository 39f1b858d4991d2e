package worker

import (
	"context"
	"errors"
	"testing"

	"otslip/internal/amqp"
	"otslip/internal/core"
	"otslip/internal/sheets/memory"
)

type fakeSource struct {
	state    core.LedgerState
	ok       bool
	revision int64
	loadErr  error
	revErr   error
	loads    int
}

func (f *fakeSource) Load(context.Context) (core.LedgerState, bool, error) {
	f.loads++
	if f.loadErr != nil {
		return core.EmptyState(), false, f.loadErr
	}
	return f.state, f.ok, nil
}

func (f *fakeSource) Revision(context.Context) (int64, error) {
	if f.revErr != nil {
		return 0, f.revErr
	}
	return f.revision, nil
}

func testState() core.LedgerState {
	state := core.EmptyState()
	state.Employees = []core.Employee{{EmpNo: "E001", Last: "Alvarez", First: "Maria"}}
	state.PayPeriodEnd = core.NewDate(2024, 3, 16)
	state.Entries = []core.Entry{
		{
			EmpNo:    "E001",
			Last:     "Alvarez",
			First:    "Maria",
			Date:     core.NewDate(2024, 3, 4),
			Category: core.OT10,
			Hours:    core.Hours{Tenths: 25},
		},
		{
			EmpNo:    "E001",
			Last:     "Alvarez",
			First:    "Maria",
			Date:     core.NewDate(2024, 3, 12),
			Category: core.OT15,
			Hours:    core.Hours{Tenths: 10},
		},
	}
	return state
}

func TestHandleSyncMessagePushesRecomputedSummary(t *testing.T) {
	source := &fakeSource{state: testState(), ok: true, revision: 3}
	writer := memory.New()
	w := NewSyncWorker(source, writer)

	msg := amqp.NewSummarySyncMessage("2024-03-16", 3)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	if writer.Writes() != 1 {
		t.Fatalf("writes = %d, want 1", writer.Writes())
	}
	report, end := writer.Last()
	if end.ISO() != "2024-03-16" {
		t.Errorf("mirrored end = %q, want 2024-03-16", end.ISO())
	}
	if len(report.Rows) != 1 || report.GrandTotal.String() != "3.5" {
		t.Errorf("report rows = %d, grand total = %s", len(report.Rows), report.GrandTotal)
	}
}

func TestHandleSyncMessageSkipsStaleRevision(t *testing.T) {
	source := &fakeSource{state: testState(), ok: true, revision: 5}
	writer := memory.New()
	w := NewSyncWorker(source, writer)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewSummarySyncMessage("", 5)); err != nil {
		t.Fatalf("first message error = %v", err)
	}
	if err := w.HandleSyncMessage(context.Background(), amqp.NewSummarySyncMessage("", 4)); err != nil {
		t.Fatalf("stale message error = %v", err)
	}

	if writer.Writes() != 1 {
		t.Errorf("writes = %d, want 1 (stale message must not push)", writer.Writes())
	}
}

func TestHandleSyncMessageLoadError(t *testing.T) {
	source := &fakeSource{loadErr: errors.New("db gone"), revision: 1}
	w := NewSyncWorker(source, memory.New())

	err := w.HandleSyncMessage(context.Background(), amqp.NewSummarySyncMessage("", 1))
	if err == nil {
		t.Fatal("expected error when the load fails")
	}
}

func TestStartupSyncCheckPushesEmptyState(t *testing.T) {
	source := &fakeSource{state: core.EmptyState(), ok: false, revision: 0}
	writer := memory.New()
	w := NewSyncWorker(source, writer)

	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}
	if writer.Writes() != 1 {
		t.Fatalf("writes = %d, want 1", writer.Writes())
	}
	report, end := writer.Last()
	if !end.IsZero() {
		t.Errorf("end = %v, want zero", end)
	}
	if len(report.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(report.Rows))
	}
}

func TestReconcileOncePushesOnlyWhenBehind(t *testing.T) {
	source := &fakeSource{state: testState(), ok: true, revision: 2}
	writer := memory.New()
	w := NewSyncWorker(source, writer)

	if err := w.ReconcileOnce(context.Background()); err != nil {
		t.Fatalf("first reconcile error = %v", err)
	}
	if writer.Writes() != 1 {
		t.Fatalf("writes = %d, want 1", writer.Writes())
	}

	// Same stored revision: nothing new to push.
	if err := w.ReconcileOnce(context.Background()); err != nil {
		t.Fatalf("second reconcile error = %v", err)
	}
	if writer.Writes() != 1 {
		t.Errorf("writes = %d after no-op reconcile, want 1", writer.Writes())
	}

	source.revision = 7
	if err := w.ReconcileOnce(context.Background()); err != nil {
		t.Fatalf("third reconcile error = %v", err)
	}
	if writer.Writes() != 2 {
		t.Errorf("writes = %d after revision moved, want 2", writer.Writes())
	}
}
