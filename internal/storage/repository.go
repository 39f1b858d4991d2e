// Package storage persists the ledger working copy in SQLite. The whole
// LedgerState travels as one JSON payload under a fixed key, mirroring the
// original single-slot storage model, so a save is always a full upsert.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"otslip/internal/core"

	_ "modernc.org/sqlite"
)

// StateKey is the row key of the single working copy.
const StateKey = "montebello_ot_state"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements ledger.Store. A missing row or an unreadable payload
// both report ok=false so the caller starts from the empty default; only
// a failing database is an error.
func (r *SQLiteRepository) Load(ctx context.Context) (core.LedgerState, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM ledger_state WHERE key = ?`, StateKey,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return core.EmptyState(), false, nil
	}
	if err != nil {
		return core.LedgerState{}, false, fmt.Errorf("read ledger state: %w", err)
	}

	var state core.LedgerState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		slog.WarnContext(ctx, "Stored ledger state is unreadable, starting empty",
			"key", StateKey,
			"error", err)
		return core.EmptyState(), false, nil
	}
	if state.Employees == nil {
		state.Employees = []core.Employee{}
	}
	if state.Entries == nil {
		state.Entries = []core.Entry{}
	}
	return state, true, nil
}

// Save implements ledger.Store with a full-payload upsert.
func (r *SQLiteRepository) Save(ctx context.Context, state core.LedgerState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode ledger state: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ledger_state (key, payload, revision, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			revision = ledger_state.revision + 1,
			updated_at = CURRENT_TIMESTAMP`,
		StateKey, string(payload))
	if err != nil {
		return fmt.Errorf("write ledger state: %w", err)
	}

	slog.DebugContext(ctx, "Ledger state saved",
		"key", StateKey,
		"employees", len(state.Employees),
		"entries", len(state.Entries))
	return nil
}

// Revision returns the persisted upsert counter, 0 when no state exists.
func (r *SQLiteRepository) Revision(ctx context.Context) (int64, error) {
	var revision int64
	err := r.db.QueryRowContext(ctx,
		`SELECT revision FROM ledger_state WHERE key = ?`, StateKey,
	).Scan(&revision)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read ledger revision: %w", err)
	}
	return revision, nil
}
