/*
Package sqlite persists register snapshots in a SQLite database.

PURPOSE:
  Durable storage behind the in-memory collections. Each entity list is
  written as JSON documents under a register name, together with the id
  sequence counter, so a restart reloads exactly the state the last
  mutation left behind. In production the same patterns apply to
  PostgreSQL with minor dialect differences.

DOCUMENT MODEL:
  Entities are stored whole as JSON, one row per entity, keyed by
  (register, id) with an explicit position column preserving the
  newest-first list order the collections maintain. There is no
  per-column schema: the Go types are the schema, and list filtering
  and aggregation happen in memory over collection snapshots.

CONCURRENCY:
  Guarded by a sync.RWMutex on top of WAL mode. Replace runs inside a
  database transaction so readers never observe a half-written register.

USAGE:
  st, err := sqlite.New("./data/procure.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  orders, err := sqlite.LoadAll[purchaseorder.PurchaseOrder](ctx, st, sqlite.RegisterPurchaseOrders)

SEE ALSO:
  - lifecycle/store.go: the in-memory collections these snapshots feed
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/govstack/procure-engine/lifecycle"
)

// Register names used as document namespaces.
const (
	RegisterRequisitions   = "requisitions"
	RegisterTenders        = "tenders"
	RegisterPurchaseOrders = "purchase_orders"
	RegisterGoodsReceipts  = "goods_receipts"
	RegisterFindings       = "findings"
	RegisterCompliance     = "compliance_checks"
	RegisterRisks          = "risk_assessments"
	RegisterViolations     = "policy_violations"
)

// Store persists entity registers as JSON documents.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Entity documents, one row per entity, whole record as JSON
	CREATE TABLE IF NOT EXISTS documents (
		register   TEXT NOT NULL,
		id         TEXT NOT NULL,
		position   INTEGER NOT NULL,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (register, id)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_register_position
		ON documents(register, position);

	-- Per-register id sequence counters (next number to issue)
	CREATE TABLE IF NOT EXISTS sequences (
		register TEXT PRIMARY KEY,
		next     INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DOCUMENT ACCESS
// =============================================================================

// Replace overwrites a register with the given entity list, preserving the
// slice order as the stored position. The whole swap is one transaction.
func Replace[E lifecycle.Entity[E]](ctx context.Context, s *Store, register string, items []E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE register = ?", register); err != nil {
		return fmt.Errorf("failed to clear register %s: %w", register, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, e := range items {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", register, e.EntityID(), err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO documents (register, id, position, payload, updated_at) VALUES (?, ?, ?, ?, ?)",
			register, e.EntityID(), i, string(payload), now,
		)
		if err != nil {
			return fmt.Errorf("failed to write %s %s: %w", register, e.EntityID(), err)
		}
	}

	return tx.Commit()
}

// LoadAll returns the full register in stored list order. A register that
// was never written loads as an empty list, not an error.
func LoadAll[E lifecycle.Entity[E]](ctx context.Context, s *Store, register string) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM documents WHERE register = ? ORDER BY position ASC",
		register,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query register %s: %w", register, err)
	}
	defer rows.Close()

	var items []E
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", register, err)
		}
		var e E
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", register, err)
		}
		items = append(items, e)
	}

	return items, rows.Err()
}

// Count returns the number of documents in a register.
func (s *Store) Count(ctx context.Context, register string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE register = ?", register,
	).Scan(&n)
	return n, err
}

// =============================================================================
// SEQUENCES
// =============================================================================

// SaveSequence records the next id number a register's sequence will issue.
func (s *Store) SaveSequence(ctx context.Context, register string, next int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO sequences (register, next) VALUES (?, ?)
		ON CONFLICT(register) DO UPDATE SET next = excluded.next
	`
	_, err := s.db.ExecContext(ctx, query, register, next)
	return err
}

// Sequence returns the stored counter for a register, or fallback when the
// register has never saved one.
func (s *Store) Sequence(ctx context.Context, register string, fallback int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next int
	err := s.db.QueryRowContext(ctx,
		"SELECT next FROM sequences WHERE register = ?", register,
	).Scan(&next)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return 0, err
	}
	return next, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"documents", "sequences"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
