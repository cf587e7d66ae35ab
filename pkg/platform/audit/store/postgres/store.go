// Package postgres persists the change trail to a Postgres table via
// database/sql with the pq driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	id "workbench/pkg/domain"
	audit "workbench/pkg/platform/audit"
)

// Store implements audit.Store over a Postgres table.
type Store struct {
	db *sql.DB
}

// Open connects with the given DSN and ensures the trail table exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection; the caller owns its lifecycle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_trail (
			id         TEXT PRIMARY KEY,
			ts         TIMESTAMPTZ NOT NULL,
			actor      TEXT NOT NULL DEFAULT '',
			action     TEXT NOT NULL,
			subject    TEXT NOT NULL DEFAULT '',
			request_id TEXT NOT NULL DEFAULT '',
			detail     JSONB
		)`)
	if err != nil {
		return fmt.Errorf("migrate audit_trail: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	var detail []byte
	if len(entry.Detail) > 0 {
		var err error
		detail, err = json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshal detail: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_trail (id, ts, actor, action, subject, request_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Timestamp, string(entry.Actor), string(entry.Action),
		entry.Subject, entry.RequestID, nullableJSON(detail),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *Store) ListByActor(ctx context.Context, actor id.UserID) ([]audit.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, actor, action, subject, request_id, detail
		FROM audit_trail WHERE actor = $1 ORDER BY ts`, string(actor))
	if err != nil {
		return nil, fmt.Errorf("query audit trail: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, actor, action, subject, request_id, detail
		FROM audit_trail ORDER BY ts DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit trail: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]audit.Entry, error) {
	var out []audit.Entry
	for rows.Next() {
		var (
			e      audit.Entry
			actor  string
			action string
			ts     time.Time
			detail []byte
		)
		if err := rows.Scan(&e.ID, &ts, &actor, &action, &e.Subject, &e.RequestID, &detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Timestamp = ts
		e.Actor = id.UserID(actor)
		e.Action = audit.Action(action)
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("decode detail: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
