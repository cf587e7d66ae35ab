package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workbench/pkg/platform/sentinel"
)

// PostgresStore persists events as JSON documents keyed by id, with a serial
// column preserving insertion order. The document is the source of truth; the
// table is storage, not a query model, so both backends stay interchangeable.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects with the given DSN and ensures the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			seq BIGSERIAL,
			id  TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate events: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, e Event) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO events (id, doc) VALUES ($1, $2)`, e.ID.String(), doc)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, e Event) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `UPDATE events SET doc = $2 WHERE id = $1`, e.ID.String(), doc)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, eventID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, eventID string) (Event, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM events WHERE id = $1`, eventID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, sentinel.ErrNotFound
		}
		return Event{}, fmt.Errorf("get event: %w", err)
	}
	var e Event
	if err := json.Unmarshal(doc, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) All(ctx context.Context) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		var e Event
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ReplaceAll(ctx context.Context, events []Event) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE events`); err != nil {
		return fmt.Errorf("truncate events: %w", err)
	}
	for _, e := range events {
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO events (id, doc) VALUES ($1, $2)`, e.ID.String(), doc); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
