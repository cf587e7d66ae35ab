// Package localstore persists store snapshots as JSON documents under a data
// directory, one file per versioned key. It is the durable-storage boundary of
// the workbench: feature stores write their whole snapshot on mutation and
// reload it on startup, falling back to seed data when a key is absent.
//
// A key carries its schema version ("trc-events-storage-v7"); bumping the
// version on an incompatible change orphans the old document instead of trying
// to migrate it, which matches how the snapshots were versioned historically.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"workbench/pkg/platform/sentinel"
)

// Store reads and writes JSON snapshots under a single directory.
type Store struct {
	dir string
}

// New ensures the data directory exists and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save marshals v and writes it under key atomically (temp file + rename) so a
// crash mid-write never leaves a torn snapshot behind.
func (s *Store) Save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %q: %w", key, err)
	}

	path := s.path(key)
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit snapshot %q: %w", key, err)
	}
	return nil
}

// Load unmarshals the document stored under key into v. Date fields come back
// as real time.Time values through the payload types' json tags. Returns
// sentinel.ErrNotFound when the key has never been saved.
func (s *Store) Load(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("read snapshot %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
