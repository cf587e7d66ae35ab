package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"workbench/pkg/platform/sentinel"
)

type LocalStoreSuite struct {
	suite.Suite
	store *Store
	dir   string
}

func TestLocalStoreSuite(t *testing.T) {
	suite.Run(t, new(LocalStoreSuite))
}

func (s *LocalStoreSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := New(s.dir)
	s.Require().NoError(err)
	s.store = store
}

type testSnapshot struct {
	Label string    `json:"label"`
	When  time.Time `json:"when"`
	Count int       `json:"count"`
}

// TestSaveAndLoad verifies a snapshot round-trips with time fields intact.
func (s *LocalStoreSuite) TestSaveAndLoad() {
	when := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Save("trc-test-storage-v1", testSnapshot{Label: "a", When: when, Count: 3}))

	var got testSnapshot
	s.Require().NoError(s.store.Load("trc-test-storage-v1", &got))
	s.Equal("a", got.Label)
	s.Equal(3, got.Count)
	s.True(when.Equal(got.When))
}

// TestLoadMissingKey verifies an unsaved key maps to the not-found sentinel so
// callers can fall back to seed data.
func (s *LocalStoreSuite) TestLoadMissingKey() {
	var got testSnapshot
	s.Require().ErrorIs(s.store.Load("never-saved", &got), sentinel.ErrNotFound)
}

// TestSaveOverwrites verifies a second save replaces the document.
func (s *LocalStoreSuite) TestSaveOverwrites() {
	s.Require().NoError(s.store.Save("k", testSnapshot{Label: "first"}))
	s.Require().NoError(s.store.Save("k", testSnapshot{Label: "second"}))

	var got testSnapshot
	s.Require().NoError(s.store.Load("k", &got))
	s.Equal("second", got.Label)
}

// TestVersionedKeysAreIndependent verifies bumping a key version orphans the
// old document rather than migrating it.
func (s *LocalStoreSuite) TestVersionedKeysAreIndependent() {
	s.Require().NoError(s.store.Save("trc-events-storage-v6", testSnapshot{Label: "old"}))

	var got testSnapshot
	s.Require().ErrorIs(s.store.Load("trc-events-storage-v7", &got), sentinel.ErrNotFound)
}

// TestDelete verifies deletion removes the file and tolerates missing keys.
func (s *LocalStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Save("k", testSnapshot{Label: "x"}))
	s.Require().NoError(s.store.Delete("k"))

	var got testSnapshot
	s.Require().ErrorIs(s.store.Load("k", &got), sentinel.ErrNotFound)
	s.Require().NoError(s.store.Delete("k"))
}

// TestNoTempFilesLeftBehind verifies the atomic write cleans up after itself.
func (s *LocalStoreSuite) TestNoTempFilesLeftBehind() {
	s.Require().NoError(s.store.Save("k", testSnapshot{Label: "x"}))

	matches, err := filepath.Glob(filepath.Join(s.dir, "*.tmp"))
	s.Require().NoError(err)
	s.Empty(matches)

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}
