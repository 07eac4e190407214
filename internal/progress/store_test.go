package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoadMissingUser(t *testing.T) {
	s := newTestStore(t)

	rec := s.Load("nobody")
	assert.NotNil(t, rec.CompletedLessons)
	assert.NotNil(t, rec.CompletedLevels)
	assert.Empty(t, rec.CompletedLessons)
	assert.Empty(t, rec.CompletedLevels)
}

func TestMarkLevelComplete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.MarkLevelComplete("alice", 3))
	assert.True(t, s.IsLevelComplete("alice", 3))
	assert.False(t, s.IsLevelComplete("alice", 4))
	assert.False(t, s.IsLevelComplete("bob", 3), "records are per user")

	// Marking again must not duplicate the entry.
	require.NoError(t, s.MarkLevelComplete("alice", 3))
	assert.Equal(t, []int{3}, s.Load("alice").CompletedLevels)
}

func TestMarkLessonComplete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.MarkLessonComplete("alice", "intro"))
	require.NoError(t, s.MarkLessonComplete("alice", "intro"))
	assert.True(t, s.IsLessonComplete("alice", "intro"))
	assert.Equal(t, []string{"intro"}, s.Load("alice").CompletedLessons)
}

func TestPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.MarkLevelComplete("alice", 1))
	require.NoError(t, s1.MarkLevelComplete("alice", 2))

	s2, err := NewStore(dir)
	require.NoError(t, err)
	assert.True(t, s2.IsLevelComplete("alice", 1))
	assert.True(t, s2.IsLevelComplete("alice", 2))
}

func TestFileShape(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.MarkLevelComplete("alice", 1))
	require.NoError(t, s.MarkLessonComplete("alice", "intro"))

	data, err := os.ReadFile(filepath.Join(dir, "progress_alice.json"))
	require.NoError(t, err)

	// The flat document shape is load-bearing for consumers.
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "completedLessons")
	assert.Contains(t, doc, "completedLevels")
	assert.Len(t, doc, 2)
}

func TestCorruptFileFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "progress_alice.json"), []byte("{not json"), 0o644))

	rec := s.Load("alice")
	assert.Empty(t, rec.CompletedLevels)
	assert.Empty(t, rec.CompletedLessons)
}

func TestEmptyUserIsNoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.MarkLevelComplete("", 1))
	require.Error(t, s.Save("", emptyRecord()))
	assert.Empty(t, s.Load("").CompletedLevels)
}
