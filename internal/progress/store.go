// Package progress persists which lessons and levels a user has
// completed. The record is a flat JSON object with no schema versioning;
// the shape is load-bearing for the UI and must not change.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const filePrefix = "progress_"

// Record is the per-user progress document.
type Record struct {
	CompletedLessons []string `json:"completedLessons"`
	CompletedLevels  []int    `json:"completedLevels"`
}

func emptyRecord() Record {
	return Record{CompletedLessons: []string{}, CompletedLevels: []int{}}
}

// Store reads and writes progress records under a data directory, one
// file per user. Writes go through on every completion event.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("progress: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, filePrefix+userID+".json")
}

// Load returns the user's record, or an empty one if nothing is stored
// yet or the stored file is unreadable.
func (s *Store) Load(userID string) Record {
	if userID == "" {
		return emptyRecord()
	}
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		return emptyRecord()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return emptyRecord()
	}
	if rec.CompletedLessons == nil {
		rec.CompletedLessons = []string{}
	}
	if rec.CompletedLevels == nil {
		rec.CompletedLevels = []int{}
	}
	return rec
}

// Save writes the user's record to disk.
func (s *Store) Save(userID string, rec Record) error {
	if userID == "" {
		return errors.New("progress: empty user id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("progress: encode: %w", err)
	}
	if err := os.WriteFile(s.path(userID), data, 0o644); err != nil {
		return fmt.Errorf("progress: write: %w", err)
	}
	return nil
}

// MarkLessonComplete records a completed lesson, writing through if it is
// new.
func (s *Store) MarkLessonComplete(userID, lessonID string) error {
	if userID == "" || lessonID == "" {
		return nil
	}
	rec := s.Load(userID)
	for _, id := range rec.CompletedLessons {
		if id == lessonID {
			return nil
		}
	}
	rec.CompletedLessons = append(rec.CompletedLessons, lessonID)
	return s.Save(userID, rec)
}

// MarkLevelComplete records a completed level, writing through if it is
// new.
func (s *Store) MarkLevelComplete(userID string, lvl int) error {
	if userID == "" || lvl == 0 {
		return nil
	}
	rec := s.Load(userID)
	for _, n := range rec.CompletedLevels {
		if n == lvl {
			return nil
		}
	}
	rec.CompletedLevels = append(rec.CompletedLevels, lvl)
	return s.Save(userID, rec)
}

// IsLessonComplete reports whether the lesson is recorded as done.
func (s *Store) IsLessonComplete(userID, lessonID string) bool {
	for _, id := range s.Load(userID).CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// IsLevelComplete reports whether the level is recorded as done.
func (s *Store) IsLevelComplete(userID string, lvl int) bool {
	for _, n := range s.Load(userID).CompletedLevels {
		if n == lvl {
			return true
		}
	}
	return false
}
