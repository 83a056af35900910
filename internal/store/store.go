// Package store persists the roster collections and settings.
//
// Each collection (members, activities, schedules, settings) is kept in
// memory and mirrored to a single SQLite row holding the collection as one
// JSON document. Every mutating call rewrites the affected document before
// it returns, so the in-memory state and the durable state always agree.
// A single mutex serializes access, which also serializes the background
// reminder scan against operator mutations.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// Document names, one per persisted collection.
const (
	docMembers    = "members"
	docActivities = "activities"
	docSchedules  = "schedules"
	docSettings   = "settings"
)

// ErrBadSnapshot marks an import payload that could not be parsed. The
// store is left untouched when it is returned.
var ErrBadSnapshot = errors.New("malformed snapshot")

type Store struct {
	mu sync.RWMutex
	db *sql.DB

	members    []model.Member
	activities []model.Activity
	schedules  []model.ScheduleEntry
	settings   model.Settings
}

// Open opens (creating if needed) the database at path and loads all
// collections into memory.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Reload re-reads every collection from the database. Long-running
// processes call this before scanning so that writes made by sibling CLI
// invocations against the same database file are picked up.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	members := []model.Member{}
	if err := s.readDoc(docMembers, &members); err != nil {
		return err
	}

	activities := []model.Activity{}
	if err := s.readDoc(docActivities, &activities); err != nil {
		return err
	}

	schedules := []model.ScheduleEntry{}
	if err := s.readDoc(docSchedules, &schedules); err != nil {
		return err
	}

	settings := model.DefaultSettings()
	if err := s.readDoc(docSettings, &settings); err != nil {
		return err
	}

	if members == nil {
		members = []model.Member{}
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	if schedules == nil {
		schedules = []model.ScheduleEntry{}
	}

	s.members = members
	s.activities = activities
	s.schedules = schedules
	s.settings = settings
	return nil
}

// readDoc unmarshals the named document into v. A missing row leaves v at
// its prior (default) value.
func (s *Store) readDoc(name string, v any) error {
	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// persistLocked durably rewrites one collection document. Callers hold mu
// and must only swap their in-memory copy after it succeeds.
func (s *Store) persistLocked(name string, v any) error {
	return upsertDoc(s.db, name, v)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertDoc(db execer, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if _, err := db.Exec(
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, string(body), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
