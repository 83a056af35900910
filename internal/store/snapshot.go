package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// Snapshot returns a copy of all four collections plus the export
// timestamp, suitable for backup or transfer.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := s.settings
	return model.Snapshot{
		Members:    cloneMembers(s.members),
		Activities: cloneActivities(s.activities),
		Schedules:  cloneSchedules(s.schedules),
		Settings:   &settings,
		ExportDate: time.Now().UTC(),
	}
}

// Import parses a snapshot document and wholesale-replaces each collection
// whose key is present; absent keys leave the corresponding collection
// untouched. A payload that fails to parse returns ErrBadSnapshot and
// modifies nothing. Each collection write is individually atomic; errors
// from the separate writes are aggregated.
func (s *Store) Import(data []byte) error {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	if snap.Members != nil {
		if err := s.persistLocked(docMembers, snap.Members); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			s.members = cloneMembers(snap.Members)
		}
	}
	if snap.Activities != nil {
		if err := s.persistLocked(docActivities, snap.Activities); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			s.activities = cloneActivities(snap.Activities)
		}
	}
	if snap.Schedules != nil {
		if err := s.persistLocked(docSchedules, snap.Schedules); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			s.schedules = cloneSchedules(snap.Schedules)
		}
	}
	if snap.Settings != nil {
		if err := s.persistLocked(docSettings, *snap.Settings); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			s.settings = *snap.Settings
		}
	}
	return errs
}

// Reset clears every collection and restores the default settings.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := []model.Member{}
	activities := []model.Activity{}
	schedules := []model.ScheduleEntry{}
	settings := model.DefaultSettings()

	var errs error
	if err := s.persistLocked(docMembers, members); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		s.members = members
	}
	if err := s.persistLocked(docActivities, activities); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		s.activities = activities
	}
	if err := s.persistLocked(docSchedules, schedules); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		s.schedules = schedules
	}
	if err := s.persistLocked(docSettings, settings); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		s.settings = settings
	}
	return errs
}
