package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// AddActivity stores a new recurring activity and returns the stored
// record. Frequency must be at least 1 and the unit must be valid.
func (s *Store) AddActivity(name, description string, frequency int, unit model.Unit) (*model.Activity, error) {
	if name == "" {
		return nil, fmt.Errorf("activity name is required")
	}
	if frequency < 1 {
		return nil, fmt.Errorf("frequency must be at least 1, got %d", frequency)
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("unknown frequency unit %q", unit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := model.Activity{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   description,
		Frequency:     frequency,
		FrequencyUnit: unit,
	}

	next := append(cloneActivities(s.activities), a)
	if err := s.persistLocked(docActivities, next); err != nil {
		return nil, err
	}
	s.activities = next
	return &a, nil
}

// UpdateActivity applies the set fields of patch to the activity with the
// given id and returns the updated record, or (nil, nil) when no such
// activity exists.
func (s *Store) UpdateActivity(id string, patch model.ActivityPatch) (*model.Activity, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("activity name is required")
	}
	if patch.Frequency != nil && *patch.Frequency < 1 {
		return nil, fmt.Errorf("frequency must be at least 1, got %d", *patch.Frequency)
	}
	if patch.FrequencyUnit != nil && !patch.FrequencyUnit.Valid() {
		return nil, fmt.Errorf("unknown frequency unit %q", *patch.FrequencyUnit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.activities {
		if s.activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	next := cloneActivities(s.activities)
	a := &next[idx]
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Frequency != nil {
		a.Frequency = *patch.Frequency
	}
	if patch.FrequencyUnit != nil {
		a.FrequencyUnit = *patch.FrequencyUnit
	}

	if err := s.persistLocked(docActivities, next); err != nil {
		return nil, err
	}
	s.activities = next

	updated := *a
	return &updated, nil
}

// DeleteActivity removes the activity with the given id. Absent ids are a
// silent no-op. Schedule entries referencing the activity keep their
// snapshotted name.
func (s *Store) DeleteActivity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.activities[:0:0]
	for _, a := range s.activities {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(s.activities) {
		return nil
	}
	if next == nil {
		next = []model.Activity{}
	}

	if err := s.persistLocked(docActivities, next); err != nil {
		return err
	}
	s.activities = next
	return nil
}

// Activities returns a copy of all activities in insertion order.
func (s *Store) Activities() []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneActivities(s.activities)
}

// Activity returns a copy of the activity with the given id, or nil.
func (s *Store) Activity(id string) *model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.activities {
		if a.ID == id {
			found := a
			return &found
		}
	}
	return nil
}

func cloneActivities(in []model.Activity) []model.Activity {
	out := make([]model.Activity, len(in))
	copy(out, in)
	return out
}
