package store

import (
	"fmt"
	"sort"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// Schedules returns a copy of every schedule entry in stored order
// (activity-major, as generation produced them).
func (s *Store) Schedules() []model.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSchedules(s.schedules)
}

// SchedulesInRange returns the entries dated within [start, end] inclusive,
// in stored order.
func (s *Store) SchedulesInRange(start, end model.Date) []model.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.ScheduleEntry{}
	for _, e := range s.schedules {
		if !e.Date.Before(start.Time) && !e.Date.After(end.Time) {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingSchedules returns entries dated today or later, ascending by
// date, truncated to limit. A non-positive limit returns all of them.
func (s *Store) UpcomingSchedules(limit int) []model.ScheduleEntry {
	today := model.Today()

	s.mu.RLock()
	upcoming := []model.ScheduleEntry{}
	for _, e := range s.schedules {
		if !e.Date.Before(today.Time) {
			upcoming = append(upcoming, e)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date.Time)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// ReplaceSchedules overwrites the whole schedules collection.
func (s *Store) ReplaceSchedules(entries []model.ScheduleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSchedules(entries)
	if err := s.persistLocked(docSchedules, next); err != nil {
		return err
	}
	s.schedules = next
	return nil
}

// SaveGeneration writes a freshly generated batch together with the updated
// member collection (carrying the new participation counts) in a single
// transaction, so a generation run never lands half-persisted.
func (s *Store) SaveGeneration(entries []model.ScheduleEntry, members []model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nextSchedules := cloneSchedules(entries)
	nextMembers := cloneMembers(members)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := upsertDoc(tx, docSchedules, nextSchedules); err != nil {
		return err
	}
	if err := upsertDoc(tx, docMembers, nextMembers); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit generation: %w", err)
	}

	s.schedules = nextSchedules
	s.members = nextMembers
	return nil
}

// ClaimDueReminders marks every un-notified entry dated exactly on target
// as notified, persists the collection once when anything matched, and
// returns the claimed entries. Claiming under the store lock makes each
// entry fire at most once no matter how often scans run.
func (s *Store) ClaimDueReminders(target model.Date) ([]model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSchedules(s.schedules)
	claimed := []model.ScheduleEntry{}
	for i := range next {
		if !next[i].Notified && next[i].Date.Equal(target.Time) {
			next[i].Notified = true
			claimed = append(claimed, next[i])
		}
	}
	if len(claimed) == 0 {
		return nil, nil
	}

	if err := s.persistLocked(docSchedules, next); err != nil {
		return nil, err
	}
	s.schedules = next
	return claimed, nil
}

func cloneSchedules(in []model.ScheduleEntry) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, len(in))
	copy(out, in)
	return out
}
