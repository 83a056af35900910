package store

import (
	"fmt"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// Settings returns the current settings. A store that has never persisted
// settings reports the defaults.
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings persists new settings. They take effect on the next
// generation or reminder scan, never retroactively. Unknown algorithm
// values are stored as-is; generation degrades them to a first-member
// pick.
func (s *Store) SetSettings(settings model.Settings) error {
	if settings.NotificationDays < 0 {
		return fmt.Errorf("notification days must not be negative, got %d", settings.NotificationDays)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistLocked(docSettings, settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}
