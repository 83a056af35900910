package store

import (
	"testing"

	"github.com/danli429/team-scheduling-system/internal/model"
)

func TestSetSettings(t *testing.T) {
	s := setupTestStore(t)

	want := model.Settings{
		Algorithm:           model.AlgorithmRandom,
		NotificationEnabled: false,
		NotificationDays:    10,
	}
	if err := s.SetSettings(want); err != nil {
		t.Fatalf("set settings: %v", err)
	}
	if got := s.Settings(); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSetSettingsRejectsNegativeDays(t *testing.T) {
	s := setupTestStore(t)

	bad := model.DefaultSettings()
	bad.NotificationDays = -1
	if err := s.SetSettings(bad); err == nil {
		t.Fatal("expected an error for negative notification days")
	}
	if got := s.Settings(); got != model.DefaultSettings() {
		t.Errorf("settings changed by a rejected write: %+v", got)
	}
}

func TestSetSettingsKeepsUnknownAlgorithm(t *testing.T) {
	s := setupTestStore(t)

	want := model.DefaultSettings()
	want.Algorithm = model.Algorithm("mystery")
	if err := s.SetSettings(want); err != nil {
		t.Fatalf("set settings: %v", err)
	}
	if got := s.Settings(); got.Algorithm != "mystery" {
		t.Errorf("algorithm = %q, want %q", got.Algorithm, "mystery")
	}
}
