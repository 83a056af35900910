package store

import (
	"testing"

	"github.com/danli429/team-scheduling-system/internal/model"
)

func TestAddActivity(t *testing.T) {
	s := setupTestStore(t)

	a, err := s.AddActivity("Standup", "daily sync", 1, model.UnitDays)
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}
	if a.ID == "" {
		t.Error("expected a generated id")
	}
	if a.Frequency != 1 || a.FrequencyUnit != model.UnitDays {
		t.Errorf("frequency = %d %s, want 1 days", a.Frequency, a.FrequencyUnit)
	}

	activities := s.Activities()
	if len(activities) != 1 || activities[0].Name != "Standup" {
		t.Errorf("activities = %+v", activities)
	}
}

func TestAddActivityValidation(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.AddActivity("", "", 1, model.UnitDays); err == nil {
		t.Error("expected an error for an empty name")
	}
	if _, err := s.AddActivity("Standup", "", 0, model.UnitDays); err == nil {
		t.Error("expected an error for a zero frequency")
	}
	if _, err := s.AddActivity("Standup", "", -2, model.UnitDays); err == nil {
		t.Error("expected an error for a negative frequency")
	}
	if _, err := s.AddActivity("Standup", "", 1, model.Unit("fortnights")); err == nil {
		t.Error("expected an error for an unknown unit")
	}
	if got := s.Activities(); len(got) != 0 {
		t.Errorf("store changed on failed adds: %d activities", len(got))
	}
}

func TestUpdateActivity(t *testing.T) {
	s := setupTestStore(t)
	a, err := s.AddActivity("Standup", "daily sync", 1, model.UnitDays)
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}

	freq := 2
	unit := model.UnitWeeks
	got, err := s.UpdateActivity(a.ID, model.ActivityPatch{Frequency: &freq, FrequencyUnit: &unit})
	if err != nil {
		t.Fatalf("update activity: %v", err)
	}
	if got.Frequency != 2 || got.FrequencyUnit != model.UnitWeeks {
		t.Errorf("frequency = %d %s, want 2 weeks", got.Frequency, got.FrequencyUnit)
	}
	if got.Name != "Standup" || got.Description != "daily sync" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	got, err = s.UpdateActivity("no-such-id", model.ActivityPatch{Frequency: &freq})
	if err != nil {
		t.Fatalf("update unknown id: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestUpdateActivityValidation(t *testing.T) {
	s := setupTestStore(t)
	a, err := s.AddActivity("Standup", "", 1, model.UnitDays)
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}

	zero := 0
	if _, err := s.UpdateActivity(a.ID, model.ActivityPatch{Frequency: &zero}); err == nil {
		t.Error("expected an error for a zero frequency patch")
	}
	bogus := model.Unit("eons")
	if _, err := s.UpdateActivity(a.ID, model.ActivityPatch{FrequencyUnit: &bogus}); err == nil {
		t.Error("expected an error for an unknown unit patch")
	}

	got := s.Activity(a.ID)
	if got == nil || got.Frequency != 1 || got.FrequencyUnit != model.UnitDays {
		t.Errorf("activity mutated by rejected patches: %+v", got)
	}
}

func TestDeleteActivity(t *testing.T) {
	s := setupTestStore(t)
	a, err := s.AddActivity("Standup", "", 1, model.UnitDays)
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}

	if err := s.DeleteActivity(a.ID); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	if got := s.Activities(); len(got) != 0 {
		t.Errorf("expected no activities, got %d", len(got))
	}
	if err := s.DeleteActivity("no-such-id"); err != nil {
		t.Errorf("delete of unknown id: %v", err)
	}
}
