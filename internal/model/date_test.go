package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2024-06-10" {
		t.Errorf("string = %q, want %q", d.String(), "2024-06-10")
	}
	if !d.Equal(NewDate(2024, 6, 10).Time) {
		t.Error("parsed date differs from constructed date")
	}

	if _, err := ParseDate("10/06/2024"); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}

func TestDateOfStripsTimeOfDay(t *testing.T) {
	evening := time.Date(2024, 6, 10, 23, 45, 12, 999, time.Local)
	if got := DateOf(evening); !got.Equal(NewDate(2024, 6, 10).Time) {
		t.Errorf("DateOf = %s, want 2024-06-10", got)
	}
}

func TestAddDays(t *testing.T) {
	d := NewDate(2024, 2, 28)
	if got := d.AddDays(1); got.String() != "2024-02-29" {
		t.Errorf("leap day step = %s, want 2024-02-29", got)
	}
	if got := d.AddDays(-28); got.String() != "2024-01-31" {
		t.Errorf("backward step = %s, want 2024-01-31", got)
	}
}

func TestAddMonthsNormalizesOverflow(t *testing.T) {
	// Adding months does not clamp: the overflow rolls into the next
	// month, so repeated month steps drift off month-end anchors.
	d := NewDate(2024, 1, 31)

	d = d.AddMonths(1)
	if d.String() != "2024-03-02" {
		t.Errorf("Jan 31 + 1 month = %s, want 2024-03-02", d)
	}
	d = d.AddMonths(1)
	if d.String() != "2024-04-02" {
		t.Errorf("second month step = %s, want 2024-04-02", d)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 6, 10)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-06-10"` {
		t.Errorf("marshal = %s, want %q", data, `"2024-06-10"`)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %s, want %s", back, d)
	}

	if err := json.Unmarshal([]byte(`"June 10"`), &back); err == nil {
		t.Error("expected an error for a malformed date string")
	}
	if err := json.Unmarshal([]byte(`42`), &back); err == nil {
		t.Error("expected an error for a non-string date")
	}
}

func TestMemberActive(t *testing.T) {
	m := Member{Status: MemberActive}
	if !m.Active() {
		t.Error("active member reported inactive")
	}
	m.Status = MemberInactive
	if m.Active() {
		t.Error("inactive member reported active")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Algorithm != AlgorithmRotation || !s.NotificationEnabled || s.NotificationDays != 3 {
		t.Errorf("defaults = %+v", s)
	}
}
