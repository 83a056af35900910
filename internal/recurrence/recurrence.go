// Package recurrence generates the occurrence dates of a recurring activity.
package recurrence

import (
	"fmt"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// Safety limit to prevent runaway expansion on absurd ranges.
const maxOccurrences = 10000

// Step advances d by one frequency interval. Days add frequency days, weeks
// add frequency*7 days, months use calendar month addition with Go's
// normal rollover (Jan 31 + 1 month lands in early March, never clamped).
// Unknown units fall back to days.
func Step(d model.Date, frequency int, unit model.Unit) model.Date {
	if frequency < 1 {
		frequency = 1
	}
	switch unit {
	case model.UnitWeeks:
		return d.AddDays(frequency * 7)
	case model.UnitMonths:
		return d.AddMonths(frequency)
	default:
		return d.AddDays(frequency)
	}
}

// Expand returns every occurrence date in [start, end] inclusive, stepping
// from start by the activity's frequency. start after end yields nil.
func Expand(start, end model.Date, frequency int, unit model.Unit) []model.Date {
	var dates []model.Date
	for d := start; !d.After(end.Time); d = Step(d, frequency, unit) {
		dates = append(dates, d)
		if len(dates) >= maxOccurrences {
			break
		}
	}
	return dates
}

// ParseUnit validates a frequency unit supplied by the operator.
func ParseUnit(s string) (model.Unit, error) {
	u := model.Unit(s)
	if !u.Valid() {
		return "", fmt.Errorf("unknown frequency unit %q (want days, weeks or months)", s)
	}
	return u, nil
}
