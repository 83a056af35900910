package model

// Unit is the calendar unit an activity's frequency counts in.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths:
		return true
	}
	return false
}

type Activity struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Frequency     int    `json:"frequency"`
	FrequencyUnit Unit   `json:"frequencyUnit"`
}

// ActivityPatch carries a partial update; nil fields are left untouched.
type ActivityPatch struct {
	Name          *string
	Description   *string
	Frequency     *int
	FrequencyUnit *Unit
}
