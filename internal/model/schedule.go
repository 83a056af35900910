package model

// ScheduleEntry is one occurrence of an activity assigned to a member.
// ActivityName and MemberName are snapshots frozen at generation time; they
// are deliberately not resynchronized when the source record is later
// renamed or deleted, so a plan stays readable as it was published.
type ScheduleEntry struct {
	ID           string `json:"id"`
	ActivityID   string `json:"activityId"`
	ActivityName string `json:"activityName"`
	MemberID     string `json:"memberId"`
	MemberName   string `json:"memberName"`
	Date         Date   `json:"date"`
	Notified     bool   `json:"notified"`
}
