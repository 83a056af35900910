package model

import "time"

// Snapshot is the export/import unit: the four persisted collections plus
// the export timestamp. On import, nil collection fields mean "key absent,
// leave that collection alone"; ExportDate is informational and ignored.
type Snapshot struct {
	Members    []Member        `json:"members"`
	Activities []Activity      `json:"activities"`
	Schedules  []ScheduleEntry `json:"schedules"`
	Settings   *Settings       `json:"settings,omitempty"`
	ExportDate time.Time       `json:"exportDate"`
}
