package model

// Algorithm selects how occurrences are assigned to members.
type Algorithm string

const (
	AlgorithmRotation Algorithm = "rotation"
	AlgorithmRandom   Algorithm = "random"
	AlgorithmBalanced Algorithm = "balanced"
)

type Settings struct {
	Algorithm           Algorithm `json:"algorithm"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	NotificationDays    int       `json:"notificationDays"`
}

func DefaultSettings() Settings {
	return Settings{
		Algorithm:           AlgorithmRotation,
		NotificationEnabled: true,
		NotificationDays:    3,
	}
}
