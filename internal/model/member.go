package model

type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

type Member struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email,omitempty"`
	Status             MemberStatus `json:"status"`
	ParticipationCount int          `json:"participationCount"`
}

func (m Member) Active() bool {
	return m.Status == MemberActive
}

// MemberPatch carries a partial update; nil fields are left untouched.
type MemberPatch struct {
	Name   *string
	Email  *string
	Status *MemberStatus
}
