package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/danli429/team-scheduling-system/internal/model"
)

// AddMember stores a new member with defaults applied (active, zero
// participation count) and returns the stored record.
func (s *Store) AddMember(name, email string) (*model.Member, error) {
	if name == "" {
		return nil, fmt.Errorf("member name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := model.Member{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Status: model.MemberActive,
	}

	next := append(cloneMembers(s.members), m)
	if err := s.persistLocked(docMembers, next); err != nil {
		return nil, err
	}
	s.members = next
	return &m, nil
}

// UpdateMember applies the set fields of patch to the member with the given
// id and returns the updated record, or (nil, nil) when no such member
// exists. The id and participation count are never patched.
func (s *Store) UpdateMember(id string, patch model.MemberPatch) (*model.Member, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("member name is required")
	}
	if patch.Status != nil && *patch.Status != model.MemberActive && *patch.Status != model.MemberInactive {
		return nil, fmt.Errorf("unknown member status %q", *patch.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.members {
		if s.members[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	next := cloneMembers(s.members)
	m := &next[idx]
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Email != nil {
		m.Email = *patch.Email
	}
	if patch.Status != nil {
		m.Status = *patch.Status
	}

	if err := s.persistLocked(docMembers, next); err != nil {
		return nil, err
	}
	s.members = next

	updated := *m
	return &updated, nil
}

// DeleteMember removes the member with the given id. Absent ids are a
// silent no-op.
func (s *Store) DeleteMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.members[:0:0]
	for _, m := range s.members {
		if m.ID != id {
			next = append(next, m)
		}
	}
	if len(next) == len(s.members) {
		return nil
	}
	if next == nil {
		next = []model.Member{}
	}

	if err := s.persistLocked(docMembers, next); err != nil {
		return err
	}
	s.members = next
	return nil
}

// Members returns a copy of all members in insertion order.
func (s *Store) Members() []model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMembers(s.members)
}

// ActiveMembers returns a copy of the members with active status,
// preserving insertion order.
func (s *Store) ActiveMembers() []model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := []model.Member{}
	for _, m := range s.members {
		if m.Active() {
			active = append(active, m)
		}
	}
	return active
}

// Member returns a copy of the member with the given id, or nil.
func (s *Store) Member(id string) *model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.ID == id {
			found := m
			return &found
		}
	}
	return nil
}

func cloneMembers(in []model.Member) []model.Member {
	out := make([]model.Member, len(in))
	copy(out, in)
	return out
}
