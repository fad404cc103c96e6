package services

import (
	"backend/repository"
	"errors"

	"gorm.io/gorm"
)

// GroupService manages the Manager and Delivery Crew rosters. The
// permission table gates every call to it behind the Manager flag.
type GroupService struct {
	Groups   *repository.GroupRepository
	UserRepo *repository.UserRepository
}

func NewGroupService(gr *repository.GroupRepository, ur *repository.UserRepository) *GroupService {
	return &GroupService{Groups: gr, UserRepo: ur}
}

type MemberOut struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (s *GroupService) ListMembers(groupName string) ([]MemberOut, error) {
	users, err := s.Groups.ListMembers(groupName)
	if err != nil {
		return nil, err
	}
	out := make([]MemberOut, 0, len(users))
	for _, u := range users {
		out = append(out, MemberOut{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

// AddMember is idempotent; adding an existing member succeeds without
// a second row.
func (s *GroupService) AddMember(groupName string, userID uint) error {
	group, err := s.Groups.GetByName(groupName)
	if err != nil {
		return err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.Groups.AddMember(group, user)
}

// RemoveMember is idempotent; removing a non-member is a successful
// no-op, not an error.
func (s *GroupService) RemoveMember(groupName string, userID uint) error {
	group, err := s.Groups.GetByName(groupName)
	if err != nil {
		return err
	}
	return s.Groups.RemoveMember(group, userID)
}
