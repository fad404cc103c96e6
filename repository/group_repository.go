package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

// GroupRepository owns the role group rosters.
type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) GetByName(name string) (*entity.Group, error) {
	var g entity.Group
	if err := r.DB.Where("name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) ListMembers(groupName string) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.
		Joins("JOIN user_groups ug ON ug.user_id = users.id").
		Joins("JOIN groups g ON g.id = ug.group_id").
		Where("g.name = ?", groupName).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

func (r *GroupRepository) IsMember(groupName string, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Table("user_groups").
		Joins("JOIN groups g ON g.id = user_groups.group_id").
		Where("g.name = ? AND user_groups.user_id = ?", groupName, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// AddMember is idempotent: appending an existing member is a no-op.
func (r *GroupRepository) AddMember(group *entity.Group, user *entity.User) error {
	ok, err := r.IsMember(group.Name, user.ID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return r.DB.Model(group).Association("Users").Append(user)
}

// RemoveMember is idempotent: deleting a non-member affects zero rows.
func (r *GroupRepository) RemoveMember(group *entity.Group, userID uint) error {
	return r.DB.Exec(
		"DELETE FROM user_groups WHERE group_id = ? AND user_id = ?",
		group.ID, userID,
	).Error
}
