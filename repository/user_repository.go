package repository

import (
	"backend/entity"
	"backend/pkg/rbac"

	"gorm.io/gorm"
)

// UserRepository owns the users table and the per-request role lookup.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveRoles builds the role set for one user in a single query over
// the group join table plus the superuser flag already on the row.
func (r *UserRepository) ResolveRoles(user *entity.User) (rbac.RoleSet, error) {
	rs := rbac.RoleSet{Authenticated: true, Superuser: user.IsSuperuser}

	var names []string
	err := r.DB.Table("groups").
		Joins("JOIN user_groups ug ON ug.group_id = groups.id").
		Where("ug.user_id = ?", user.ID).
		Pluck("groups.name", &names).Error
	if err != nil {
		return rbac.RoleSet{}, err
	}

	for _, n := range names {
		switch n {
		case entity.GroupManager:
			rs.Manager = true
		case entity.GroupDeliveryCrew:
			rs.DeliveryCrew = true
		}
	}
	return rs, nil
}
