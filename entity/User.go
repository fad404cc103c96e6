package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	IsSuperuser bool   `json:"-"`

	Groups []Group `gorm:"many2many:user_groups;" json:"-"`

	// Relations — preload only when needed
	CartItems []CartItem `json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"-"`
}
