package entity

import (
	"gorm.io/gorm"
)

// CartItem is one pending line in a user's cart. One line per
// (user, menu item); adding the same item again replaces the quantity.
// Unit price and line total are computed from the menu item at read
// time, never stored.
type CartItem struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_cart_user_item;not null" json:"userId"`
	User   User `json:"-"`

	MenuItemID uint     `gorm:"uniqueIndex:idx_cart_user_item;not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Quantity int `gorm:"not null" json:"quantity"`
}
