package repository

import (
	"backend/entity"
	"errors"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// ListLines returns the user's pending lines with the menu item
// preloaded so unit price can be computed at read time.
func (r *CartRepository) ListLines(userID uint) ([]entity.CartItem, error) {
	var lines []entity.CartItem
	err := r.DB.Where("user_id = ?", userID).
		Preload("MenuItem").
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

// UpsertLine enforces one line per (user, menu item): an existing line
// gets its quantity overwritten, not incremented.
func (r *CartRepository) UpsertLine(tx *gorm.DB, userID, menuItemID uint, quantity int) (*entity.CartItem, error) {
	var exist entity.CartItem
	err := tx.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&exist).Error
	if err == nil {
		exist.Quantity = quantity
		if err := tx.Save(&exist).Error; err != nil {
			return nil, err
		}
		return &exist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	line := entity.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: quantity}
	if err := tx.Create(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// ClearLines deletes every line for the user and reports how many rows
// went away; the order workflow guards its conversion on that count.
// The delete is unscoped: a soft-deleted row would keep holding the
// unique (user, menu item) slot and block re-adding the same item.
func (r *CartRepository) ClearLines(tx *gorm.DB, userID uint) (int64, error) {
	res := tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
