package services

import (
	"backend/entity"
	"backend/repository"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr}
}

// CartLineOut is a cart line with its prices computed from the menu
// item at read time; nothing here is stored.
type CartLineOut struct {
	ID         uint            `json:"id"`
	MenuItemID uint            `json:"menuItemId"`
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Price      decimal.Decimal `json:"price"`
}

func lineOut(line *entity.CartItem, item *entity.MenuItem) CartLineOut {
	return CartLineOut{
		ID:         line.ID,
		MenuItemID: item.ID,
		Title:      item.Title,
		Quantity:   line.Quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}
}

func (s *CartService) List(userID uint) ([]CartLineOut, error) {
	lines, err := s.CartRepo.ListLines(userID)
	if err != nil {
		return nil, err
	}
	out := make([]CartLineOut, 0, len(lines))
	for i := range lines {
		out = append(out, lineOut(&lines[i], &lines[i].MenuItem))
	}
	return out, nil
}

// Add stores a line with create-or-replace semantics: a second add of
// the same menu item overwrites the quantity.
func (s *CartService) Add(userID, menuItemID uint, quantity int) (*CartLineOut, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.MenuRepo.GetMenuItem(menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var line *entity.CartItem
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		line, err = s.CartRepo.UpsertLine(tx, userID, menuItemID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := lineOut(line, item)
	return &out, nil
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		_, err := s.CartRepo.ClearLines(tx, userID)
		return err
	})
}
