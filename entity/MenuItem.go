package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Title    string          `gorm:"not null" json:"title"`
	Price    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Featured bool            `json:"featured"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"` // preload only for detail views

	CartItems  []CartItem  `json:"-"`
	OrderItems []OrderItem `json:"-"`
}
