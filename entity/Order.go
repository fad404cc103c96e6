package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status progress flag.
const (
	OrderStatusPending   = 0
	OrderStatusDelivered = 1
)

type Order struct {
	gorm.Model
	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"-"` // preload only when the owner detail is needed

	DeliveryCrewID *uint `json:"deliveryCrewId"`
	DeliveryCrew   *User `gorm:"foreignKey:DeliveryCrewID" json:"-"`

	Status int `gorm:"not null;default:0" json:"status"`

	// Snapshot taken at conversion time; never recomputed from the items.
	Total decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total"`
	Date  time.Time       `gorm:"not null" json:"date"`

	OrderItems []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
