package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog row. Position fixes the display order.
type Product struct {
	ID        string          `gorm:"column:id;primaryKey"`
	Position  int             `gorm:"column:position;not null;default:0"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Image     string          `gorm:"column:image;not null;default:''"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
