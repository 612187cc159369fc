package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog listing. Prices are stored in cents.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;not null"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	Category    string    `gorm:"column:category"`
	Brand       string    `gorm:"column:brand"`
	Image       string    `gorm:"column:image;not null;default:''"`
	Featured    bool      `gorm:"column:featured;not null;default:false"`
	Bestseller  bool      `gorm:"column:bestseller;not null;default:false"`
	Sales       int       `gorm:"column:sales;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
