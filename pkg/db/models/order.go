package models

import (
	"time"

	"github.com/google/uuid"
)

// Order records a completed checkout. Only the fields analytics needs
// are persisted; line items live with the client until checkout.
type Order struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	TotalCents int       `gorm:"column:total_cents;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
