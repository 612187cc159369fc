package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/kasmetics/storefront/pkg/db/models"
)

// ProductDTO is the catalog transport shape.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int       `json:"price_cents"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	Bestseller  bool      `json:"bestseller"`
	Sales       int       `json:"sales"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Category:    p.Category,
		Brand:       p.Brand,
		Image:       p.Image,
		Featured:    p.Featured,
		Bestseller:  p.Bestseller,
		Sales:       p.Sales,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
