package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kasmetics/storefront/pkg/db/models"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
)

const maxCatalogLimit = 100

// Service exposes catalog read and admin management operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ListProductsInput mirrors the catalog query parameters.
type ListProductsInput struct {
	Featured   *bool
	Bestseller *bool
	Limit      int
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required"`
	PriceCents  int    `json:"price_cents" validate:"min=0"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
	Bestseller  bool   `json:"bestseller"`
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description"`
	PriceCents  *int    `json:"price_cents" validate:"omitempty,min=0"`
	Category    *string `json:"category"`
	Brand       *string `json:"brand"`
	Image       *string `json:"image"`
	Featured    *bool   `json:"featured"`
	Bestseller  *bool   `json:"bestseller"`
}

type productRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo productRepository
}

// NewService constructs a product service instance.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	limit := input.Limit
	if limit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must not be negative")
	}
	if limit > maxCatalogLimit {
		limit = maxCatalogLimit
	}

	rows, err := s.repo.List(ctx, ListFilter{
		Featured:   input.Featured,
		Bestseller: input.Bestseller,
		Limit:      limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return fromModels(rows), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return FromModel(product), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		Category:    strings.TrimSpace(input.Category),
		Brand:       strings.TrimSpace(input.Brand),
		Image:       strings.TrimSpace(input.Image),
		Featured:    input.Featured,
		Bestseller:  input.Bestseller,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Image != nil {
		product.Image = strings.TrimSpace(*input.Image)
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.Bestseller != nil {
		product.Bestseller = *input.Bestseller
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}
