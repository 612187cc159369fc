package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasmetics/storefront/pkg/db/models"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
)

// Summary is the admin dashboard aggregate. TotalSales is expressed in
// dollars as a decimal string to avoid float drift in the UI.
type Summary struct {
	TotalUsers      int64            `json:"total_users"`
	TotalProducts   int64            `json:"total_products"`
	TotalOrders     int64            `json:"total_orders"`
	TotalSales      decimal.Decimal  `json:"total_sales"`
	MostSoldProduct *ProductSummary  `json:"most_sold_product,omitempty"`
	TopCustomer     *CustomerSummary `json:"top_customer,omitempty"`
}

// ProductSummary is the slim product shape shown on the dashboard.
type ProductSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Sales int       `json:"sales"`
}

// CustomerSummary is the slim user shape shown on the dashboard.
type CustomerSummary struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// Service computes the admin dashboard aggregates.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type analyticsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	SumOrderTotals(ctx context.Context) (int64, error)
	MostSoldProduct(ctx context.Context) (*models.Product, error)
	TopCustomer(ctx context.Context) (*TopCustomerRow, error)
}

type service struct {
	repo analyticsRepository
}

// NewService constructs the analytics service.
func NewService(repo analyticsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count orders")
	}
	salesCents, err := s.repo.SumOrderTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum order totals")
	}

	summary := &Summary{
		TotalUsers:    users,
		TotalProducts: products,
		TotalOrders:   orders,
		TotalSales:    centsToDollars(salesCents),
	}

	mostSold, err := s.repo.MostSoldProduct(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "most sold product")
	}
	if mostSold != nil {
		summary.MostSoldProduct = &ProductSummary{
			ID:    mostSold.ID,
			Name:  mostSold.Name,
			Sales: mostSold.Sales,
		}
	}

	top, err := s.repo.TopCustomer(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "top customer")
	}
	if top != nil {
		summary.TopCustomer = &CustomerSummary{
			ID:         top.UserID,
			Name:       top.Name,
			Email:      top.Email,
			TotalSpent: centsToDollars(top.TotalCents),
		}
	}

	return summary, nil
}

func centsToDollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
