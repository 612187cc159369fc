package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/kasmetics/storefront/pkg/db/models"
)

type stubAnalyticsRepo struct {
	users, products, orders int64
	salesCents              int64
	mostSold                *models.Product
	topCustomer             *TopCustomerRow
}

func (s *stubAnalyticsRepo) CountUsers(context.Context) (int64, error)    { return s.users, nil }
func (s *stubAnalyticsRepo) CountProducts(context.Context) (int64, error) { return s.products, nil }
func (s *stubAnalyticsRepo) CountOrders(context.Context) (int64, error)   { return s.orders, nil }
func (s *stubAnalyticsRepo) SumOrderTotals(context.Context) (int64, error) {
	return s.salesCents, nil
}
func (s *stubAnalyticsRepo) MostSoldProduct(context.Context) (*models.Product, error) {
	return s.mostSold, nil
}
func (s *stubAnalyticsRepo) TopCustomer(context.Context) (*TopCustomerRow, error) {
	return s.topCustomer, nil
}

func TestSummaryAggregates(t *testing.T) {
	productID := uuid.New()
	customerID := uuid.New()
	repo := &stubAnalyticsRepo{
		users:      12,
		products:   4,
		orders:     9,
		salesCents: 123450,
		mostSold:   &models.Product{ID: productID, Name: "Rose Serum", Sales: 37},
		topCustomer: &TopCustomerRow{
			UserID:     customerID,
			Name:       "Big Spender",
			Email:      "spender@example.com",
			TotalCents: 56025,
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalUsers != 12 || summary.TotalProducts != 4 || summary.TotalOrders != 9 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if got := summary.TotalSales.String(); got != "1234.5" {
		t.Fatalf("expected 1234.5 dollars, got %s", got)
	}
	if summary.MostSoldProduct == nil || summary.MostSoldProduct.ID != productID {
		t.Fatalf("unexpected most sold product: %+v", summary.MostSoldProduct)
	}
	if summary.TopCustomer == nil || summary.TopCustomer.ID != customerID {
		t.Fatalf("unexpected top customer: %+v", summary.TopCustomer)
	}
	if got := summary.TopCustomer.TotalSpent.String(); got != "560.25" {
		t.Fatalf("expected 560.25 dollars, got %s", got)
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	svc, err := NewService(&stubAnalyticsRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.TotalSales.IsZero() {
		t.Fatalf("expected zero sales, got %s", summary.TotalSales)
	}
	if summary.MostSoldProduct != nil || summary.TopCustomer != nil {
		t.Fatal("empty store must not report a most sold product or top customer")
	}
}
