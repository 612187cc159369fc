package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kasmetics/storefront/pkg/db/models"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
)

type stubRepo struct {
	byID map[uuid.UUID]*models.Product

	lastFilter ListFilter
	listRows   []models.Product

	created *models.Product
	updated *models.Product
	deleted []uuid.UUID
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(_ context.Context, filter ListFilter) ([]models.Product, error) {
	s.lastFilter = filter
	return s.listRows, nil
}

func (s *stubRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	product.CreatedAt = time.Now().UTC()
	s.created = product
	return product, nil
}

func (s *stubRepo) Update(_ context.Context, product *models.Product) (*models.Product, error) {
	s.updated = product
	return product, nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newStubService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func boolPtr(v bool) *bool { return &v }

func TestListProductsPassesFilters(t *testing.T) {
	repo := &stubRepo{listRows: []models.Product{{ID: uuid.New(), Name: "Velvet Lipstick"}}}
	svc := newStubService(t, repo)

	out, err := svc.ListProducts(context.Background(), ListProductsInput{
		Featured: boolPtr(true),
		Limit:    4,
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Velvet Lipstick" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if repo.lastFilter.Featured == nil || !*repo.lastFilter.Featured {
		t.Fatal("featured filter not forwarded")
	}
	if repo.lastFilter.Bestseller != nil {
		t.Fatal("bestseller filter should be unset")
	}
	if repo.lastFilter.Limit != 4 {
		t.Fatalf("limit not forwarded, got %d", repo.lastFilter.Limit)
	}
}

func TestListProductsCapsLimit(t *testing.T) {
	repo := &stubRepo{}
	svc := newStubService(t, repo)

	if _, err := svc.ListProducts(context.Background(), ListProductsInput{Limit: 5000}); err != nil {
		t.Fatalf("list products: %v", err)
	}
	if repo.lastFilter.Limit != maxCatalogLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxCatalogLimit, repo.lastFilter.Limit)
	}
}

func TestListProductsRejectsNegativeLimit(t *testing.T) {
	svc := newStubService(t, &stubRepo{})
	_, err := svc.ListProducts(context.Background(), ListProductsInput{Limit: -1})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newStubService(t, &stubRepo{})

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "  ", PriceCents: 100})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "Serum", PriceCents: -5})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateProductTrimsFields(t *testing.T) {
	repo := &stubRepo{}
	svc := newStubService(t, repo)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "  Rose Serum  ",
		Description: " hydrating ",
		PriceCents:  2499,
		Brand:       " Kasmetics ",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if dto.Name != "Rose Serum" || dto.Brand != "Kasmetics" {
		t.Fatalf("fields not trimmed: %+v", dto)
	}
	if repo.created == nil || repo.created.PriceCents != 2499 {
		t.Fatalf("unexpected persisted product: %+v", repo.created)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{byID: map[uuid.UUID]*models.Product{
		id: {ID: id, Name: "Old Name", PriceCents: 1000, Featured: false},
	}}
	svc := newStubService(t, repo)

	newPrice := 1500
	dto, err := svc.UpdateProduct(context.Background(), id, UpdateProductInput{
		PriceCents: &newPrice,
		Featured:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if dto.Name != "Old Name" {
		t.Fatal("name should be untouched")
	}
	if dto.PriceCents != 1500 || !dto.Featured {
		t.Fatalf("updates not applied: %+v", dto)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := newStubService(t, &stubRepo{})
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := newStubService(t, &stubRepo{})
	err := svc.DeleteProduct(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteProduct(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{byID: map[uuid.UUID]*models.Product{id: {ID: id}}}
	svc := newStubService(t, repo)

	if err := svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != id {
		t.Fatalf("unexpected deletions: %v", repo.deleted)
	}
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s", want, typed.Code())
	}
}
