package analytics

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kasmetics/storefront/pkg/db/models"
)

// TopCustomerRow is the aggregate returned by the top-customer query.
type TopCustomerRow struct {
	UserID     uuid.UUID `gorm:"column:user_id"`
	Name       string    `gorm:"column:name"`
	Email      string    `gorm:"column:email"`
	TotalCents int64     `gorm:"column:total_cents"`
}

// Repository runs the aggregate queries behind the admin dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

// SumOrderTotals returns total order revenue in cents.
func (r *Repository) SumOrderTotals(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total_cents)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// MostSoldProduct returns the catalog row with the highest sales counter,
// or nil when the catalog is empty.
func (r *Repository) MostSoldProduct(ctx context.Context) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Order("sales DESC, created_at ASC").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// TopCustomer returns the user with the largest order revenue, or nil
// when no orders exist.
func (r *Repository) TopCustomer(ctx context.Context) (*TopCustomerRow, error) {
	var row TopCustomerRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.user_id AS user_id, users.name AS name, users.email AS email, SUM(orders.total_cents) AS total_cents").
		Joins("JOIN users ON users.id = orders.user_id").
		Group("orders.user_id, users.name, users.email").
		Order("total_cents DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.UserID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
