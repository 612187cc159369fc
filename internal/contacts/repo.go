package contacts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kasmetics/storefront/pkg/db/models"
	"github.com/kasmetics/storefront/pkg/pagination"
)

// Repository persists contact-form submissions.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contacts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a submission, generating its ID when absent.
func (r *Repository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns submissions newest-first using cursor pagination.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Contact, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Contact
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var next *pagination.Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}
