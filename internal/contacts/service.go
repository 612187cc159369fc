package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kasmetics/storefront/pkg/db/models"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
	"github.com/kasmetics/storefront/pkg/pagination"
)

// SubmitRequest is the public contact-form payload.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Message string `json:"message" validate:"required,min=5,max=4000"`
}

// ContactDTO is the transport shape returned to admins.
type ContactDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListResult carries one page of submissions plus the next cursor.
type ContactListResult struct {
	Contacts   []ContactDTO `json:"contacts"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// Service exposes contact-form operations.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*ContactDTO, error)
	ListSubmissions(ctx context.Context, params pagination.Params) (*ContactListResult, error)
}

type contactRepository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	List(ctx context.Context, params pagination.Params) ([]models.Contact, *pagination.Cursor, error)
}

type service struct {
	repo contactRepository
}

// NewService constructs the contacts service.
func NewService(repo contactRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contacts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*ContactDTO, error) {
	name := strings.TrimSpace(req.Name)
	message := strings.TrimSpace(req.Message)
	if name == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and message are required")
	}

	contact, err := s.repo.Create(ctx, &models.Contact{
		Name:    name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Message: message,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save submission")
	}
	return fromModel(contact), nil
}

func (s *service) ListSubmissions(ctx context.Context, params pagination.Params) (*ContactListResult, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list submissions")
	}

	out := make([]ContactDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}

	result := &ContactListResult{Contacts: out}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func fromModel(c *models.Contact) *ContactDTO {
	if c == nil {
		return nil
	}
	return &ContactDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}
