package contacts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kasmetics/storefront/pkg/db/models"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
	"github.com/kasmetics/storefront/pkg/pagination"
)

type stubContactRepo struct {
	created  *models.Contact
	listRows []models.Contact
	listNext *pagination.Cursor
}

func (s *stubContactRepo) Create(_ context.Context, contact *models.Contact) (*models.Contact, error) {
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now().UTC()
	s.created = contact
	return contact, nil
}

func (s *stubContactRepo) List(_ context.Context, _ pagination.Params) ([]models.Contact, *pagination.Cursor, error) {
	return s.listRows, s.listNext, nil
}

func TestSubmitNormalizesFields(t *testing.T) {
	repo := &stubContactRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Submit(context.Background(), SubmitRequest{
		Name:    "  Jordan  ",
		Email:   " Jordan@Example.COM ",
		Message: " where is my order? ",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if dto.Name != "Jordan" {
		t.Fatalf("name not trimmed: %q", dto.Name)
	}
	if repo.created.Email != "jordan@example.com" {
		t.Fatalf("email not normalized: %q", repo.created.Email)
	}
}

func TestSubmitRequiresNameAndMessage(t *testing.T) {
	svc, _ := NewService(&stubContactRepo{})
	_, err := svc.Submit(context.Background(), SubmitRequest{
		Name:    "  ",
		Email:   "a@example.com",
		Message: "hello",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestListSubmissionsEncodesCursor(t *testing.T) {
	next := &pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	repo := &stubContactRepo{
		listRows: []models.Contact{{ID: uuid.New(), Name: "A", Message: "m"}},
		listNext: next,
	}
	svc, _ := NewService(repo)

	result, err := svc.ListSubmissions(context.Background(), pagination.Params{Limit: 5})
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(result.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(result.Contacts))
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
}
