package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kasmetics/storefront/internal/users"
	pkgAuth "github.com/kasmetics/storefront/pkg/auth"
	"github.com/kasmetics/storefront/pkg/config"
	"github.com/kasmetics/storefront/pkg/db/models"
	"github.com/kasmetics/storefront/pkg/enums"
	pkgerrors "github.com/kasmetics/storefront/pkg/errors"
	"github.com/kasmetics/storefront/pkg/security"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	created []*models.User

	lastLoginID uuid.UUID
	createErr   error
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.created = append(s.created, user)
	if s.byEmail == nil {
		s.byEmail = map[string]*models.User{}
	}
	s.byEmail[user.Email] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	s.lastLoginID = id
	return nil
}

type stubSessions struct {
	created []string
	revoked []string
}

func (s *stubSessions) Create(_ context.Context, accessID string, _ uuid.UUID) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "kasmetics-test",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 120,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role enums.UserRole) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if repo.byEmail == nil {
		repo.byEmail = map[string]*models.User{}
	}
	repo.byEmail[email] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	user := seedUser(t, repo, "shopper@example.com", "hunter2secret", enums.UserRoleUser)
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Shopper@Example.com ",
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
	if resp.User.Role != enums.UserRoleUser {
		t.Fatalf("unexpected role %q", resp.User.Role)
	}
	if repo.lastLoginID != user.ID {
		t.Fatal("expected last login to be recorded")
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions.created))
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user mismatch: %s", claims.UserID)
	}
	if claims.ID != sessions.created[0] {
		t.Fatal("token jti should match stored session id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	seedUser(t, repo, "shopper@example.com", "hunter2secret", enums.UserRoleUser)
	svc := newTestService(t, repo, sessions)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "not-the-password",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
	if len(sessions.created) != 0 {
		t.Fatal("no session should be created on failed login")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := &stubUserRepo{}
	user := seedUser(t, repo, "shopper@example.com", "hunter2secret", enums.UserRoleUser)
	user.IsActive = false
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "hunter2secret",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	repo := &stubUserRepo{}
	seedUser(t, repo, "shopper@example.com", "hunter2secret", enums.UserRoleUser)
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.AdminLogin(context.Background(), LoginRequest{
		Email:    "shopper@example.com",
		Password: "hunter2secret",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestAdminLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	seedUser(t, repo, "admin@kasmetics.com", "admin-password", enums.UserRoleAdmin)
	svc := newTestService(t, repo, sessions)

	resp, err := svc.AdminLogin(context.Background(), LoginRequest{
		Email:    "admin@kasmetics.com",
		Password: "admin-password",
	})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if resp.User.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role, got %q", resp.User.Role)
	}
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New Shopper",
		Email:    "New.Shopper@Example.com",
		Password: "longenoughpw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.Email != "new.shopper@example.com" {
		t.Fatalf("email should be lowercased, got %q", created.Email)
	}
	if created.Role != enums.UserRoleUser {
		t.Fatalf("registered users must get the user role, got %q", created.Role)
	}
	if created.PasswordHash == "longenoughpw" {
		t.Fatal("password must not be stored in plain text")
	}
	if resp.AccessToken == "" {
		t.Fatal("register should log the user in")
	}
	if len(sessions.created) != 1 {
		t.Fatal("register should create a session")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{}
	seedUser(t, repo, "taken@example.com", "hunter2secret", enums.UserRoleUser)
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Dup",
		Email:    "taken@example.com",
		Password: "longenoughpw",
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestService(t, &stubUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-123" {
		t.Fatalf("unexpected revoked sessions: %v", sessions.revoked)
	}
}

func TestLogoutRequiresAccessID(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})
	err := svc.Logout(context.Background(), "  ")
	assertCode(t, err, pkgerrors.CodeUnauthorized)
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
