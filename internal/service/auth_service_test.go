package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/config"
	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
	"github.com/ChristianMThomas/Timenest/pkg/jwt"
)

func setupAuthFixture() (AuthService, *mockUserRepo) {
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:         userRepo,
		Company:      newMockCompanyRepo(),
		WorkArea:     newMockWorkAreaRepo(),
		Shift:        newMockShiftRepo(),
		Notification: newMockNotificationRepo(),
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-auth-tests",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// nil redis: revocation checks are skipped, the paths under test do not
	// depend on them
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Riley Worker",
		Email:    "riley@example.com",
		Password: "correct-horse-battery",
		Role:     "employee",
	}
}

func TestAuth_Register_Success(t *testing.T) {
	svc, userRepo := setupAuthFixture()

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Email != "riley@example.com" || resp.Role != "employee" {
		t.Errorf("unexpected response: %+v", resp)
	}

	stored, err := userRepo.GetByEmail(context.Background(), "riley@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "correct-horse-battery" {
		t.Error("password must be stored hashed")
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), registerRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuth_Register_InvalidRole(t *testing.T) {
	svc, _ := setupAuthFixture()

	req := registerRequest()
	req.Role = "admin"
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuth_Login_Success(t *testing.T) {
	svc, _ := setupAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "riley@example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("login must return both tokens")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in should mirror the access TTL, got %d", resp.ExpiresIn)
	}
	if resp.User.Email != "riley@example.com" {
		t.Errorf("token response should embed the user, got %+v", resp.User)
	}
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	svc, _ := setupAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "riley@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email must not be distinguishable, got %v", err)
	}
}

func TestAuth_RefreshToken_Success(t *testing.T) {
	svc, _ := setupAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "riley@example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	resp, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("refresh must return a full token pair")
	}
}

func TestAuth_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, _ := setupAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "riley@example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("an access token must not refresh, got %v", err)
	}
}

func TestAuth_GetCurrentUser(t *testing.T) {
	svc, userRepo := setupAuthFixture()

	companyID := "company-1"
	userRepo.users["emp-1"] = &model.User{
		UserID:    "emp-1",
		Name:      "Riley Worker",
		Email:     "riley@example.com",
		Role:      model.RoleEmployee,
		CompanyID: &companyID,
		Company:   &model.Company{CompanyID: companyID, Name: "Acme Corp"},
	}

	resp, err := svc.GetCurrentUser(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if resp.Company == nil || resp.Company.Name != "Acme Corp" {
		t.Errorf("profile should embed the company, got %+v", resp.Company)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
