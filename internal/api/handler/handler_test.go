package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/service"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.UserResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error { return nil }
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return nil, nil
}

// ── Mock ShiftService ──

type mockShiftService struct {
	startResult     *dto.ShiftResponse
	startErr        error
	endResult       *dto.ShiftResponse
	endErr          error
	heartbeatResult *dto.ShiftResponse
	heartbeatErr    error
	activeResult    *dto.ShiftResponse
	activeErr       error
}

func (m *mockShiftService) StartShift(_ context.Context, _, _ string, _ *dto.StartShiftRequest) (*dto.ShiftResponse, error) {
	return m.startResult, m.startErr
}
func (m *mockShiftService) EndShift(_ context.Context, _ string) (*dto.ShiftResponse, error) {
	return m.endResult, m.endErr
}
func (m *mockShiftService) Heartbeat(_ context.Context, _ string, _ *dto.HeartbeatRequest) (*dto.ShiftResponse, error) {
	return m.heartbeatResult, m.heartbeatErr
}
func (m *mockShiftService) GetActiveShift(_ context.Context, _ string) (*dto.ShiftResponse, error) {
	return m.activeResult, m.activeErr
}
func (m *mockShiftService) ListMine(_ context.Context, _ string) ([]dto.ShiftResponse, error) {
	return nil, nil
}
func (m *mockShiftService) ListCompany(_ context.Context, _ string) ([]dto.ShiftResponse, error) {
	return nil, nil
}

// ── Mock MonitorService ──

type mockMonitorService struct {
	sweepResult *dto.SweepResultResponse
	sweepErr    error
}

func (m *mockMonitorService) Evaluate(_ context.Context, _ *model.Shift, _ service.Observation) error {
	return nil
}
func (m *mockMonitorService) CheckActiveShifts(_ context.Context) (*dto.SweepResultResponse, error) {
	return m.sweepResult, m.sweepErr
}
func (m *mockMonitorService) Run(_ context.Context) {}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", "employee")
		c.Set("company_id", "test-company-id")
	})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func fptr(v float64) *float64 { return &v }

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "riley@example.com",
		Password: "correct-horse-battery",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "riley@example.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	mock := &mockAuthService{registerErr: service.ErrEmailTaken}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Name:     "Riley Worker",
		Email:    "riley@example.com",
		Password: "correct-horse-battery",
		Role:     "employee",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ShiftHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShiftHandler_Start_GeofenceViolation(t *testing.T) {
	mock := &mockShiftService{
		startErr: &service.GeofenceViolationError{
			AreaName: "Main Office",
			Distance: 450,
			Radius:   100,
		},
	}
	h := NewShiftHandler(mock, &mockMonitorService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/start", jsonBody(dto.StartShiftRequest{
		WorkAreaID: "6f1b24d2-0b0a-4c39-9f3e-b684a9c7a001",
		Latitude:   fptr(40.7209),
		Longitude:  fptr(-74.0060),
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	setAuth(r)
	r.POST("/shifts/start", h.Start)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14002 {
		t.Errorf("expected code 14002, got %d", resp.Code)
	}
}

func TestShiftHandler_Start_AlreadyActive(t *testing.T) {
	mock := &mockShiftService{startErr: service.ErrAlreadyActive}
	h := NewShiftHandler(mock, &mockMonitorService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/start", jsonBody(dto.StartShiftRequest{
		WorkAreaID: "6f1b24d2-0b0a-4c39-9f3e-b684a9c7a001",
		Latitude:   fptr(40.7128),
		Longitude:  fptr(-74.0060),
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	setAuth(r)
	r.POST("/shifts/start", h.Start)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestShiftHandler_Heartbeat_NoActiveShift(t *testing.T) {
	mock := &mockShiftService{heartbeatErr: service.ErrNoActiveShift}
	h := NewShiftHandler(mock, &mockMonitorService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/heartbeat", jsonBody(dto.HeartbeatRequest{
		Latitude:  fptr(40.7128),
		Longitude: fptr(-74.0060),
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	setAuth(r)
	r.POST("/shifts/heartbeat", h.Heartbeat)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestShiftHandler_Heartbeat_ZeroCoordinates(t *testing.T) {
	mock := &mockShiftService{heartbeatResult: &dto.ShiftResponse{ID: "shift-1", IsActiveShift: true}}
	h := NewShiftHandler(mock, &mockMonitorService{})

	// latitude 0 is the equator, a legal position, not a missing field
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/heartbeat", bytes.NewReader([]byte(`{"latitude": 0, "longitude": 25.5}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	setAuth(r)
	r.POST("/shifts/heartbeat", h.Heartbeat)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestShiftHandler_Heartbeat_InvalidBody(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{}, &mockMonitorService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/heartbeat", bytes.NewReader([]byte(`{"latitude": 400}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	setAuth(r)
	r.POST("/shifts/heartbeat", h.Heartbeat)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestShiftHandler_TriggerCheck(t *testing.T) {
	mock := &mockMonitorService{
		sweepResult: &dto.SweepResultResponse{Processed: 3},
	}
	h := NewShiftHandler(&mockShiftService{}, mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/check", nil)

	r := gin.New()
	setAuth(r)
	r.POST("/shifts/check", h.TriggerCheck)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, _ := json.Marshal(resp.Data)
	var result dto.SweepResultResponse
	json.Unmarshal(data, &result)
	if result.Processed != 3 {
		t.Errorf("expected 3 processed, got %d", result.Processed)
	}
}

func TestShiftHandler_MissingAuthContext(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{}, &mockMonitorService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shifts/active", nil)

	// no auth middleware: the context helper must reject
	r := gin.New()
	r.GET("/shifts/active", h.Active)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
