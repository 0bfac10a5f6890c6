package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/pkg/errs"
)

func fptr(v float64) *float64 { return &v }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListByCompanyAndRole(_ context.Context, companyID string, role model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.CompanyID != nil && *u.CompanyID == companyID && u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.CompanyID == "" {
		company.CompanyID = fmt.Sprintf("company-%d", len(m.companies)+1)
	}
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) GetByJoinCode(_ context.Context, code string) (*model.Company, error) {
	for _, c := range m.companies {
		if c.JoinCode == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock WorkAreaRepository ──

type mockWorkAreaRepo struct {
	areas map[string]*model.WorkArea
}

func newMockWorkAreaRepo() *mockWorkAreaRepo {
	return &mockWorkAreaRepo{areas: make(map[string]*model.WorkArea)}
}

func (m *mockWorkAreaRepo) Create(_ context.Context, area *model.WorkArea) error {
	if area.WorkAreaID == "" {
		area.WorkAreaID = fmt.Sprintf("area-%d", len(m.areas)+1)
	}
	m.areas[area.WorkAreaID] = area
	return nil
}

func (m *mockWorkAreaRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*model.WorkArea, error) {
	if a, ok := m.areas[id]; ok && a.CompanyID == companyID {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkAreaRepo) ListByCompany(_ context.Context, companyID string, includeInactive bool) ([]model.WorkArea, error) {
	var result []model.WorkArea
	for _, a := range m.areas {
		if a.CompanyID != companyID {
			continue
		}
		if !includeInactive && !a.IsActive {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockWorkAreaRepo) Update(_ context.Context, area *model.WorkArea) error {
	m.areas[area.WorkAreaID] = area
	return nil
}

func (m *mockWorkAreaRepo) Delete(_ context.Context, id string) error {
	delete(m.areas, id)
	return nil
}

// ── Mock ShiftRepository ──
//
// Enforces the version guard the way the real repository does, so
// concurrent-write behavior is testable without a database. When users and
// areas are populated, reads attach associations the way the real
// repository's preloads do.

type mockShiftRepo struct {
	mu     sync.Mutex
	shifts map[string]*model.Shift
	users  map[string]*model.User
	areas  map[string]*model.WorkArea
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{
		shifts: make(map[string]*model.Shift),
		users:  make(map[string]*model.User),
		areas:  make(map[string]*model.WorkArea),
	}
}

func (m *mockShiftRepo) preload(shift *model.Shift) {
	if u, ok := m.users[shift.UserID]; ok {
		shift.User = u
	}
	if shift.WorkAreaID != nil {
		if a, ok := m.areas[*shift.WorkAreaID]; ok {
			shift.WorkArea = a
		}
	}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%d", len(m.shifts)+1)
	}
	if shift.Version == 0 {
		shift.Version = 1
	}
	stored := *shift
	m.shifts[shift.ShiftID] = &stored
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.shifts[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) FindActiveByUser(_ context.Context, userID string) (*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.shifts {
		if s.UserID == userID && s.IsActiveShift {
			copied := *s
			m.preload(&copied)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) FindStaleActive(_ context.Context, threshold time.Time) ([]model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Shift
	for _, s := range m.shifts {
		if !s.IsActiveShift {
			continue
		}
		if s.LastLocationCheck == nil || s.LastLocationCheck.Before(threshold) {
			copied := *s
			m.preload(&copied)
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListByUser(_ context.Context, userID string) ([]model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Shift
	for _, s := range m.shifts {
		if s.UserID == userID {
			copied := *s
			m.preload(&copied)
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListByCompany(_ context.Context, companyID string) ([]model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Shift
	for _, s := range m.shifts {
		if s.CompanyID == companyID {
			copied := *s
			m.preload(&copied)
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.shifts[shift.ShiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != shift.Version {
		return errs.ErrOptimisticLock
	}
	shift.Version++
	copied := *shift
	m.shifts[shift.ShiftID] = &copied
	return nil
}

func (m *mockShiftRepo) DetachWorkArea(_ context.Context, workAreaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.shifts {
		if s.WorkAreaID != nil && *s.WorkAreaID == workAreaID {
			s.WorkAreaID = nil
		}
	}
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*model.ShiftViolationNotification
	order         []string
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.ShiftViolationNotification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.ShiftViolationNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	}
	m.notifications[n.NotificationID] = n
	m.order = append(m.order, n.NotificationID)
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.ShiftViolationNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListUnreadByUser(_ context.Context, userID string) ([]model.ShiftViolationNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ShiftViolationNotification
	for _, id := range m.order {
		n := m.notifications[id]
		if n.UserID == userID && !n.IsRead {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnreadByUser(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkDelivered(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if n, ok := m.notifications[id]; ok {
			n.IsDelivered = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

// all returns every notification in creation order.
func (m *mockNotificationRepo) all() []model.ShiftViolationNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.ShiftViolationNotification, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, *m.notifications[id])
	}
	return result
}

// ── Mock Mailer ──

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (m *mockMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
