package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
)

func setupExportFixture() (ExportService, *mockShiftRepo) {
	shiftRepo := newMockShiftRepo()
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Company:      newMockCompanyRepo(),
		WorkArea:     newMockWorkAreaRepo(),
		Shift:        shiftRepo,
		Notification: newMockNotificationRepo(),
	}
	return NewExportService(repo, zap.NewNop()), shiftRepo
}

func seedCompletedShift(t *testing.T, repo *mockShiftRepo, userID string) *model.Shift {
	t.Helper()

	area := testWorkArea()
	repo.areas[area.WorkAreaID] = area
	companyID := area.CompanyID
	repo.users[userID] = &model.User{
		UserID:    userID,
		Name:      "Riley Worker",
		Email:     userID + "@example.com",
		Role:      model.RoleEmployee,
		CompanyID: &companyID,
	}

	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	hours := 8.0
	shift := &model.Shift{
		UserID:     userID,
		CompanyID:  companyID,
		WorkAreaID: &area.WorkAreaID,
		Location:   area.Name,
		StartTime:  start,
		EndTime:    &end,
		Hours:      &hours,
	}
	if err := repo.Create(context.Background(), shift); err != nil {
		t.Fatalf("seed shift: %v", err)
	}
	return shift
}

// ── ExportCompanyShifts ──

func TestExport_CompanyShifts_Empty(t *testing.T) {
	svc, _ := setupExportFixture()

	_, _, err := svc.ExportCompanyShifts(context.Background(), "company-1")
	if !errors.Is(err, ErrExportNoShifts) {
		t.Errorf("expected ErrExportNoShifts, got %v", err)
	}
}

func TestExport_CompanyShifts_Workbook(t *testing.T) {
	svc, shiftRepo := setupExportFixture()
	seedCompletedShift(t, shiftRepo, "emp-1")

	clockedOut := seedCompletedShift(t, shiftRepo, "emp-2")
	reason := "Location signal remained unavailable after warning"
	clockedOut.AutoClockedOut = true
	clockedOut.AutoClockoutReason = &reason
	if err := shiftRepo.Update(context.Background(), clockedOut); err != nil {
		t.Fatalf("seed auto clock-out: %v", err)
	}

	buf, filename, err := svc.ExportCompanyShifts(context.Background(), "company-1")
	if err != nil {
		t.Fatalf("ExportCompanyShifts: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("unexpected filename %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("generated workbook is unreadable: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Shifts")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// header plus two data rows
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Employee" {
		t.Errorf("unexpected header %v", rows[0])
	}

	var foundClockout bool
	for _, row := range rows[1:] {
		if len(row) >= 7 && row[5] == "Auto Clock-Out" {
			foundClockout = true
			if row[6] != reason {
				t.Errorf("clockout row should carry the reason, got %q", row[6])
			}
		}
	}
	if !foundClockout {
		t.Error("auto clocked-out shift missing from the report")
	}
}

// ── ExportShiftCalendar ──

func TestExport_ShiftCalendar_SkipsActive(t *testing.T) {
	svc, shiftRepo := setupExportFixture()
	seedCompletedShift(t, shiftRepo, "emp-1")

	// active shift must not produce an event
	active := &model.Shift{
		UserID:        "emp-1",
		CompanyID:     "company-1",
		StartTime:     time.Now(),
		IsActiveShift: true,
	}
	if err := shiftRepo.Create(context.Background(), active); err != nil {
		t.Fatalf("seed active shift: %v", err)
	}

	buf, filename, err := svc.ExportShiftCalendar(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("ExportShiftCalendar: %v", err)
	}
	if filename != "shifts.ics" {
		t.Errorf("unexpected filename %q", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Fatal("not an iCalendar document")
	}
	if got := strings.Count(content, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 event, got %d", got)
	}
	if !strings.Contains(content, "Shift at Main Office") {
		t.Error("event summary should name the work area")
	}
}

func TestExport_ShiftCalendar_Empty(t *testing.T) {
	svc, _ := setupExportFixture()

	_, _, err := svc.ExportShiftCalendar(context.Background(), "emp-1")
	if !errors.Is(err, ErrExportNoShifts) {
		t.Errorf("expected ErrExportNoShifts, got %v", err)
	}
}
