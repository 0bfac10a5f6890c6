package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
)

var (
	ErrExportNoShifts     = errors.New("no shifts to export")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService renders shift history for download: a company-wide Excel
// report for executives and a per-user iCalendar feed.
type ExportService interface {
	// ExportCompanyShifts writes every shift of the company to an .xlsx
	// workbook. Returns the file content and a suggested filename.
	ExportCompanyShifts(ctx context.Context, companyID string) (*bytes.Buffer, string, error)
	// ExportShiftCalendar writes the caller's completed shifts as an
	// RFC 5545 calendar.
	ExportShiftCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService builds the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCompanyShifts: company shift report as Excel
// ═══════════════════════════════════════════════════════════
//
// One row per shift: employee, work area, start, end, hours, status.
// Auto-clocked-out shifts carry the clockout reason.

func (s *exportService) ExportCompanyShifts(ctx context.Context, companyID string) (*bytes.Buffer, string, error) {
	shifts, err := s.repo.Shift.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list company shifts failed", zap.Error(err))
		return nil, "", err
	}
	if len(shifts) == 0 {
		return nil, "", ErrExportNoShifts
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Shifts"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 8)
	f.SetColWidth(sheetName, "F", "F", 16)
	f.SetColWidth(sheetName, "G", "G", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Employee", "Work Area", "Start", "End", "Hours", "Status", "Notes"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	const timeLayout = "2006-01-02 15:04"
	row := 2
	for i := range shifts {
		shift := &shifts[i]

		employee := shift.UserID
		if shift.User != nil {
			employee = shift.User.Name
		}
		areaName := shift.Location
		if shift.WorkArea != nil {
			areaName = shift.WorkArea.Name
		}

		end := ""
		if shift.EndTime != nil {
			end = shift.EndTime.Format(timeLayout)
		}
		hours := ""
		if shift.Hours != nil {
			hours = fmt.Sprintf("%.2f", *shift.Hours)
		}

		status := "Completed"
		notes := ""
		switch {
		case shift.IsActiveShift:
			status = "Active"
		case shift.AutoClockedOut:
			status = "Auto Clock-Out"
			if shift.AutoClockoutReason != nil {
				notes = *shift.AutoClockoutReason
			}
		}

		f.SetCellValue(sheetName, cell("A", row), employee)
		f.SetCellValue(sheetName, cell("B", row), areaName)
		f.SetCellValue(sheetName, cell("C", row), shift.StartTime.Format(timeLayout))
		f.SetCellValue(sheetName, cell("D", row), end)
		f.SetCellValue(sheetName, cell("E", row), hours)
		f.SetCellValue(sheetName, cell("F", row), status)
		f.SetCellValue(sheetName, cell("G", row), notes)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("shifts_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportShiftCalendar: own shift history as iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportShiftCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	shifts, err := s.repo.Shift.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list user shifts failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TimeNest//Shift Calendar//EN")

	exported := 0
	for i := range shifts {
		shift := &shifts[i]
		// active shifts have no end yet and are skipped
		if shift.EndTime == nil {
			continue
		}

		event := cal.AddEvent(shift.ShiftID + "@timenest")
		event.SetDtStampTime(shift.CreatedAt)
		event.SetStartAt(shift.StartTime)
		event.SetEndAt(*shift.EndTime)

		summary := "Shift"
		if shift.WorkArea != nil {
			summary = "Shift at " + shift.WorkArea.Name
		} else if shift.Location != "" {
			summary = "Shift at " + shift.Location
		}
		event.SetSummary(summary)

		desc := describeShift(shift)
		if desc != "" {
			event.SetDescription(desc)
		}
		exported++
	}
	if exported == 0 {
		return nil, "", ErrExportNoShifts
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "shifts.ics", nil
}

func describeShift(shift *model.Shift) string {
	var desc string
	if shift.Hours != nil {
		desc = fmt.Sprintf("Duration: %.2f hours", *shift.Hours)
	}
	if shift.AutoClockedOut {
		if desc != "" {
			desc += "\n"
		}
		desc += "Automatically clocked out"
		if shift.AutoClockoutReason != nil {
			desc += ": " + *shift.AutoClockoutReason
		}
	}
	return desc
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
