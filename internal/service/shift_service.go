package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/config"
	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
	"github.com/ChristianMThomas/Timenest/pkg/errs"
	"github.com/ChristianMThomas/Timenest/pkg/geo"
)

var (
	ErrAlreadyActive = errors.New("user already has an active shift")
	ErrNoActiveShift = errors.New("no active shift found")
)

// ShiftService owns the shift lifecycle: clock-in, clock-out and the
// heartbeat path that feeds fresh locations into the compliance monitor.
type ShiftService interface {
	StartShift(ctx context.Context, userID, companyID string, req *dto.StartShiftRequest) (*dto.ShiftResponse, error)
	EndShift(ctx context.Context, userID string) (*dto.ShiftResponse, error)
	Heartbeat(ctx context.Context, userID string, req *dto.HeartbeatRequest) (*dto.ShiftResponse, error)
	GetActiveShift(ctx context.Context, userID string) (*dto.ShiftResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.ShiftResponse, error)
	ListCompany(ctx context.Context, companyID string) ([]dto.ShiftResponse, error)
}

type shiftService struct {
	cfg     *config.MonitorConfig
	repo    *repository.Repository
	monitor MonitorService
	logger  *zap.Logger
	now     func() time.Time
}

// NewShiftService builds the ShiftService.
func NewShiftService(
	cfg *config.MonitorConfig,
	repo *repository.Repository,
	monitor MonitorService,
	logger *zap.Logger,
) ShiftService {
	return &shiftService{
		cfg:     cfg,
		repo:    repo,
		monitor: monitor,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *shiftService) StartShift(ctx context.Context, userID, companyID string, req *dto.StartShiftRequest) (*dto.ShiftResponse, error) {
	if _, err := s.repo.Shift.FindActiveByUser(ctx, userID); err == nil {
		return nil, ErrAlreadyActive
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup active shift failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	area, err := s.repo.WorkArea.GetByIDAndCompany(ctx, req.WorkAreaID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkAreaNotFound
		}
		s.logger.Error("lookup work area failed", zap.String("work_area_id", req.WorkAreaID), zap.Error(err))
		return nil, err
	}
	if !area.IsActive {
		return nil, ErrWorkAreaInactive
	}

	distance := geo.Distance(area.Latitude, area.Longitude, *req.Latitude, *req.Longitude)
	if distance > area.RadiusMeters {
		return nil, &GeofenceViolationError{
			AreaName: area.Name,
			Distance: distance,
			Radius:   area.RadiusMeters,
		}
	}

	now := s.now()
	lat, lon := *req.Latitude, *req.Longitude
	shift := &model.Shift{
		UserID:            userID,
		CompanyID:         companyID,
		WorkAreaID:        &area.WorkAreaID,
		Location:          area.Name,
		StartTime:         now,
		IsActiveShift:     true,
		CheckInLatitude:   &lat,
		CheckInLongitude:  &lon,
		CurrentLatitude:   &lat,
		CurrentLongitude:  &lon,
		LastLocationCheck: &now,
		ViolationCount:    model.ViolationNone,
		Version:           1,
	}

	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		// the partial unique index on active shifts closes the
		// check-then-create race
		s.logger.Error("create shift failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("shift started",
		zap.String("shift_id", shift.ShiftID),
		zap.String("user_id", userID),
		zap.String("work_area", area.Name),
	)
	return toShiftResponse(shift), nil
}

func (s *shiftService) EndShift(ctx context.Context, userID string) (*dto.ShiftResponse, error) {
	shift, err := s.getActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	endTime := s.now()
	hours := float64(endTime.Sub(shift.StartTime).Milliseconds()) / 3600000.0

	shift.EndTime = &endTime
	shift.IsActiveShift = false
	shift.Hours = &hours

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, errs.ErrOptimisticLock) {
			// the monitor got there first, most likely an auto clock-out
			return nil, ErrNoActiveShift
		}
		s.logger.Error("end shift failed", zap.String("shift_id", shift.ShiftID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("shift ended",
		zap.String("shift_id", shift.ShiftID),
		zap.String("user_id", userID),
		zap.Float64("hours", hours),
	)
	return toShiftResponse(shift), nil
}

// Heartbeat records a location report. Coordinates are debounced: they are
// adopted only when the employee moved more than the configured distance or
// the stored fix is old, but the check timestamp always advances so the sweep
// never flags a shift whose app is alive and merely standing still.
func (s *shiftService) Heartbeat(ctx context.Context, userID string, req *dto.HeartbeatRequest) (*dto.ShiftResponse, error) {
	shift, err := s.getActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	adopt := true
	if shift.CurrentLatitude != nil && shift.CurrentLongitude != nil && shift.LastLocationCheck != nil {
		moved := geo.Distance(*shift.CurrentLatitude, *shift.CurrentLongitude, *req.Latitude, *req.Longitude)
		age := now.Sub(*shift.LastLocationCheck)
		adopt = moved > s.cfg.DebounceDistanceMeters || age > s.cfg.DebounceMaxAge
	}

	if adopt {
		lat, lon := *req.Latitude, *req.Longitude
		shift.CurrentLatitude = &lat
		shift.CurrentLongitude = &lon
	}
	shift.LastLocationCheck = &now

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, errs.ErrOptimisticLock) {
			// the sweep won a race on this row; report the new truth
			fresh, ferr := s.repo.Shift.FindActiveByUser(ctx, userID)
			if ferr != nil {
				return nil, ErrNoActiveShift
			}
			return toShiftResponse(fresh), nil
		}
		s.logger.Error("persist heartbeat failed", zap.String("shift_id", shift.ShiftID), zap.Error(err))
		return nil, err
	}

	// evaluate only after the location is durably recorded, so a crash
	// between the two steps loses an evaluation, never a location
	if shift.WorkAreaID != nil {
		if err := s.monitor.Evaluate(ctx, shift, Observation{Mode: ObservationRealtime}); err != nil {
			s.logger.Error("real-time evaluation failed",
				zap.String("shift_id", shift.ShiftID), zap.Error(err))
		}
	}

	return toShiftResponse(shift), nil
}

func (s *shiftService) GetActiveShift(ctx context.Context, userID string) (*dto.ShiftResponse, error) {
	shift, err := s.getActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toShiftResponse(shift), nil
}

func (s *shiftService) ListMine(ctx context.Context, userID string) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list shifts failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toShiftResponses(shifts), nil
}

func (s *shiftService) ListCompany(ctx context.Context, companyID string) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list company shifts failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return toShiftResponses(shifts), nil
}

func (s *shiftService) getActive(ctx context.Context, userID string) (*model.Shift, error) {
	shift, err := s.repo.Shift.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveShift
		}
		s.logger.Error("lookup active shift failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return shift, nil
}

func toShiftResponse(shift *model.Shift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:                 shift.ShiftID,
		UserID:             shift.UserID,
		WorkAreaID:         shift.WorkAreaID,
		Location:           shift.Location,
		StartTime:          shift.StartTime,
		EndTime:            shift.EndTime,
		Hours:              shift.Hours,
		IsActiveShift:      shift.IsActiveShift,
		CurrentLatitude:    shift.CurrentLatitude,
		CurrentLongitude:   shift.CurrentLongitude,
		LastLocationCheck:  shift.LastLocationCheck,
		ViolationCount:     shift.ViolationCount,
		AutoClockedOut:     shift.AutoClockedOut,
		AutoClockoutReason: shift.AutoClockoutReason,
	}
}

func toShiftResponses(shifts []model.Shift) []dto.ShiftResponse {
	out := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, *toShiftResponse(&shifts[i]))
	}
	return out
}
