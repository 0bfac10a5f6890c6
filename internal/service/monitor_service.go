package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/config"
	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
	"github.com/ChristianMThomas/Timenest/pkg/errs"
	"github.com/ChristianMThomas/Timenest/pkg/geo"
	"github.com/ChristianMThomas/Timenest/pkg/mailer"
)

// ObservationMode distinguishes the two triggering paths feeding the
// evaluator. They escalate differently: a repeat sweep detection terminates
// immediately (the heartbeat-timeout window already elapsed once before the
// shift was selected), while the real-time path waits out a grace period
// measured from the first violation to avoid flapping on GPS noise.
type ObservationMode int

const (
	ObservationRealtime ObservationMode = iota
	ObservationSweep
)

func (m ObservationMode) String() string {
	if m == ObservationSweep {
		return "sweep"
	}
	return "realtime"
}

// Observation is one input to the evaluator: either a fresh location already
// stored on the shift (real-time) or a signal-lost marker (sweep).
type Observation struct {
	Mode  ObservationMode
	Stale bool
}

// MonitorService is the shift-compliance monitor: the violation evaluator
// shared by the heartbeat path and the scheduled sweep, plus the sweep itself.
type MonitorService interface {
	// Evaluate runs the escalation state machine for one shift. The shift
	// must have its User (with Company) and WorkArea loaded. Safe to call
	// concurrently for different shifts; a concurrent call for the same
	// shift is resolved by optimistic locking, with one caller winning.
	Evaluate(ctx context.Context, shift *model.Shift, obs Observation) error
	// CheckActiveShifts sweeps every active shift with stale location data.
	// Per-shift failures are collected, not fatal.
	CheckActiveShifts(ctx context.Context) (*dto.SweepResultResponse, error)
	// Run drives CheckActiveShifts on a timer until ctx is cancelled.
	Run(ctx context.Context)
}

type monitorService struct {
	cfg    *config.MonitorConfig
	repo   *repository.Repository
	mail   mailer.Mailer
	logger *zap.Logger
	now    func() time.Time
}

// NewMonitorService builds the MonitorService.
func NewMonitorService(
	cfg *config.MonitorConfig,
	repo *repository.Repository,
	mail mailer.Mailer,
	logger *zap.Logger,
) MonitorService {
	return &monitorService{
		cfg:    cfg,
		repo:   repo,
		mail:   mail,
		logger: logger,
		now:    time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// Scheduled sweep
// ═══════════════════════════════════════════════════════════

func (s *monitorService) Run(ctx context.Context) {
	s.logger.Info("shift monitor scheduled",
		zap.Duration("sweep_interval", s.cfg.SweepInterval),
		zap.Duration("startup_delay", s.cfg.StartupDelay),
	)

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.cfg.StartupDelay):
	}

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		if result, err := s.CheckActiveShifts(ctx); err != nil {
			s.logger.Error("compliance sweep failed", zap.Error(err))
		} else if len(result.Errors) > 0 {
			s.logger.Warn("compliance sweep finished with per-shift errors",
				zap.Int("processed", result.Processed),
				zap.Strings("errors", result.Errors),
			)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("shift monitor stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *monitorService) CheckActiveShifts(ctx context.Context) (*dto.SweepResultResponse, error) {
	threshold := s.now().Add(-s.cfg.HeartbeatTimeout)

	shifts, err := s.repo.Shift.FindStaleActive(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("select stale active shifts: %w", err)
	}

	s.logger.Info("compliance sweep started", zap.Int("candidates", len(shifts)))

	result := &dto.SweepResultResponse{}
	for i := range shifts {
		shift := &shifts[i]
		if err := s.Evaluate(ctx, shift, Observation{Mode: ObservationSweep, Stale: true}); err != nil {
			// one bad record never aborts the sweep
			s.logger.Error("evaluate shift failed",
				zap.String("shift_id", shift.ShiftID),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("shift %s: %v", shift.ShiftID, err))
			continue
		}
		result.Processed++
	}

	return result, nil
}

// ═══════════════════════════════════════════════════════════
// Violation evaluator: escalation state machine
// ═══════════════════════════════════════════════════════════
//
// States keyed by the violation counter:
//
//	0 compliant → 1 warned → 2 terminated (terminal)
//
// Recovery (back inside the geofence with fresh data) resets 1 → 0 silently.
// Counter 2 is a no-op: duplicate concurrent triggers must not double-fire.

func (s *monitorService) Evaluate(ctx context.Context, shift *model.Shift, obs Observation) error {
	if shift.Terminal() {
		return nil
	}

	if shift.WorkAreaID == nil || shift.WorkArea == nil {
		s.logger.Warn("shift has no work area assigned, skipping",
			zap.String("shift_id", shift.ShiftID))
		return nil
	}
	area := shift.WorkArea

	stale := obs.Stale
	outside := false
	var distance float64

	if !stale && shift.CurrentLatitude != nil && shift.CurrentLongitude != nil {
		distance = geo.Distance(area.Latitude, area.Longitude,
			*shift.CurrentLatitude, *shift.CurrentLongitude)
		outside = distance > area.RadiusMeters
	}

	if !stale && !outside {
		return s.handleCompliant(ctx, shift)
	}

	switch shift.ViolationCount {
	case model.ViolationNone:
		return s.handleFirstViolation(ctx, shift, stale, distance, area)
	case model.ViolationWarned:
		if obs.Mode == ObservationRealtime && !s.graceElapsed(shift) {
			s.logger.Debug("violation within grace period, holding",
				zap.String("shift_id", shift.ShiftID))
			return nil
		}
		return s.escalate(ctx, shift, stale, distance, area)
	}
	return nil
}

func (s *monitorService) graceElapsed(shift *model.Shift) bool {
	if shift.FirstViolationTime == nil {
		return false
	}
	return s.now().Sub(*shift.FirstViolationTime) >= s.cfg.GracePeriod
}

func (s *monitorService) handleCompliant(ctx context.Context, shift *model.Shift) error {
	if shift.ViolationCount == 0 {
		return nil
	}

	s.logger.Info("shift returned to compliance, resetting violations",
		zap.String("shift_id", shift.ShiftID),
		zap.String("user_id", shift.UserID),
	)

	shift.ViolationCount = model.ViolationNone
	shift.FirstViolationTime = nil

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, errs.ErrOptimisticLock) {
			s.logger.Debug("compliance reset lost a write race", zap.String("shift_id", shift.ShiftID))
			return nil
		}
		return err
	}
	// no notification on recovery
	return nil
}

func (s *monitorService) handleFirstViolation(ctx context.Context, shift *model.Shift, stale bool, distance float64, area *model.WorkArea) error {
	now := s.now()

	reason := violationReason(stale, distance, area, false)
	s.logger.Warn("first violation detected",
		zap.String("shift_id", shift.ShiftID),
		zap.String("user_id", shift.UserID),
		zap.String("reason", reason),
	)

	shift.ViolationCount = model.ViolationWarned
	shift.FirstViolationTime = &now

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, errs.ErrOptimisticLock) {
			// a concurrent trigger recorded the violation first
			s.logger.Debug("first violation lost a write race", zap.String("shift_id", shift.ShiftID))
			return nil
		}
		return err
	}

	n := &model.ShiftViolationNotification{
		ShiftID:              shift.ShiftID,
		UserID:               shift.UserID,
		NotificationType:     model.NotificationWarning,
		Message:              "Warning: " + reason + ". Please return to your work area immediately or you will be automatically clocked out.",
		Latitude:             shift.CurrentLatitude,
		Longitude:            shift.CurrentLongitude,
		DistanceFromWorkarea: &distance,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		// the violation state is already recorded; the in-app warning is
		// best-effort, same policy as email delivery
		s.logger.Error("create warning notification failed",
			zap.String("shift_id", shift.ShiftID), zap.Error(err))
	}
	return nil
}

func (s *monitorService) escalate(ctx context.Context, shift *model.Shift, stale bool, distance float64, area *model.WorkArea) error {
	detectionTime := s.now()

	reason := violationReason(stale, distance, area, true)
	s.logger.Warn("second violation, auto clock-out",
		zap.String("shift_id", shift.ShiftID),
		zap.String("user_id", shift.UserID),
		zap.String("reason", reason),
	)

	hours := float64(detectionTime.Sub(shift.StartTime).Milliseconds()) / 3600000.0

	endTime := detectionTime
	shift.EndTime = &endTime
	shift.IsActiveShift = false
	shift.AutoClockedOut = true
	shift.AutoClockoutReason = &reason
	shift.ViolationCount = model.ViolationTerminated
	shift.Hours = &hours

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		if errors.Is(err, errs.ErrOptimisticLock) {
			// the concurrent trigger already terminated this shift; exactly
			// one escalation wins, so no notification from this path
			s.logger.Debug("escalation lost a write race", zap.String("shift_id", shift.ShiftID))
			return nil
		}
		return err
	}

	n := &model.ShiftViolationNotification{
		ShiftID:              shift.ShiftID,
		UserID:               shift.UserID,
		NotificationType:     model.NotificationAutoClockout,
		Message:              "You have been automatically clocked out. Reason: " + reason,
		Latitude:             shift.CurrentLatitude,
		Longitude:            shift.CurrentLongitude,
		DistanceFromWorkarea: &distance,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("create auto-clockout notification failed",
			zap.String("shift_id", shift.ShiftID), zap.Error(err))
	}

	s.notifyExecutives(ctx, shift, area, detectionTime, reason, distance)

	s.logger.Info("auto clocked out",
		zap.String("shift_id", shift.ShiftID),
		zap.String("user_id", shift.UserID),
		zap.Float64("hours", hours),
	)
	return nil
}

// notifyExecutives emails every executive of the employee's company. Delivery
// failure is logged and never rolls back the clock-out.
func (s *monitorService) notifyExecutives(ctx context.Context, shift *model.Shift, area *model.WorkArea, clockoutTime time.Time, reason string, distance float64) {
	if shift.User == nil {
		s.logger.Warn("cannot notify executives: shift has no user loaded",
			zap.String("shift_id", shift.ShiftID))
		return
	}
	employee := shift.User

	companyName := shift.CompanyID
	if employee.Company != nil {
		companyName = employee.Company.Name
	}

	executives, err := s.repo.User.ListByCompanyAndRole(ctx, shift.CompanyID, model.RoleExecutive)
	if err != nil {
		s.logger.Error("list executives failed",
			zap.String("company_id", shift.CompanyID), zap.Error(err))
		return
	}
	if len(executives) == 0 {
		s.logger.Warn("no executives found for company",
			zap.String("company_id", shift.CompanyID))
		return
	}

	hours := 0.0
	if shift.Hours != nil {
		hours = *shift.Hours
	}

	subject := fmt.Sprintf("Auto Clock-Out Alert: %s", employee.Name)
	body := fmt.Sprintf(`<h2>Employee Automatically Clocked Out</h2>
<p>An employee has been automatically clocked out due to a geofence violation.</p>
<hr>
<p><strong>Employee:</strong> %s (%s)</p>
<p><strong>Company:</strong> %s</p>
<p><strong>Work Area:</strong> %s</p>
<p><strong>Clock-out Time:</strong> %s</p>
<p><strong>Reason:</strong> %s</p>
<p><strong>Shift Duration:</strong> %.2f hours</p>
<p><strong>Location Status:</strong> %.0f meters from work area</p>
<hr>
<p><em>This is an automated notification from TimeNest.</em></p>`,
		employee.Name,
		employee.Email,
		companyName,
		area.Name,
		clockoutTime.Format("2006-01-02 15:04:05"),
		reason,
		hours,
		distance,
	)

	for i := range executives {
		exec := &executives[i]
		if err := s.mail.Send(ctx, exec.Email, subject, body); err != nil {
			s.logger.Error("send executive alert failed",
				zap.String("to", exec.Email), zap.Error(err))
			continue
		}
		s.logger.Info("executive alert sent", zap.String("to", exec.Email))
	}
}

func violationReason(stale bool, distance float64, area *model.WorkArea, repeated bool) string {
	if stale {
		if repeated {
			return "Location signal remained unavailable after warning"
		}
		return "Location signal lost - app may be closed or location services disabled"
	}
	if repeated {
		return fmt.Sprintf("Remained outside work area (%.0f meters away)", distance)
	}
	return fmt.Sprintf("Outside work area (%.0f meters away, must be within %.0f meters)",
		distance, area.RadiusMeters)
}
