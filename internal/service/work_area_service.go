package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
	"github.com/ChristianMThomas/Timenest/pkg/geo"
)

// ── work area business errors ──

var (
	ErrWorkAreaNotFound = errors.New("work area not found")
	ErrWorkAreaInactive = errors.New("work area is not active")
)

// GeofenceViolationError reports a clock-in attempt outside the geofence.
// Carries the measured distance and the allowed radius for a precise
// user-facing message.
type GeofenceViolationError struct {
	AreaName string
	Distance float64
	Radius   float64
}

func (e *GeofenceViolationError) Error() string {
	return fmt.Sprintf("you are %.0f meters away from %q; you must be within %.0f meters to clock in",
		e.Distance, e.AreaName, e.Radius)
}

// WorkAreaService handles geofence CRUD and validation. All operations are
// scoped to the caller's company.
type WorkAreaService interface {
	Create(ctx context.Context, req *dto.CreateWorkAreaRequest, companyID string) (*dto.WorkAreaResponse, error)
	GetByID(ctx context.Context, id, companyID string) (*dto.WorkAreaResponse, error)
	List(ctx context.Context, req *dto.WorkAreaListRequest, companyID string) ([]dto.WorkAreaResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateWorkAreaRequest, companyID string) (*dto.WorkAreaResponse, error)
	Delete(ctx context.Context, id, companyID string) error
	// ValidateGeofence returns a GeofenceViolationError when (lat, lon) is
	// outside the area's radius, and the loaded area otherwise.
	ValidateGeofence(ctx context.Context, id, companyID string, lat, lon float64) (*model.WorkArea, error)
}

type workAreaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkAreaService builds the WorkAreaService.
func NewWorkAreaService(repo *repository.Repository, logger *zap.Logger) WorkAreaService {
	return &workAreaService{repo: repo, logger: logger}
}

func (s *workAreaService) Create(ctx context.Context, req *dto.CreateWorkAreaRequest, companyID string) (*dto.WorkAreaResponse, error) {
	area := &model.WorkArea{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
		CompanyID:    companyID,
	}

	if err := s.repo.WorkArea.Create(ctx, area); err != nil {
		s.logger.Error("create work area failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("work area created",
		zap.String("work_area_id", area.WorkAreaID),
		zap.String("company_id", companyID),
	)

	return toWorkAreaResponse(area), nil
}

func (s *workAreaService) GetByID(ctx context.Context, id, companyID string) (*dto.WorkAreaResponse, error) {
	area, err := s.getOwned(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	return toWorkAreaResponse(area), nil
}

func (s *workAreaService) List(ctx context.Context, req *dto.WorkAreaListRequest, companyID string) ([]dto.WorkAreaResponse, error) {
	areas, err := s.repo.WorkArea.ListByCompany(ctx, companyID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("list work areas failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkAreaResponse, 0, len(areas))
	for i := range areas {
		result = append(result, *toWorkAreaResponse(&areas[i]))
	}
	return result, nil
}

func (s *workAreaService) Update(ctx context.Context, id string, req *dto.UpdateWorkAreaRequest, companyID string) (*dto.WorkAreaResponse, error) {
	area, err := s.getOwned(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		area.Name = *req.Name
	}
	if req.Address != nil {
		area.Address = *req.Address
	}
	if req.Latitude != nil {
		area.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		area.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		area.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		area.IsActive = *req.IsActive
	}

	if err := s.repo.WorkArea.Update(ctx, area); err != nil {
		s.logger.Error("update work area failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toWorkAreaResponse(area), nil
}

func (s *workAreaService) Delete(ctx context.Context, id, companyID string) error {
	area, err := s.getOwned(ctx, id, companyID)
	if err != nil {
		return err
	}

	// shifts referencing the area keep their history, just without the link
	if err := s.repo.Shift.DetachWorkArea(ctx, area.WorkAreaID); err != nil {
		s.logger.Error("detach shifts from work area failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.WorkArea.Delete(ctx, area.WorkAreaID); err != nil {
		s.logger.Error("delete work area failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("work area deleted", zap.String("work_area_id", id))
	return nil
}

func (s *workAreaService) ValidateGeofence(ctx context.Context, id, companyID string, lat, lon float64) (*model.WorkArea, error) {
	area, err := s.getOwned(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if !area.IsActive {
		return nil, ErrWorkAreaInactive
	}

	distance := geo.Distance(area.Latitude, area.Longitude, lat, lon)
	if distance > area.RadiusMeters {
		return nil, &GeofenceViolationError{
			AreaName: area.Name,
			Distance: distance,
			Radius:   area.RadiusMeters,
		}
	}

	s.logger.Debug("geofence validation passed",
		zap.String("work_area", area.Name),
		zap.Float64("distance_m", distance),
	)
	return area, nil
}

// ── helpers ──

func (s *workAreaService) getOwned(ctx context.Context, id, companyID string) (*model.WorkArea, error) {
	area, err := s.repo.WorkArea.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkAreaNotFound
		}
		s.logger.Error("lookup work area failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return area, nil
}

func toWorkAreaResponse(area *model.WorkArea) *dto.WorkAreaResponse {
	return &dto.WorkAreaResponse{
		ID:           area.WorkAreaID,
		Name:         area.Name,
		Address:      area.Address,
		Latitude:     area.Latitude,
		Longitude:    area.Longitude,
		RadiusMeters: area.RadiusMeters,
		IsActive:     area.IsActive,
		CreatedAt:    area.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
