package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/pkg/errs"
)

// ShiftRepository is the shift data-access interface.
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	FindActiveByUser(ctx context.Context, userID string) (*model.Shift, error)
	// FindStaleActive selects every active shift whose last location check is
	// missing or older than threshold, with user, company and work area loaded.
	FindStaleActive(ctx context.Context, threshold time.Time) ([]model.Shift, error)
	ListByUser(ctx context.Context, userID string) ([]model.Shift, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.Shift, error)
	// Update writes the row guarded by its version column and bumps the
	// version. Returns errs.ErrOptimisticLock when the row changed underneath.
	Update(ctx context.Context, shift *model.Shift) error
	DetachWorkArea(ctx context.Context, workAreaID string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo builds the GORM-backed ShiftRepository.
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("WorkArea").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindActiveByUser(ctx context.Context, userID string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Company").
		Preload("WorkArea").
		Where("user_id = ? AND is_active_shift = ?", userID, true).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindStaleActive(ctx context.Context, threshold time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Company").
		Preload("WorkArea").
		Where("is_active_shift = ? AND (last_location_check IS NULL OR last_location_check < ?)",
			true, threshold).
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByUser(ctx context.Context, userID string) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("WorkArea").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("WorkArea").
		Where("company_id = ?", companyID).
		Order("start_time DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	readVersion := shift.Version
	shift.Version = readVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ? AND version = ?", shift.ShiftID, readVersion).
		Select("*").
		Omit("shift_id", "created_at").
		Updates(shift)
	if res.Error != nil {
		shift.Version = readVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		shift.Version = readVersion
		return errs.ErrOptimisticLock
	}
	return nil
}

func (r *shiftRepo) DetachWorkArea(ctx context.Context, workAreaID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("work_area_id = ?", workAreaID).
		Update("work_area_id", nil).Error
}
