package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/model"
)

// WorkAreaRepository is the work area data-access interface.
// All lookups are scoped to a company; cross-company access surfaces as
// gorm.ErrRecordNotFound rather than leaking another tenant's rows.
type WorkAreaRepository interface {
	Create(ctx context.Context, area *model.WorkArea) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*model.WorkArea, error)
	ListByCompany(ctx context.Context, companyID string, includeInactive bool) ([]model.WorkArea, error)
	Update(ctx context.Context, area *model.WorkArea) error
	Delete(ctx context.Context, id string) error
}

type workAreaRepo struct {
	db *gorm.DB
}

// NewWorkAreaRepo builds the GORM-backed WorkAreaRepository.
func NewWorkAreaRepo(db *gorm.DB) WorkAreaRepository {
	return &workAreaRepo{db: db}
}

func (r *workAreaRepo) Create(ctx context.Context, area *model.WorkArea) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *workAreaRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*model.WorkArea, error) {
	var area model.WorkArea
	err := r.db.WithContext(ctx).
		Where("work_area_id = ? AND company_id = ?", id, companyID).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *workAreaRepo) ListByCompany(ctx context.Context, companyID string, includeInactive bool) ([]model.WorkArea, error) {
	var areas []model.WorkArea
	db := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}

	err := db.Order("name ASC").Find(&areas).Error
	return areas, err
}

func (r *workAreaRepo) Update(ctx context.Context, area *model.WorkArea) error {
	return r.db.WithContext(ctx).Save(area).Error
}

func (r *workAreaRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("work_area_id = ?", id).
		Delete(&model.WorkArea{}).Error
}
