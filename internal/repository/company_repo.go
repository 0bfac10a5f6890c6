package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/model"
)

// CompanyRepository is the company data-access interface.
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetByJoinCode(ctx context.Context, code string) (*model.Company, error)
}

type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo builds the GORM-backed CompanyRepository.
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("company_id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) GetByJoinCode(ctx context.Context, code string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("join_code = ?", code).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}
