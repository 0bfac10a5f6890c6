package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
)

// ── company business errors ──

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrInvalidJoinCode  = errors.New("invalid join code")
	ErrAlreadyInCompany = errors.New("user already belongs to a company")
	ErrNoCompany        = errors.New("user does not belong to a company")
)

// CompanyService handles company creation and membership.
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	Join(ctx context.Context, req *dto.JoinCompanyRequest, callerID string) (*dto.CompanyResponse, error)
	GetMine(ctx context.Context, callerID string) (*dto.CompanyResponse, error)
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService builds the CompanyService.
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	caller, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}
	if caller.CompanyID != nil {
		return nil, ErrAlreadyInCompany
	}

	company := &model.Company{
		Name:     req.Name,
		JoinCode: newJoinCode(),
	}
	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("create company failed", zap.Error(err))
		return nil, err
	}

	// the founder owns the company
	caller.CompanyID = &company.CompanyID
	caller.Role = model.RoleExecutive
	if err := s.repo.User.Update(ctx, caller); err != nil {
		s.logger.Error("attach founder to company failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("company created",
		zap.String("company_id", company.CompanyID),
		zap.String("founder_id", callerID),
	)

	return &dto.CompanyResponse{
		ID:       company.CompanyID,
		Name:     company.Name,
		JoinCode: company.JoinCode,
	}, nil
}

func (s *companyService) Join(ctx context.Context, req *dto.JoinCompanyRequest, callerID string) (*dto.CompanyResponse, error) {
	caller, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}
	if caller.CompanyID != nil {
		return nil, ErrAlreadyInCompany
	}

	company, err := s.repo.Company.GetByJoinCode(ctx, req.JoinCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidJoinCode
		}
		s.logger.Error("lookup company failed", zap.Error(err))
		return nil, err
	}

	caller.CompanyID = &company.CompanyID
	if err := s.repo.User.Update(ctx, caller); err != nil {
		s.logger.Error("attach user to company failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user joined company",
		zap.String("user_id", callerID),
		zap.String("company_id", company.CompanyID),
	)

	return &dto.CompanyResponse{
		ID:   company.CompanyID,
		Name: company.Name,
	}, nil
}

func (s *companyService) GetMine(ctx context.Context, callerID string) (*dto.CompanyResponse, error) {
	caller, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}
	if caller.CompanyID == nil {
		return nil, ErrNoCompany
	}

	company, err := s.repo.Company.GetByID(ctx, *caller.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("lookup company failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.CompanyResponse{
		ID:   company.CompanyID,
		Name: company.Name,
	}
	if caller.Role == model.RoleExecutive {
		resp.JoinCode = company.JoinCode
	}
	return resp, nil
}

const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newJoinCode returns an 8-character code from an alphabet without the
// easily confused characters (0/O, 1/I).
func newJoinCode() string {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		buf[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(buf)
}
