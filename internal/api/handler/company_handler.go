package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/service"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

// CompanyHandler serves company creation and membership.
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler builds the CompanyHandler.
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// Create creates a company owned by the caller.
// POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyInCompany):
			response.Conflict(c, 12001, "you already belong to a company")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11005, "user not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Join attaches the caller to a company by join code.
// POST /api/v1/companies/join
func (h *CompanyHandler) Join(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.JoinCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.Join(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidJoinCode):
			response.NotFound(c, 12002, "invalid join code")
		case errors.Is(err, service.ErrAlreadyInCompany):
			response.Conflict(c, 12001, "you already belong to a company")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11005, "user not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// GetMine returns the caller's company.
// GET /api/v1/companies/mine
func (h *CompanyHandler) GetMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.companySvc.GetMine(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCompany):
			response.NotFound(c, 12003, "you do not belong to a company")
		case errors.Is(err, service.ErrCompanyNotFound):
			response.NotFound(c, 12004, "company not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
