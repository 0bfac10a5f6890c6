package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/service"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

// WorkAreaHandler serves geofence management for executives.
type WorkAreaHandler struct {
	workAreaSvc service.WorkAreaService
}

// NewWorkAreaHandler builds the WorkAreaHandler.
func NewWorkAreaHandler(workAreaSvc service.WorkAreaService) *WorkAreaHandler {
	return &WorkAreaHandler{workAreaSvc: workAreaSvc}
}

// Create registers a geofence.
// POST /api/v1/work-areas
func (h *WorkAreaHandler) Create(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.workAreaSvc.Create(c.Request.Context(), &req, companyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get returns one work area.
// GET /api/v1/work-areas/:id
func (h *WorkAreaHandler) Get(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	result, err := h.workAreaSvc.GetByID(c.Request.Context(), c.Param("id"), companyID)
	if err != nil {
		if errors.Is(err, service.ErrWorkAreaNotFound) {
			response.NotFound(c, 13001, "work area not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns the company's work areas.
// GET /api/v1/work-areas
func (h *WorkAreaHandler) List(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	var req dto.WorkAreaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	result, err := h.workAreaSvc.List(c.Request.Context(), &req, companyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Update edits a work area.
// PATCH /api/v1/work-areas/:id
func (h *WorkAreaHandler) Update(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.workAreaSvc.Update(c.Request.Context(), c.Param("id"), &req, companyID)
	if err != nil {
		if errors.Is(err, service.ErrWorkAreaNotFound) {
			response.NotFound(c, 13001, "work area not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Delete removes a work area; shift history keeps its rows.
// DELETE /api/v1/work-areas/:id
func (h *WorkAreaHandler) Delete(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	if err := h.workAreaSvc.Delete(c.Request.Context(), c.Param("id"), companyID); err != nil {
		if errors.Is(err, service.ErrWorkAreaNotFound) {
			response.NotFound(c, 13001, "work area not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Validate checks a coordinate against a geofence without clocking in.
// POST /api/v1/work-areas/:id/validate
func (h *WorkAreaHandler) Validate(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	var req struct {
		Latitude  *float64 `json:"latitude"  binding:"required,min=-90,max=90"`
		Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	area, err := h.workAreaSvc.ValidateGeofence(c.Request.Context(), c.Param("id"), companyID, *req.Latitude, *req.Longitude)
	if err != nil {
		var gv *service.GeofenceViolationError
		switch {
		case errors.As(err, &gv):
			response.OK(c, gin.H{
				"inside":   false,
				"distance": gv.Distance,
				"radius":   gv.Radius,
				"message":  fmt.Sprintf("%.0f meters from %s", gv.Distance, gv.AreaName),
			})
		case errors.Is(err, service.ErrWorkAreaNotFound):
			response.NotFound(c, 13001, "work area not found")
		case errors.Is(err, service.ErrWorkAreaInactive):
			response.Conflict(c, 13002, "work area is not active")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{
		"inside": true,
		"radius": area.RadiusMeters,
	})
}
