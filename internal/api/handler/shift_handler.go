package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/service"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

// ShiftHandler serves the shift lifecycle and the manual sweep trigger.
type ShiftHandler struct {
	shiftSvc   service.ShiftService
	monitorSvc service.MonitorService
}

// NewShiftHandler builds the ShiftHandler.
func NewShiftHandler(shiftSvc service.ShiftService, monitorSvc service.MonitorService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc, monitorSvc: monitorSvc}
}

// Start clocks the caller in.
// POST /api/v1/shifts/start
func (h *ShiftHandler) Start(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	var req dto.StartShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.shiftSvc.StartShift(c.Request.Context(), userID, companyID, &req)
	if err != nil {
		var gv *service.GeofenceViolationError
		switch {
		case errors.Is(err, service.ErrAlreadyActive):
			response.Conflict(c, 14001, "you already have an active shift")
		case errors.As(err, &gv):
			response.Conflict(c, 14002,
				fmt.Sprintf("you are %.0f meters from %s; move within %.0f meters to clock in",
					gv.Distance, gv.AreaName, gv.Radius))
		case errors.Is(err, service.ErrWorkAreaNotFound):
			response.NotFound(c, 13001, "work area not found")
		case errors.Is(err, service.ErrWorkAreaInactive):
			response.Conflict(c, 13002, "work area is not active")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// End clocks the caller out.
// POST /api/v1/shifts/end
func (h *ShiftHandler) End(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.EndShift(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveShift) {
			response.NotFound(c, 14003, "no active shift")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Heartbeat records a location report for the active shift.
// POST /api/v1/shifts/heartbeat
func (h *ShiftHandler) Heartbeat(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.shiftSvc.Heartbeat(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveShift) {
			response.NotFound(c, 14003, "no active shift")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Active returns the caller's active shift.
// GET /api/v1/shifts/active
func (h *ShiftHandler) Active(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.GetActiveShift(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveShift) {
			response.NotFound(c, 14003, "no active shift")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListMine returns the caller's shift history.
// GET /api/v1/shifts
func (h *ShiftHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListCompany returns every shift of the caller's company.
// GET /api/v1/shifts/company
func (h *ShiftHandler) ListCompany(c *gin.Context) {
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.ListCompany(c.Request.Context(), companyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// TriggerCheck runs a compliance sweep on demand.
// POST /api/v1/shifts/check
func (h *ShiftHandler) TriggerCheck(c *gin.Context) {
	result, err := h.monitorSvc.CheckActiveShifts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
