package handler

import "github.com/ChristianMThomas/Timenest/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth         *AuthHandler
	Company      *CompanyHandler
	WorkArea     *WorkAreaHandler
	Shift        *ShiftHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler builds the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Company:      NewCompanyHandler(svc.Company),
		WorkArea:     NewWorkAreaHandler(svc.WorkArea),
		Shift:        NewShiftHandler(svc.Shift, svc.Monitor),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
