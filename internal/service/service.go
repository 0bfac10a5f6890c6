package service

import (
	"go.uber.org/zap"

	"github.com/ChristianMThomas/Timenest/config"
	"github.com/ChristianMThomas/Timenest/internal/repository"
	"github.com/ChristianMThomas/Timenest/pkg/jwt"
	"github.com/ChristianMThomas/Timenest/pkg/mailer"
	"github.com/ChristianMThomas/Timenest/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth         AuthService
	Company      CompanyService
	WorkArea     WorkAreaService
	Shift        ShiftService
	Monitor      MonitorService
	Notification NotificationService
	Export       ExportService
}

// NewService builds the Service aggregate and wires cross-service
// dependencies: the heartbeat path evaluates violations through the monitor.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	monitor := NewMonitorService(&cfg.Monitor, repo, mail, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Company:      NewCompanyService(repo, logger),
		WorkArea:     NewWorkAreaService(repo, logger),
		Shift:        NewShiftService(&cfg.Monitor, repo, monitor, logger),
		Monitor:      monitor,
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
