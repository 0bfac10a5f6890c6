package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/dto"
	"github.com/ChristianMThomas/Timenest/internal/model"
	"github.com/ChristianMThomas/Timenest/internal/repository"
)

var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrNotificationForbidden = errors.New("notification belongs to another user")
)

// NotificationService serves in-app violation notifications.
type NotificationService interface {
	// ListUnread returns the caller's unread notifications and marks them
	// delivered, so polling clients can distinguish first delivery.
	ListUnread(ctx context.Context, userID string) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService builds the NotificationService.
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) ListUnread(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.Notification.ListUnreadByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list unread notifications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(notifications))
	for i := range notifications {
		if !notifications[i].IsDelivered {
			ids = append(ids, notifications[i].NotificationID)
		}
	}
	if len(ids) > 0 {
		if err := s.repo.Notification.MarkDelivered(ctx, ids); err != nil {
			// delivery bookkeeping only; the client still gets the list
			s.logger.Error("mark notifications delivered failed", zap.Error(err))
		}
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, *toNotificationResponse(&notifications[i]))
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	n, err := s.repo.Notification.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("lookup notification failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if n.UserID != userID {
		return ErrNotificationForbidden
	}
	return s.repo.Notification.MarkRead(ctx, id)
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.Notification.CountUnreadByUser(ctx, userID)
}

func toNotificationResponse(n *model.ShiftViolationNotification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:                   n.NotificationID,
		ShiftID:              n.ShiftID,
		NotificationType:     n.NotificationType,
		Message:              n.Message,
		Latitude:             n.Latitude,
		Longitude:            n.Longitude,
		DistanceFromWorkarea: n.DistanceFromWorkarea,
		IsRead:               n.IsRead,
		CreatedAt:            n.CreatedAt,
	}
}
