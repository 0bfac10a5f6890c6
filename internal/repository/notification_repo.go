package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ChristianMThomas/Timenest/internal/model"
)

// NotificationRepository is the violation notification data-access interface.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.ShiftViolationNotification) error
	GetByID(ctx context.Context, id string) (*model.ShiftViolationNotification, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]model.ShiftViolationNotification, error)
	CountUnreadByUser(ctx context.Context, userID string) (int64, error)
	MarkDelivered(ctx context.Context, ids []string) error
	MarkRead(ctx context.Context, id string) error
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo builds the GORM-backed NotificationRepository.
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.ShiftViolationNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*model.ShiftViolationNotification, error) {
	var n model.ShiftViolationNotification
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", id).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) ListUnreadByUser(ctx context.Context, userID string) ([]model.ShiftViolationNotification, error) {
	var list []model.ShiftViolationNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *notificationRepo) CountUnreadByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftViolationNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkDelivered(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.ShiftViolationNotification{}).
		Where("notification_id IN ?", ids).
		Update("is_delivered", true).Error
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShiftViolationNotification{}).
		Where("notification_id = ?", id).
		Update("is_read", true).Error
}
