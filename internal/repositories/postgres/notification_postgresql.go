package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

// ===== NOTIFICATIONS =====

type notificationPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &notificationPostgreSQL{db: db}
}

func (r *notificationPostgreSQL) Create(ctx context.Context, notification *models.Notification) error {
	return translateError(r.db.WithContext(ctx).Create(notification).Error)
}

func (r *notificationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &notification, nil
}

func (r *notificationPostgreSQL) Update(ctx context.Context, notification *models.Notification) error {
	return translateError(r.db.WithContext(ctx).Save(notification).Error)
}

func (r *notificationPostgreSQL) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "created_at", "desc", limit, offset)
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return notifications, total, nil
}

func (r *notificationPostgreSQL) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, translateError(err)
}

// ===== SYSTEM LOGS =====

type systemLogPostgreSQL struct {
	db *gorm.DB
}

func NewSystemLogPostgreSQL(db *gorm.DB) repositories.SystemLogRepository {
	return &systemLogPostgreSQL{db: db}
}

func (r *systemLogPostgreSQL) Create(ctx context.Context, entry *models.SystemLog) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *systemLogPostgreSQL) List(ctx context.Context, filters repositories.LogFilters) ([]*models.SystemLog, int64, error) {
	var entries []*models.SystemLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SystemLog{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Action != nil {
		query = query.Where("action = ?", *filters.Action)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)
	if err := query.Preload("User").Find(&entries).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return entries, total, nil
}
