package services

import (
	"context"
	"log/slog"

	"github.com/NCHRD-2025/training-service/internal/events"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

type notificationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// Notify creates an unread notification for the user. Callers treat this
// as a side effect: they log a returned error but do not fail on it.
func (s *notificationService) Notify(ctx context.Context, userID uint, title, message string) error {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}

	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return err
	}

	if s.publisher != nil {
		event := events.Event{
			Type: events.EventNotificationCreated,
			Data: map[string]any{
				"notification_id": notification.ID,
				"user_id":         userID,
				"title":           title,
			},
		}
		if err := s.publisher.Publish(ctx, events.TopicNotifications, event); err != nil {
			s.logger.Warn("failed to publish notification event",
				"error", err,
				"notification_id", notification.ID)
		}
	}

	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.Notification], error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	notifications, total, err := s.repo.Notification().ListByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ListResponse[*models.Notification]{
		Items:  notifications,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, actor *models.Principal) (int64, error) {
	if actor == nil {
		return 0, ErrUnauthenticated
	}
	return s.repo.Notification().UnreadCount(ctx, actor.ID)
}

// MarkRead is idempotent: marking an already-read notification succeeds
// without another write. Only the owner may mark their notification.
func (s *notificationService) MarkRead(ctx context.Context, actor *models.Principal, id uint) (*models.Notification, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	notification, err := s.repo.Notification().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if notification.UserID != actor.ID {
		return nil, NewPermissionError(actor.ID, id, "notification", "mark_read", "not the owner")
	}

	if notification.IsRead {
		return notification, nil
	}

	notification.IsRead = true
	if err := s.repo.Notification().Update(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}
