package services

import (
	"context"
	"errors"
	"testing"

	"github.com/NCHRD-2025/training-service/internal/events"
	"github.com/NCHRD-2025/training-service/internal/models"
)

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	owner := &models.Principal{ID: 5, Username: "owner", Role: models.RoleSupervisor}

	seed := func() (*fakeNotificationRepo, NotificationService) {
		notifications := newFakeNotificationRepo()
		notifications.notifications[1] = &models.Notification{ID: 1, UserID: 5, Title: "hi", Message: "msg"}
		notifications.nextID = 2
		service := NewNotificationService(&stubRepository{notification: notifications}, testLogger(), nil)
		return notifications, service
	}

	t.Run("owner marks unread notification", func(t *testing.T) {
		_, service := seed()

		n, err := service.MarkRead(ctx, owner, 1)
		if err != nil {
			t.Fatalf("MarkRead failed: %v", err)
		}
		if !n.IsRead {
			t.Error("expected notification to be read")
		}
	})

	t.Run("marking twice succeeds without another write", func(t *testing.T) {
		notifications, service := seed()

		if _, err := service.MarkRead(ctx, owner, 1); err != nil {
			t.Fatalf("first MarkRead failed: %v", err)
		}
		writes := notifications.updateCalls

		n, err := service.MarkRead(ctx, owner, 1)
		if err != nil {
			t.Fatalf("second MarkRead failed: %v", err)
		}
		if !n.IsRead {
			t.Error("expected notification to stay read")
		}
		if notifications.updateCalls != writes {
			t.Errorf("expected no extra write, got %d updates", notifications.updateCalls)
		}
	})

	t.Run("non owner is denied", func(t *testing.T) {
		_, service := seed()
		stranger := &models.Principal{ID: 6, Username: "other", Role: models.RoleAdmin}

		_, err := service.MarkRead(ctx, stranger, 1)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("missing notification is not found", func(t *testing.T) {
		_, service := seed()

		_, err := service.MarkRead(ctx, owner, 999)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		_, service := seed()

		if _, err := service.MarkRead(ctx, nil, 1); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})
}

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unread notification and publishes", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		publisher := events.NewMockEventPublisher()
		service := NewNotificationService(&stubRepository{notification: notifications}, testLogger(), publisher)

		if err := service.Notify(ctx, 5, "New visit", "A visit was scheduled"); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}

		count, err := service.UnreadCount(ctx, &models.Principal{ID: 5, Role: models.RoleSupervisor})
		if err != nil {
			t.Fatalf("UnreadCount failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 unread, got %d", count)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Topic != events.TopicNotifications {
			t.Errorf("expected topic %s, got %s", events.TopicNotifications, published[0].Topic)
		}
	})

	t.Run("publish failure does not fail the notification", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		publisher := events.NewMockEventPublisher()
		publisher.SetError(errors.New("broker down"))
		service := NewNotificationService(&stubRepository{notification: notifications}, testLogger(), publisher)

		if err := service.Notify(ctx, 5, "Title", "Message"); err != nil {
			t.Fatalf("Notify should swallow publish failures, got %v", err)
		}
		if len(notifications.notifications) != 1 {
			t.Error("expected the notification to be persisted anyway")
		}
	})
}
