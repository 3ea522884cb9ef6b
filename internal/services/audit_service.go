package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/NCHRD-2025/training-service/internal/events"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

type auditService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewAuditService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher) AuditService {
	return &auditService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// Record writes an audit entry after the primary operation. No actor means
// nothing is written. Failures are logged at warn level and swallowed so
// the operation that triggered the entry never fails because of it.
func (s *auditService) Record(ctx context.Context, actor *models.Principal, action models.LogAction, detail string, logContext map[string]any) {
	if actor == nil || actor.ID == 0 {
		return
	}

	entry := &models.SystemLog{
		UserID: &actor.ID,
		Action: action,
		Detail: detail,
	}

	if len(logContext) > 0 {
		data, err := json.Marshal(logContext)
		if err != nil {
			s.logger.Warn("failed to marshal audit context", "error", err, "detail", detail)
		} else {
			entry.Context = datatypes.JSON(data)
		}
	}

	if err := s.repo.SystemLog().Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit entry",
			"error", err,
			"user_id", actor.ID,
			"action", action,
			"detail", detail)
		return
	}

	if s.publisher != nil {
		event := events.Event{
			Type: auditEventType(action),
			Data: map[string]any{
				"log_id":   entry.ID,
				"user_id":  actor.ID,
				"username": actor.Username,
				"action":   string(action),
				"detail":   detail,
			},
		}
		if err := s.publisher.Publish(ctx, events.TopicAuditLog, event); err != nil {
			s.logger.Warn("failed to publish audit event", "error", err, "log_id", entry.ID)
		}
	}
}

func auditEventType(action models.LogAction) string {
	switch action {
	case models.ActionCreate:
		return events.EventEntityCreated
	case models.ActionUpdate:
		return events.EventEntityUpdated
	case models.ActionDelete:
		return events.EventEntityDeleted
	case models.ActionLogin:
		return events.EventUserLogin
	default:
		return string(action)
	}
}

func (s *auditService) ListLogs(ctx context.Context, actor *models.Principal, filters repositories.LogFilters) (*ListResponse[*models.SystemLog], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceLogs) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceLogs), "read")
	}

	entries, total, err := s.repo.SystemLog().List(ctx, filters)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.User != nil {
			entry.Username = entry.User.Username
		}
	}

	return &ListResponse[*models.SystemLog]{
		Items:  entries,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

// newPolicyError builds the permission error for a table denial, tolerating
// a nil actor.
func newPolicyError(actor *models.Principal, resourceID uint, resource, action string) *PermissionError {
	var userID uint
	if actor != nil {
		userID = actor.ID
	}
	return NewPermissionError(userID, resourceID, resource, action, "insufficient role permissions")
}
