package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/NCHRD-2025/training-service/internal/events"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type evaluationService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	audit        AuditService
	notification NotificationService
	publisher    events.EventPublisher
}

func NewEvaluationService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	audit AuditService,
	notification NotificationService,
	publisher events.EventPublisher,
) EvaluationService {
	return &evaluationService{
		repo:         repo,
		logger:       logger,
		validator:    v,
		audit:        audit,
		notification: notification,
		publisher:    publisher,
	}
}

// ===== EVALUATION REQUESTS =====

func (s *evaluationService) CreateRequest(ctx context.Context, actor *models.Principal, req *validator.EvaluationRequestCreateRequest) (*models.EvaluationRequest, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceEvaluationRequests) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceEvaluationRequests), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	// issued_by comes from the caller, never the request body.
	request := &models.EvaluationRequest{
		Title:       req.Title,
		Description: req.Description,
		IssuedByID:  &actor.ID,
		IssueDate:   req.IssueDate,
		DueDate:     req.DueDate,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.EvaluationRequest().Create(ctx, request); err != nil {
			return err
		}
		if len(req.CompanyIDs) > 0 || len(req.StudentIDs) > 0 {
			return tx.EvaluationRequest().ReplaceTargets(ctx, request.ID, req.CompanyIDs, req.StudentIDs)
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "evaluation request", request.ID),
		map[string]any{"evaluation_request_id": request.ID, "title": request.Title})

	return request, nil
}

func (s *evaluationService) GetRequest(ctx context.Context, actor *models.Principal, id uint) (*models.EvaluationRequest, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceEvaluationRequests) {
		return nil, newPolicyError(actor, id, string(policy.ResourceEvaluationRequests), "read")
	}

	request, err := s.repo.EvaluationRequest().GetByIDWithTargets(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return request, nil
}

func (s *evaluationService) UpdateRequest(ctx context.Context, actor *models.Principal, id uint, req *validator.EvaluationRequestUpdateRequest) (*models.EvaluationRequest, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceEvaluationRequests) {
		return nil, newPolicyError(actor, id, string(policy.ResourceEvaluationRequests), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	request, err := s.repo.EvaluationRequest().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Title != nil {
		request.Title = *req.Title
	}
	if req.Description != nil {
		request.Description = req.Description
	}
	if req.IssueDate != nil {
		request.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		request.DueDate = req.DueDate
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.EvaluationRequest().Update(ctx, request); err != nil {
			return err
		}
		if req.CompanyIDs != nil || req.StudentIDs != nil {
			return tx.EvaluationRequest().ReplaceTargets(ctx, id, req.CompanyIDs, req.StudentIDs)
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "evaluation request", id),
		map[string]any{"evaluation_request_id": id})

	return request, nil
}

func (s *evaluationService) DeleteRequest(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceEvaluationRequests) {
		return newPolicyError(actor, id, string(policy.ResourceEvaluationRequests), "delete")
	}

	if err := s.repo.EvaluationRequest().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "evaluation request", id),
		map[string]any{"evaluation_request_id": id})

	return nil
}

func (s *evaluationService) ListRequests(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.EvaluationRequest], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceEvaluationRequests) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceEvaluationRequests), "read")
	}

	requests, total, err := s.repo.EvaluationRequest().List(ctx, limit, offset)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.EvaluationRequest]{
		Items:  requests,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// ===== ASSIGNED EVALUATIONS =====

func (s *evaluationService) CreateAssignment(ctx context.Context, actor *models.Principal, req *validator.AssignmentCreateRequest) (*models.AssignedEvaluation, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceAssignments) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceAssignments), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	if _, err := s.repo.EvaluationRequest().GetByID(ctx, req.EvaluationRequestID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("evaluation_request_id", "evaluation request does not exist", req.EvaluationRequestID)
		}
		return nil, err
	}

	supervisor, err := s.repo.User().GetByID(ctx, req.SupervisorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("supervisor_id", "supervisor does not exist", req.SupervisorID)
		}
		return nil, err
	}
	if supervisor.Role != models.RoleSupervisor {
		return nil, NewValidationError("supervisor_id", "user is not a supervisor", req.SupervisorID)
	}

	student, err := s.repo.Student().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("student_id", "student does not exist", req.StudentID)
		}
		return nil, err
	}
	if student.CompanyID != req.CompanyID {
		return nil, NewValidationError("company_id", "student does not belong to this company", req.CompanyID)
	}

	assignment := &models.AssignedEvaluation{
		EvaluationRequestID: req.EvaluationRequestID,
		SupervisorID:        &req.SupervisorID,
		CompanyID:           &req.CompanyID,
		StudentID:           &req.StudentID,
		Status:              models.AssignmentPending,
		Notes:               req.Notes,
	}

	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "assigned evaluation", assignment.ID),
		map[string]any{"assignment_id": assignment.ID, "supervisor_id": req.SupervisorID})

	if err := s.notification.Notify(ctx, req.SupervisorID,
		"New evaluation assigned",
		"You have been assigned an evaluation for student "+student.Name); err != nil {
		s.logger.Warn("failed to notify supervisor of assignment", "error", err, "assignment_id", assignment.ID)
	}

	if s.publisher != nil {
		event := events.Event{
			Type: events.EventEvaluationAssigned,
			Data: map[string]any{
				"assignment_id": assignment.ID,
				"supervisor_id": req.SupervisorID,
				"student_id":    req.StudentID,
			},
		}
		if err := s.publisher.Publish(ctx, events.TopicEvaluations, event); err != nil {
			s.logger.Warn("failed to publish assignment event", "error", err, "assignment_id", assignment.ID)
		}
	}

	return assignment, nil
}

func (s *evaluationService) GetAssignment(ctx context.Context, actor *models.Principal, id uint) (*models.AssignedEvaluation, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceAssignments) {
		return nil, newPolicyError(actor, id, string(policy.ResourceAssignments), "read")
	}

	assignment, err := s.repo.Assignment().GetByIDWithEvaluation(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return assignment, nil
}

// UpdateAssignmentStatus moves an assignment one step through the workflow.
// Each forward transition stamps its timestamp only the first time it
// occurs, so a replayed transition cannot rewrite history.
func (s *evaluationService) UpdateAssignmentStatus(ctx context.Context, actor *models.Principal, id uint, req *validator.AssignmentStatusRequest) (*models.AssignedEvaluation, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceAssignments) {
		return nil, newPolicyError(actor, id, string(policy.ResourceAssignments), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if errs := s.validator.ValidateAssignmentTransition(assignment.Status, req.Status); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	now := time.Now().UTC()
	switch req.Status {
	case models.AssignmentPrinted:
		if assignment.PrintedAt == nil {
			assignment.PrintedAt = &now
		}
	case models.AssignmentInProgress:
		if assignment.StartedAt == nil {
			assignment.StartedAt = &now
		}
	case models.AssignmentSubmitted:
		if assignment.SubmittedAt == nil {
			assignment.SubmittedAt = &now
		}
	}

	assignment.Status = req.Status
	if req.Notes != nil {
		assignment.Notes = req.Notes
	}

	if err := s.repo.Assignment().Update(ctx, assignment); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "assigned evaluation", id),
		map[string]any{"assignment_id": id, "status": string(req.Status)})

	return assignment, nil
}

func (s *evaluationService) DeleteAssignment(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceAssignments) {
		return newPolicyError(actor, id, string(policy.ResourceAssignments), "delete")
	}

	if err := s.repo.Assignment().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "assigned evaluation", id),
		map[string]any{"assignment_id": id})

	return nil
}

func (s *evaluationService) ListAssignments(ctx context.Context, actor *models.Principal, filters repositories.AssignmentFilters) (*ListResponse[*models.AssignedEvaluation], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceAssignments) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceAssignments), "read")
	}

	assignments, total, err := s.repo.Assignment().List(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.AssignedEvaluation]{
		Items:  assignments,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

// ===== FINAL EVALUATIONS =====

// ownsEvaluation limits supervisors to evaluations they created.
func ownsEvaluation(actor *models.Principal, supervisorID uint) bool {
	if actor.Role == models.RoleSupervisor {
		return supervisorID == actor.ID
	}
	return true
}

func (s *evaluationService) Submit(ctx context.Context, actor *models.Principal, req *validator.EvaluationSubmitRequest) (*models.Evaluation, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceEvaluations) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceEvaluations), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}
	if errs := s.validator.ValidateEvaluationSubmit(req.Result, req.RepeatDate); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	assignment, err := s.repo.Assignment().GetByIDWithEvaluation(ctx, req.AssignedEvaluationID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if actor.Role == models.RoleSupervisor {
		if assignment.SupervisorID == nil || *assignment.SupervisorID != actor.ID {
			return nil, NewPermissionError(actor.ID, assignment.ID, "assigned_evaluation", "submit", "not assigned to supervisor")
		}
	}

	if assignment.Evaluation != nil {
		return nil, ErrConflict
	}
	if assignment.StudentID == nil || assignment.CompanyID == nil {
		return nil, NewValidationError("assigned_evaluation_id", "assignment target no longer exists", req.AssignedEvaluationID)
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	// supervisor is stamped from the caller, never the request body.
	evaluation := &models.Evaluation{
		AssignedEvaluationID: assignment.ID,
		StudentID:            *assignment.StudentID,
		CompanyID:            *assignment.CompanyID,
		SupervisorID:         actor.ID,

		AppearanceScore:  req.AppearanceScore,
		BehaviorScore:    req.BehaviorScore,
		AttendanceScore:  req.AttendanceScore,
		SkillScore:       req.SkillScore,
		DisciplineScore:  req.DisciplineScore,
		CooperationScore: req.CooperationScore,

		Result:     req.Result,
		Notes:      req.Notes,
		Date:       date,
		RepeatDate: req.RepeatDate,
		Status:     models.EvaluationSubmitted,
	}

	if err := s.repo.Evaluation().Create(ctx, evaluation); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("submitted", "evaluation", evaluation.ID),
		map[string]any{"evaluation_id": evaluation.ID, "assignment_id": assignment.ID, "result": string(req.Result)})

	if s.publisher != nil {
		event := events.Event{
			Type: events.EventEvaluationSubmitted,
			Data: map[string]any{
				"evaluation_id": evaluation.ID,
				"assignment_id": assignment.ID,
				"student_id":    evaluation.StudentID,
				"result":        string(req.Result),
			},
		}
		if err := s.publisher.Publish(ctx, events.TopicEvaluations, event); err != nil {
			s.logger.Warn("failed to publish evaluation event", "error", err, "evaluation_id", evaluation.ID)
		}
	}

	return evaluation, nil
}

func (s *evaluationService) GetEvaluation(ctx context.Context, actor *models.Principal, id uint) (*models.Evaluation, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceEvaluations) {
		return nil, newPolicyError(actor, id, string(policy.ResourceEvaluations), "read")
	}

	evaluation, err := s.repo.Evaluation().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !ownsEvaluation(actor, evaluation.SupervisorID) {
		return nil, NewPermissionError(actor.ID, id, "evaluation", "read", "not owned by supervisor")
	}

	return evaluation, nil
}

func (s *evaluationService) UpdateEvaluation(ctx context.Context, actor *models.Principal, id uint, req *validator.EvaluationUpdateRequest) (*models.Evaluation, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceEvaluations) {
		return nil, newPolicyError(actor, id, string(policy.ResourceEvaluations), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	evaluation, err := s.repo.Evaluation().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !ownsEvaluation(actor, evaluation.SupervisorID) {
		return nil, NewPermissionError(actor.ID, id, "evaluation", "update", "not owned by supervisor")
	}

	if req.AppearanceScore != nil {
		evaluation.AppearanceScore = *req.AppearanceScore
	}
	if req.BehaviorScore != nil {
		evaluation.BehaviorScore = *req.BehaviorScore
	}
	if req.AttendanceScore != nil {
		evaluation.AttendanceScore = *req.AttendanceScore
	}
	if req.SkillScore != nil {
		evaluation.SkillScore = *req.SkillScore
	}
	if req.DisciplineScore != nil {
		evaluation.DisciplineScore = *req.DisciplineScore
	}
	if req.CooperationScore != nil {
		evaluation.CooperationScore = *req.CooperationScore
	}
	if req.Result != nil {
		evaluation.Result = *req.Result
	}
	if req.Notes != nil {
		evaluation.Notes = req.Notes
	}
	if req.RepeatDate != nil {
		evaluation.RepeatDate = req.RepeatDate
	}
	if req.Status != nil {
		evaluation.Status = *req.Status
	}

	// The invariant holds over the merged state, not just the patch.
	if errs := s.validator.ValidateEvaluationSubmit(evaluation.Result, evaluation.RepeatDate); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	if err := s.repo.Evaluation().Update(ctx, evaluation); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "evaluation", id),
		map[string]any{"evaluation_id": id})

	return evaluation, nil
}

func (s *evaluationService) DeleteEvaluation(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceEvaluations) {
		return newPolicyError(actor, id, string(policy.ResourceEvaluations), "delete")
	}

	if err := s.repo.Evaluation().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "evaluation", id),
		map[string]any{"evaluation_id": id})

	return nil
}

func (s *evaluationService) ListEvaluations(ctx context.Context, actor *models.Principal, filters repositories.EvaluationFilters) (*ListResponse[*models.Evaluation], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceEvaluations) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceEvaluations), "read")
	}

	// Supervisors only ever see their own evaluations.
	if actor.Role == models.RoleSupervisor {
		filters.SupervisorID = &actor.ID
	}

	evaluations, total, err := s.repo.Evaluation().List(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.Evaluation]{
		Items:  evaluations,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}
