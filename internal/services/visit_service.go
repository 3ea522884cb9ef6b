package services

import (
	"context"
	"log/slog"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type visitService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	audit     AuditService
}

func NewVisitService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, audit AuditService) VisitService {
	return &visitService{
		repo:      repo,
		logger:    logger,
		validator: v,
		audit:     audit,
	}
}

// ownsVisit reports whether the actor may touch this specific visit.
// Supervisors are limited to their own visits; admin and manager see all.
func ownsVisit(actor *models.Principal, visit *models.Visit) bool {
	if actor.Role == models.RoleSupervisor {
		return visit.SupervisorID == actor.ID
	}
	return true
}

func (s *visitService) Create(ctx context.Context, actor *models.Principal, req *validator.VisitCreateRequest) (*models.Visit, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceVisits) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceVisits), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
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

	visit := &models.Visit{
		CompanyID:    req.CompanyID,
		StudentID:    req.StudentID,
		SupervisorID: actor.ID,
		VisitDate:    req.VisitDate,
		Notes:        req.Notes,
	}

	if err := s.repo.Visit().Create(ctx, visit); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "visit", visit.ID),
		map[string]any{"visit_id": visit.ID, "student_id": visit.StudentID})

	return visit, nil
}

func (s *visitService) GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.Visit, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceVisits) {
		return nil, newPolicyError(actor, id, string(policy.ResourceVisits), "read")
	}

	visit, err := s.repo.Visit().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !ownsVisit(actor, visit) {
		return nil, NewPermissionError(actor.ID, id, "visit", "read", "not owned by supervisor")
	}

	return visit, nil
}

func (s *visitService) Update(ctx context.Context, actor *models.Principal, id uint, req *validator.VisitUpdateRequest) (*models.Visit, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceVisits) {
		return nil, newPolicyError(actor, id, string(policy.ResourceVisits), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	visit, err := s.repo.Visit().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !ownsVisit(actor, visit) {
		return nil, NewPermissionError(actor.ID, id, "visit", "update", "not owned by supervisor")
	}

	if req.VisitDate != nil {
		visit.VisitDate = *req.VisitDate
	}
	if req.Status != nil {
		visit.Status = *req.Status
	}
	if req.Notes != nil {
		visit.Notes = req.Notes
	}

	if err := s.repo.Visit().Update(ctx, visit); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "visit", id),
		map[string]any{"visit_id": id})

	return visit, nil
}

func (s *visitService) Delete(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceVisits) {
		return newPolicyError(actor, id, string(policy.ResourceVisits), "delete")
	}

	visit, err := s.repo.Visit().GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	if !ownsVisit(actor, visit) {
		return NewPermissionError(actor.ID, id, "visit", "delete", "not owned by supervisor")
	}

	if err := s.repo.Visit().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "visit", id),
		map[string]any{"visit_id": id})

	return nil
}

func (s *visitService) List(ctx context.Context, actor *models.Principal, filters repositories.VisitFilters) (*ListResponse[*models.Visit], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceVisits) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceVisits), "read")
	}

	// Supervisors only ever see their own visits, regardless of the filter.
	if actor.Role == models.RoleSupervisor {
		filters.SupervisorID = &actor.ID
	}

	visits, total, err := s.repo.Visit().List(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.Visit]{
		Items:  visits,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}
