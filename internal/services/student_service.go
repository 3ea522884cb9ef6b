package services

import (
	"context"
	"log/slog"

	"github.com/NCHRD-2025/training-service/internal/cache"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	audit     AuditService
	cache     *cache.CacheManager
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, audit AuditService, cm *cache.CacheManager) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: v,
		audit:     audit,
		cache:     cm,
	}
}

func (s *studentService) Create(ctx context.Context, actor *models.Principal, req *validator.StudentCreateRequest) (*models.Student, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceStudents) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceStudents), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	// The company must exist before we hang a student off it.
	if _, err := s.repo.Company().GetByID(ctx, req.CompanyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("company_id", "company does not exist", req.CompanyID)
		}
		return nil, err
	}

	exists, err := s.repo.Student().ExistsByNationalID(ctx, req.NationalID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if exists {
		return nil, ErrConflict
	}

	student := &models.Student{
		Name:       req.Name,
		NationalID: req.NationalID,
		CompanyID:  req.CompanyID,
		Phone:      req.Phone,
		PhotoURL:   req.PhotoURL,
	}
	if req.Status != nil {
		student.Status = *req.Status
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "student", student.ID),
		map[string]any{"student_id": student.ID, "company_id": student.CompanyID})

	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.Student, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceStudents) {
		return nil, newPolicyError(actor, id, string(policy.ResourceStudents), "read")
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return student, nil
}

func (s *studentService) Update(ctx context.Context, actor *models.Principal, id uint, req *validator.StudentUpdateRequest) (*models.Student, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceStudents) {
		return nil, newPolicyError(actor, id, string(policy.ResourceStudents), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.NationalID != nil && *req.NationalID != student.NationalID {
		exists, err := s.repo.Student().ExistsByNationalID(ctx, *req.NationalID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		if exists {
			return nil, ErrConflict
		}
		student.NationalID = *req.NationalID
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.CompanyID != nil {
		if _, err := s.repo.Company().GetByID(ctx, *req.CompanyID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewValidationError("company_id", "company does not exist", *req.CompanyID)
			}
			return nil, err
		}
		student.CompanyID = *req.CompanyID
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.PhotoURL != nil {
		student.PhotoURL = req.PhotoURL
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, mapRepoError(err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStudent(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate student cache", "error", err, "student_id", id)
		}
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "student", id),
		map[string]any{"student_id": id})

	return student, nil
}

func (s *studentService) Delete(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceStudents) {
		return newPolicyError(actor, id, string(policy.ResourceStudents), "delete")
	}

	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStudent(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate student cache", "error", err, "student_id", id)
		}
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "student", id),
		map[string]any{"student_id": id})

	return nil
}

func (s *studentService) List(ctx context.Context, actor *models.Principal, filters repositories.StudentFilters) (*ListResponse[*models.Student], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceStudents) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceStudents), "read")
	}

	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.Student]{
		Items:  students,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}
