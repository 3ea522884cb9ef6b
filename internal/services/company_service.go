package services

import (
	"context"
	"log/slog"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type companyService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	audit     AuditService
}

func NewCompanyService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, audit AuditService) CompanyService {
	return &companyService{
		repo:      repo,
		logger:    logger,
		validator: v,
		audit:     audit,
	}
}

func (s *companyService) Create(ctx context.Context, actor *models.Principal, req *validator.CompanyCreateRequest) (*models.Company, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceCompanies) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceCompanies), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	company := &models.Company{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := s.repo.Company().Create(ctx, company); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "company", company.ID),
		map[string]any{"company_id": company.ID, "name": company.Name})

	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.Company, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceCompanies) {
		return nil, newPolicyError(actor, id, string(policy.ResourceCompanies), "read")
	}

	company, err := s.repo.Company().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	count, err := s.repo.Company().StudentCount(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	company.StudentCount = int(count)

	return company, nil
}

func (s *companyService) Update(ctx context.Context, actor *models.Principal, id uint, req *validator.CompanyUpdateRequest) (*models.Company, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceCompanies) {
		return nil, newPolicyError(actor, id, string(policy.ResourceCompanies), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	company, err := s.repo.Company().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = req.Address
	}
	if req.Phone != nil {
		company.Phone = req.Phone
	}

	if err := s.repo.Company().Update(ctx, company); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "company", id),
		map[string]any{"company_id": id})

	return company, nil
}

func (s *companyService) Delete(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceCompanies) {
		return newPolicyError(actor, id, string(policy.ResourceCompanies), "delete")
	}

	if err := s.repo.Company().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "company", id),
		map[string]any{"company_id": id})

	return nil
}

func (s *companyService) List(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.Company], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceCompanies) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceCompanies), "read")
	}

	companies, total, err := s.repo.Company().List(ctx, limit, offset)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.Company]{
		Items:  companies,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
