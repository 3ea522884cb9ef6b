package services

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	audit     AuditService
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, audit AuditService) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: v,
		audit:     audit,
	}
}

func (s *userService) Create(ctx context.Context, actor *models.Principal, req *validator.UserCreateRequest) (*models.User, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceUsers) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceUsers), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "user", user.ID),
		map[string]any{"user_id": user.ID, "role": string(user.Role)})

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.User, error) {
	// Users may always read their own account; everything else goes
	// through the policy table.
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if actor.ID != id && !policy.Check(actor, policy.ActionRead, policy.ResourceUsers) {
		return nil, newPolicyError(actor, id, string(policy.ResourceUsers), "read")
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *models.Principal, id uint, req *validator.UserUpdateRequest) (*models.User, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceUsers) {
		return nil, newPolicyError(actor, id, string(policy.ResourceUsers), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "user", id),
		map[string]any{"user_id": id})

	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceUsers) {
		return newPolicyError(actor, id, string(policy.ResourceUsers), "delete")
	}

	if actor.ID == id {
		return NewValidationError("id", "cannot delete your own account", id)
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "user", id),
		map[string]any{"user_id": id})

	return nil
}

func (s *userService) List(ctx context.Context, actor *models.Principal, filters repositories.UserFilters) (*ListResponse[*models.User], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceUsers) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceUsers), "read")
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.User]{
		Items:  users,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

// Authenticate verifies credentials. Wrong username and wrong password
// produce the same error so callers cannot probe for accounts.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthenticated
	}

	s.audit.Record(ctx, &models.Principal{ID: user.ID, Username: user.Username, Role: user.Role},
		models.ActionLogin, "user logged in", map[string]any{"user_id": user.ID})

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor *models.Principal, req *validator.ChangePasswordRequest) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return NewValidationErrors(errs)
	}

	user, err := s.repo.User().GetByID(ctx, actor.ID)
	if err != nil {
		return mapRepoError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return NewValidationError("old_password", "old password is incorrect", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.User().UpdatePassword(ctx, actor.ID, string(hash)); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, "changed own password",
		map[string]any{"user_id": actor.ID})

	return nil
}
