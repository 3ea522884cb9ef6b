package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

func newTestUserService(users *fakeUserRepo) UserService {
	repo := &stubRepository{user: users, systemLog: &fakeSystemLogRepo{}}
	logger := testLogger()
	audit := NewAuditService(repo, logger, nil)
	return NewUserService(repo, logger, validator.New(), audit)
}

func seedUser(t *testing.T, id uint, username, password string, role models.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return &models.User{ID: id, Username: username, Role: role, PasswordHash: string(hash), IsActive: active}
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepo(
		seedUser(t, 1, "admin", "correct-horse", models.RoleAdmin, true),
		seedUser(t, 2, "ghost", "whatever", models.RoleManager, false),
	)
	service := newTestUserService(users)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Authenticate(ctx, "admin", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != 1 {
			t.Errorf("expected user 1, got %d", user.ID)
		}
	})

	// Unknown user, wrong password and disabled account must be
	// indistinguishable to the caller.
	t.Run("unknown username", func(t *testing.T) {
		if _, err := service.Authenticate(ctx, "nobody", "pw"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := service.Authenticate(ctx, "admin", "wrong"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		if _, err := service.Authenticate(ctx, "ghost", "whatever"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path rehashes the password", func(t *testing.T) {
		users := newFakeUserRepo(seedUser(t, 1, "admin", "old-password", models.RoleAdmin, true))
		service := newTestUserService(users)
		actor := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

		err := service.ChangePassword(ctx, actor, &validator.ChangePasswordRequest{
			OldPassword: "old-password",
			NewPassword: "brand-new-password",
		})
		if err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}

		if _, err := service.Authenticate(ctx, "admin", "brand-new-password"); err != nil {
			t.Errorf("new password should authenticate: %v", err)
		}
		if _, err := service.Authenticate(ctx, "admin", "old-password"); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("old password should no longer work, got %v", err)
		}
	})

	t.Run("wrong old password", func(t *testing.T) {
		users := newFakeUserRepo(seedUser(t, 1, "admin", "old-password", models.RoleAdmin, true))
		service := newTestUserService(users)
		actor := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

		err := service.ChangePassword(ctx, actor, &validator.ChangePasswordRequest{
			OldPassword: "not-it",
			NewPassword: "brand-new-password",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("short new password", func(t *testing.T) {
		users := newFakeUserRepo(seedUser(t, 1, "admin", "old-password", models.RoleAdmin, true))
		service := newTestUserService(users)
		actor := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

		err := service.ChangePassword(ctx, actor, &validator.ChangePasswordRequest{
			OldPassword: "old-password",
			NewPassword: "short",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUserService_Access(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepo(
		seedUser(t, 1, "admin", "pw-admin-1", models.RoleAdmin, true),
		seedUser(t, 4, "inst", "pw-inst-44", models.RoleInstitution, true),
	)
	service := newTestUserService(users)

	t.Run("institution may not list users", func(t *testing.T) {
		institution := &models.Principal{ID: 4, Username: "inst", Role: models.RoleInstitution}

		_, err := service.List(ctx, institution, repositories.UserFilters{})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("anyone reads their own account", func(t *testing.T) {
		institution := &models.Principal{ID: 4, Username: "inst", Role: models.RoleInstitution}

		user, err := service.GetByID(ctx, institution, 4)
		if err != nil {
			t.Fatalf("self read failed: %v", err)
		}
		if user.ID != 4 {
			t.Errorf("expected own row, got %d", user.ID)
		}
	})

	t.Run("reading someone else needs the table right", func(t *testing.T) {
		institution := &models.Principal{ID: 4, Username: "inst", Role: models.RoleInstitution}

		if _, err := service.GetByID(ctx, institution, 1); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("self deletion is rejected", func(t *testing.T) {
		admin := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

		if err := service.Delete(ctx, admin, 1); !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
