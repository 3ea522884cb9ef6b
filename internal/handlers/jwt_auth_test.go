package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/models"
)

func testAuthMiddleware() *JWTAuthMiddleware {
	return NewJWTAuthMiddleware("test-secret", time.Hour)
}

func testUser(id uint, role models.UserRole) *models.User {
	return &models.User{
		ID:       id,
		Username: "tester",
		Role:     role,
		IsActive: true,
	}
}

func performRequest(m *JWTAuthMiddleware, token string, extra ...gin.HandlerFunc) (*httptest.ResponseRecorder, *models.Principal) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var captured *models.Principal
	chain := append([]gin.HandlerFunc{m.AuthMiddleware()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		captured = GetPrincipal(c)
		c.Status(http.StatusOK)
	})
	router.GET("/protected", chain...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, captured
}

func TestAuthMiddleware_TokenRoundTrip(t *testing.T) {
	m := testAuthMiddleware()

	token, expiresAt, err := m.IssueToken(testUser(7, models.RoleSupervisor))
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry %v is not in the future", expiresAt)
	}

	w, principal := performRequest(m, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if principal == nil {
		t.Fatal("principal not set in context")
	}
	if principal.ID != 7 || principal.Role != models.RoleSupervisor || principal.Username != "tester" {
		t.Errorf("principal = %+v, want id=7 role=supervisor username=tester", principal)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	m := testAuthMiddleware()

	t.Run("missing header", func(t *testing.T) {
		w, _ := performRequest(m, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		w, _ := performRequest(m, "not.a.token")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTAuthMiddleware("other-secret", time.Hour)
		token, _, err := other.IssueToken(testUser(1, models.RoleAdmin))
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}
		w, _ := performRequest(m, token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTAuthMiddleware("test-secret", -time.Minute)
		token, _, err := expired.IssueToken(testUser(1, models.RoleAdmin))
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}
		w, _ := performRequest(m, token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	m := testAuthMiddleware()

	issue := func(role models.UserRole) string {
		token, _, err := m.IssueToken(testUser(3, role))
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}
		return token
	}

	t.Run("listed role passes", func(t *testing.T) {
		w, _ := performRequest(m, issue(models.RoleManager), m.RequireRoleMiddleware(models.RoleManager))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("unlisted role rejected", func(t *testing.T) {
		w, _ := performRequest(m, issue(models.RoleEmployee), m.RequireRoleMiddleware(models.RoleManager))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin always passes", func(t *testing.T) {
		w, _ := performRequest(m, issue(models.RoleAdmin), m.RequireRoleMiddleware(models.RoleManager))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
