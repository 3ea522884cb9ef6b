package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/services"
	"github.com/NCHRD-2025/training-service/internal/utils"
)

func quietLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	h := NewBaseHandler(quietLogger())

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", services.ErrValidationFailed, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("submit: %w", services.ErrValidationFailed), http.StatusBadRequest},
		{"validation details", services.NewValidationError("repeat_date", "required for not_competent", nil), http.StatusBadRequest},
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/test")
			h.handleServiceError(c, tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	h := NewBaseHandler(quietLogger())

	t.Run("valid id", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/companies/42")
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		if got := h.parseIDParam(c, "id"); got != 42 {
			t.Errorf("parseIDParam = %d, want 42", got)
		}
	})

	t.Run("non numeric id writes 400", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/companies/abc")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		if got := h.parseIDParam(c, "id"); got != 0 {
			t.Errorf("parseIDParam = %d, want 0", got)
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("zero id rejected", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/companies/0")
		c.Params = gin.Params{{Key: "id", Value: "0"}}
		if got := h.parseIDParam(c, "id"); got != 0 {
			t.Errorf("parseIDParam = %d, want 0", got)
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestParsePagination(t *testing.T) {
	h := NewBaseHandler(quietLogger())

	t.Run("defaults", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/students")
		limit, offset := h.parsePagination(c)
		if limit != 20 || offset != 0 {
			t.Errorf("pagination = (%d, %d), want (20, 0)", limit, offset)
		}
	})

	t.Run("oversized limit clamped", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/students?limit=5000&offset=-3")
		limit, offset := h.parsePagination(c)
		if limit != 20 || offset != 0 {
			t.Errorf("pagination = (%d, %d), want (20, 0)", limit, offset)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/students?limit=50&offset=100")
		limit, offset := h.parsePagination(c)
		if limit != 50 || offset != 100 {
			t.Errorf("pagination = (%d, %d), want (50, 100)", limit, offset)
		}
	})
}
