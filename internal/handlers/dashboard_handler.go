package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/services"
	"github.com/NCHRD-2025/training-service/internal/utils"
)

// DashboardHandler serves the management landing page and the audit trail.
type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
	auditService     services.AuditService
}

func NewDashboardHandler(dashboardService services.DashboardService, auditService services.AuditService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		auditService:     auditService,
	}
}

// Overview returns headline counts for the management dashboard
// @Summary Dashboard overview
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardOverview
// @Failure 403 {object} ErrorResponse
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context(), GetPrincipal(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// ListLogs exposes the audit trail to administrators.
func (h *DashboardHandler) ListLogs(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	filters := repositories.LogFilters{Limit: limit, Offset: offset}
	if raw := c.Query("user_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.UserID = &id
		}
	}
	if raw := c.Query("action"); raw != "" {
		action := models.LogAction(raw)
		filters.Action = &action
	}
	if raw := c.Query("date_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filters.DateFrom = &t
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filters.DateTo = &t
		}
	}

	logs, err := h.auditService.ListLogs(c.Request.Context(), GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
