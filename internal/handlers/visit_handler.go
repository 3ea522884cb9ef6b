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
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type VisitHandler struct {
	BaseHandler
	visitService services.VisitService
}

func NewVisitHandler(visitService services.VisitService, logger utils.Logger) *VisitHandler {
	return &VisitHandler{
		BaseHandler:  NewBaseHandler(logger),
		visitService: visitService,
	}
}

// CreateVisit schedules a field visit. The supervisor is always the caller.
// @Summary Create visit
// @Tags visits
// @Accept json
// @Produce json
// @Param visit body validator.VisitCreateRequest true "Visit data"
// @Success 201 {object} models.Visit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /visits [post]
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req validator.VisitCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	visit, err := h.visitService.Create(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, visit)
}

func (h *VisitHandler) GetVisit(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	visit, err := h.visitService.GetByID(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.VisitUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	visit, err := h.visitService.Update(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}

func (h *VisitHandler) DeleteVisit(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.visitService.Delete(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *VisitHandler) ListVisits(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	filters := repositories.VisitFilters{Limit: limit, Offset: offset}
	if raw := c.Query("company_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.CompanyID = &id
		}
	}
	if raw := c.Query("student_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.StudentID = &id
		}
	}
	if raw := c.Query("supervisor_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.SupervisorID = &id
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := models.VisitStatus(raw)
		filters.Status = &status
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

	visits, err := h.visitService.List(c.Request.Context(), GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, visits)
}
