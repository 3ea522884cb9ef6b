package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/services"
	"github.com/NCHRD-2025/training-service/internal/utils"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// CreateStudent registers a new student
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param student body validator.StudentCreateRequest true "Student data"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req validator.StudentCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.StudentUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListStudents supports filtering by company, status and a free-text query
// over name and national id.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	filters := repositories.StudentFilters{
		Query:     c.Query("q"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("company_id"); raw != "" {
		if companyID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(companyID)
			filters.CompanyID = &id
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := models.StudentStatus(raw)
		filters.Status = &status
	}

	students, err := h.studentService.List(c.Request.Context(), GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
