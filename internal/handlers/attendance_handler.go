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

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
	}
}

// ===== TRAINING DAYS =====

func (h *AttendanceHandler) CreateTrainingDay(c *gin.Context) {
	var req validator.TrainingDayRequest
	if !h.bindJSON(c, &req) {
		return
	}

	day, err := h.attendanceService.CreateTrainingDay(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, day)
}

func (h *AttendanceHandler) UpdateTrainingDay(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.TrainingDayRequest
	if !h.bindJSON(c, &req) {
		return
	}

	day, err := h.attendanceService.UpdateTrainingDay(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *AttendanceHandler) DeleteTrainingDay(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.attendanceService.DeleteTrainingDay(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AttendanceHandler) ListTrainingDays(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	days, err := h.attendanceService.ListTrainingDays(c.Request.Context(), GetPrincipal(c), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}

// ===== ATTENDANCE RECORDS =====

// RecordAttendance writes one student's attendance for one date
// @Summary Record attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param record body validator.AttendanceCreateRequest true "Attendance data"
// @Success 201 {object} models.AttendanceRecord
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	var req validator.AttendanceCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.Record(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	record, err := h.attendanceService.GetByID(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.AttendanceUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.Update(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	filters := repositories.AttendanceFilters{Limit: limit, Offset: offset}
	if raw := c.Query("student_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.StudentID = &id
		}
	}
	if raw := c.Query("company_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.CompanyID = &id
		}
	}
	if raw := c.Query("date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filters.Date = &t
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AttendanceStatus(raw)
		filters.Status = &status
	}

	records, err := h.attendanceService.List(c.Request.Context(), GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
