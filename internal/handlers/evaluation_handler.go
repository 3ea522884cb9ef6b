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

// EvaluationHandler covers the full evaluation pipeline: management-issued
// requests, per-supervisor assignments, and final graded evaluations.
type EvaluationHandler struct {
	BaseHandler
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(evaluationService services.EvaluationService, logger utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
	}
}

// ===== EVALUATION REQUESTS =====

// CreateRequest issues a new evaluation campaign
// @Summary Create evaluation request
// @Tags evaluation-requests
// @Accept json
// @Produce json
// @Param request body validator.EvaluationRequestCreateRequest true "Request data"
// @Success 201 {object} models.EvaluationRequest
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /evaluation-requests [post]
func (h *EvaluationHandler) CreateRequest(c *gin.Context) {
	var req validator.EvaluationRequestCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	request, err := h.evaluationService.CreateRequest(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *EvaluationHandler) GetRequest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	request, err := h.evaluationService.GetRequest(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *EvaluationHandler) UpdateRequest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.EvaluationRequestUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	request, err := h.evaluationService.UpdateRequest(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *EvaluationHandler) DeleteRequest(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.evaluationService.DeleteRequest(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EvaluationHandler) ListRequests(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	requests, err := h.evaluationService.ListRequests(c.Request.Context(), GetPrincipal(c), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ===== ASSIGNED EVALUATIONS =====

func (h *EvaluationHandler) CreateAssignment(c *gin.Context) {
	var req validator.AssignmentCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.evaluationService.CreateAssignment(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *EvaluationHandler) GetAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	assignment, err := h.evaluationService.GetAssignment(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// UpdateAssignmentStatus moves an assignment through its workflow
// @Summary Update assignment status
// @Tags assigned-evaluations
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param status body validator.AssignmentStatusRequest true "Target status"
// @Success 200 {object} models.AssignedEvaluation
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /assigned-evaluations/{id}/status [put]
func (h *EvaluationHandler) UpdateAssignmentStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.AssignmentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.evaluationService.UpdateAssignmentStatus(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *EvaluationHandler) DeleteAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.evaluationService.DeleteAssignment(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EvaluationHandler) ListAssignments(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	filters := repositories.AssignmentFilters{Limit: limit, Offset: offset}
	if raw := c.Query("evaluation_request_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.EvaluationRequestID = &id
		}
	}
	if raw := c.Query("supervisor_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.SupervisorID = &id
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AssignmentStatus(raw)
		filters.Status = &status
	}

	assignments, err := h.evaluationService.ListAssignments(c.Request.Context(), GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ===== FINAL EVALUATIONS =====

// SubmitEvaluation records the graded outcome for an assignment
// @Summary Submit evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Param evaluation body validator.EvaluationSubmitRequest true "Evaluation data"
// @Success 201 {object} models.Evaluation
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /evaluations [post]
func (h *EvaluationHandler) SubmitEvaluation(c *gin.Context) {
	var req validator.EvaluationSubmitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	evaluation, err := h.evaluationService.Submit(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, evaluation)
}

func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	evaluation, err := h.evaluationService.GetEvaluation(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

func (h *EvaluationHandler) UpdateEvaluation(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.EvaluationUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	evaluation, err := h.evaluationService.UpdateEvaluation(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

func (h *EvaluationHandler) DeleteEvaluation(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.evaluationService.DeleteEvaluation(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	filters := repositories.EvaluationFilters{Limit: limit, Offset: offset}
	if raw := c.Query("supervisor_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			filters.SupervisorID = &id
		}
	}
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
	if raw := c.Query("result"); raw != "" {
		result := models.EvaluationResult(raw)
		filters.Result = &result
	}

	evaluations, err := h.evaluationService.ListEvaluations(c.Request.Context(), GetPrincipal(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluations)
}
