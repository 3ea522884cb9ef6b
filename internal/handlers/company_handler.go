package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/services"
	"github.com/NCHRD-2025/training-service/internal/utils"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type CompanyHandler struct {
	BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(companyService services.CompanyService, logger utils.Logger) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    NewBaseHandler(logger),
		companyService: companyService,
	}
}

// CreateCompany creates a new company
// @Summary Create company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body validator.CompanyCreateRequest true "Company data"
// @Success 201 {object} models.Company
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req validator.CompanyCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), GetPrincipal(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompany retrieves a company by ID
// @Summary Get company
// @Tags companies
// @Produce json
// @Param id path uint true "Company ID"
// @Success 200 {object} models.Company
// @Failure 404 {object} ErrorResponse
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), GetPrincipal(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.CompanyUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), GetPrincipal(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), GetPrincipal(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	limit, offset := h.parsePagination(c)

	companies, err := h.companyService.List(c.Request.Context(), GetPrincipal(c), limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}
