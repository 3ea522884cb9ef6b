package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/services"
	"github.com/NCHRD-2025/training-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
	exportService services.ExportService
}

func NewReportHandler(reportService services.ReportService, exportService services.ExportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
		exportService: exportService,
	}
}

// DailyReport returns the attendance aggregate for one date
// @Summary Daily attendance report
// @Tags reports
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} services.AttendanceReport
// @Failure 400 {object} ErrorResponse
// @Router /reports/attendance/daily [get]
func (h *ReportHandler) DailyReport(c *gin.Context) {
	report, err := h.reportService.Daily(c.Request.Context(), GetPrincipal(c), c.Query("date"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// WeeklyReport accepts week codes like 2025-W03.
func (h *ReportHandler) WeeklyReport(c *gin.Context) {
	report, err := h.reportService.Weekly(c.Request.Context(), GetPrincipal(c), c.Query("week"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// MonthlyReport accepts months like 2025-03.
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	report, err := h.reportService.Monthly(c.Request.Context(), GetPrincipal(c), c.Query("month"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportAttendance streams the selected report as a spreadsheet. The same
// period query parameters as the JSON endpoints select the window.
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	ctx := c.Request.Context()
	principal := GetPrincipal(c)

	var (
		report *services.AttendanceReport
		err    error
	)
	switch {
	case c.Query("date") != "":
		report, err = h.reportService.Daily(ctx, principal, c.Query("date"))
	case c.Query("week") != "":
		report, err = h.reportService.Weekly(ctx, principal, c.Query("week"))
	case c.Query("month") != "":
		report, err = h.reportService.Monthly(ctx, principal, c.Query("month"))
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: "one of date, week or month is required",
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := h.exportService.AttendanceXLSX(ctx, principal, report)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", strings.ReplaceAll(report.Period, ":", "-"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
