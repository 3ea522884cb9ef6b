package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
)

type exportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) ExportService {
	return &exportService{logger: logger}
}

const reportSheet = "Attendance Report"

// AttendanceXLSX renders a report into a spreadsheet: a summary block on
// top, the raw records below it.
func (s *exportService) AttendanceXLSX(ctx context.Context, actor *models.Principal, report *AttendanceReport) ([]byte, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceReports) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceReports), "export")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close spreadsheet", "error", err)
		}
	}()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Period", report.Period},
		{"From", report.DateRange.From},
		{"To", report.DateRange.To},
		{"Total students", report.TotalStudents},
		{"Total records", report.TotalRecords},
		{"Present", report.Present},
		{"Absent (with reason)", report.AbsentWithReason},
		{"Absent (without reason)", report.AbsentWithoutReason},
		{"Attendance rate", fmt.Sprintf("%.2f%%", report.AttendanceRate)},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	headerRow := len(summary) + 2
	header := []interface{}{"Date", "Student", "Company", "Status", "Reason", "Excused"}
	cell, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(reportSheet, cell, &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range report.Records {
		reason := ""
		if record.Reason != nil {
			reason = *record.Reason
		}
		row := []interface{}{
			record.Date.Format(DailyPeriodLayout),
			record.StudentName,
			record.CompanyName,
			string(record.Status),
			reason,
			record.IsExcused,
		}
		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write record row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	return buf.Bytes(), nil
}
