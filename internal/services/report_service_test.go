package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

func newTestReportService(attendance *fakeAttendanceRepo) ReportService {
	repo := &stubRepository{attendance: attendance}
	return NewReportService(repo, testLogger(), validator.New(), nil)
}

func TestReportService_Daily(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

	t.Run("single day window and rate", func(t *testing.T) {
		attendance := newFakeAttendanceRepo()
		attendance.totals = &repositories.AttendanceTotals{
			TotalRecords:        4,
			Present:             3,
			AbsentWithReason:    1,
			AbsentWithoutReason: 0,
			DistinctStudents:    4,
		}
		service := newTestReportService(attendance)

		report, err := service.Daily(ctx, admin, "2025-03-10")
		if err != nil {
			t.Fatalf("Daily failed: %v", err)
		}

		if report.AttendanceRate != 75.0 {
			t.Errorf("expected rate 75.0, got %v", report.AttendanceRate)
		}
		if report.DateRange.From != "2025-03-10" || report.DateRange.To != "2025-03-10" {
			t.Errorf("expected single-day range, got %s..%s", report.DateRange.From, report.DateRange.To)
		}
		if !attendance.gotFrom.Equal(attendance.gotTo) {
			t.Errorf("daily report should query one day, got %v..%v", attendance.gotFrom, attendance.gotTo)
		}
	})

	t.Run("zero records means zero rate", func(t *testing.T) {
		service := newTestReportService(newFakeAttendanceRepo())

		report, err := service.Daily(ctx, admin, "2025-03-10")
		if err != nil {
			t.Fatalf("Daily failed: %v", err)
		}
		if report.AttendanceRate != 0 {
			t.Errorf("expected rate 0 with no records, got %v", report.AttendanceRate)
		}
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		attendance := newFakeAttendanceRepo()
		attendance.totals = &repositories.AttendanceTotals{TotalRecords: 3, Present: 1}
		service := newTestReportService(attendance)

		report, err := service.Daily(ctx, admin, "2025-03-10")
		if err != nil {
			t.Fatalf("Daily failed: %v", err)
		}
		if report.AttendanceRate != 33.33 {
			t.Errorf("expected rate 33.33, got %v", report.AttendanceRate)
		}
	})

	t.Run("bad date is a validation error", func(t *testing.T) {
		service := newTestReportService(newFakeAttendanceRepo())

		_, err := service.Daily(ctx, admin, "10/03/2025")
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("denied without report access", func(t *testing.T) {
		service := newTestReportService(newFakeAttendanceRepo())
		employee := &models.Principal{ID: 9, Username: "emp", Role: models.RoleEmployee}

		_, err := service.Daily(ctx, employee, "2025-03-10")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected forbidden, got %v", err)
		}
	})
}

func TestReportService_Weekly(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

	t.Run("week window starts at the year's first Monday", func(t *testing.T) {
		attendance := newFakeAttendanceRepo()
		service := newTestReportService(attendance)

		// 2025-01-01 is a Wednesday; the first Monday is Jan 6, so
		// week 3 covers Jan 20 through Jan 26.
		report, err := service.Weekly(ctx, admin, "2025-W03")
		if err != nil {
			t.Fatalf("Weekly failed: %v", err)
		}

		wantFrom := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
		wantTo := time.Date(2025, time.January, 26, 0, 0, 0, 0, time.UTC)
		if !attendance.gotFrom.Equal(wantFrom) {
			t.Errorf("expected window start %v, got %v", wantFrom, attendance.gotFrom)
		}
		if !attendance.gotTo.Equal(wantTo) {
			t.Errorf("expected window end %v, got %v", wantTo, attendance.gotTo)
		}
		if report.DateRange.From != "2025-01-20" || report.DateRange.To != "2025-01-26" {
			t.Errorf("unexpected date range %s..%s", report.DateRange.From, report.DateRange.To)
		}
	})

	t.Run("week spans exactly seven days", func(t *testing.T) {
		attendance := newFakeAttendanceRepo()
		service := newTestReportService(attendance)

		if _, err := service.Weekly(ctx, admin, "2024-W10"); err != nil {
			t.Fatalf("Weekly failed: %v", err)
		}
		if got := attendance.gotTo.Sub(attendance.gotFrom); got != 6*24*time.Hour {
			t.Errorf("expected 6 day span, got %v", got)
		}
		if attendance.gotFrom.Weekday() != time.Monday {
			t.Errorf("expected week to start on Monday, got %v", attendance.gotFrom.Weekday())
		}
	})

	t.Run("rejects malformed and out of range weeks", func(t *testing.T) {
		service := newTestReportService(newFakeAttendanceRepo())

		for _, week := range []string{"2025-03", "W03-2025", "2025-W00", "2025-W54"} {
			if _, err := service.Weekly(ctx, admin, week); !errors.Is(err, ErrValidationFailed) {
				t.Errorf("week %q: expected validation error, got %v", week, err)
			}
		}
	})
}

func TestReportService_Monthly(t *testing.T) {
	ctx := context.Background()
	admin := &models.Principal{ID: 1, Username: "admin", Role: models.RoleAdmin}

	t.Run("covers the whole month including leap day", func(t *testing.T) {
		attendance := newFakeAttendanceRepo()
		service := newTestReportService(attendance)

		if _, err := service.Monthly(ctx, admin, "2024-02"); err != nil {
			t.Fatalf("Monthly failed: %v", err)
		}

		wantFrom := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		wantTo := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
		if !attendance.gotFrom.Equal(wantFrom) || !attendance.gotTo.Equal(wantTo) {
			t.Errorf("expected %v..%v, got %v..%v", wantFrom, wantTo, attendance.gotFrom, attendance.gotTo)
		}
	})

	t.Run("december rolls into the next year", func(t *testing.T) {
		attendance := newFakeAttendanceRepo()
		service := newTestReportService(attendance)

		if _, err := service.Monthly(ctx, admin, "2025-12"); err != nil {
			t.Fatalf("Monthly failed: %v", err)
		}
		wantTo := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
		if !attendance.gotTo.Equal(wantTo) {
			t.Errorf("expected month end %v, got %v", wantTo, attendance.gotTo)
		}
	})

	t.Run("bad month is a validation error", func(t *testing.T) {
		service := newTestReportService(newFakeAttendanceRepo())

		_, err := service.Monthly(ctx, admin, "2024-13")
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}
