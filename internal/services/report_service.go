package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NCHRD-2025/training-service/internal/cache"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/utils"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type reportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewReportService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, cm *cache.CacheManager) ReportService {
	return &reportService{
		repo:      repo,
		logger:    logger,
		validator: v,
		cache:     cm,
	}
}

func (s *reportService) Daily(ctx context.Context, actor *models.Principal, date string) (*AttendanceReport, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceReports) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceReports), "read")
	}

	day, err := time.Parse(DailyPeriodLayout, date)
	if err != nil {
		return nil, NewValidationError("date", "must be a valid date in YYYY-MM-DD format", date)
	}

	return s.buildReport(ctx, "daily:"+date, day, day)
}

// Weekly accepts week codes like "2025-W03". Week 1 starts at the first
// Monday of the year; weeks before that Monday belong to week 0. This
// deliberately does not follow ISO-8601 week numbering, so year-boundary
// output stays stable for existing consumers.
func (s *reportService) Weekly(ctx context.Context, actor *models.Principal, week string) (*AttendanceReport, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceReports) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceReports), "read")
	}

	var year, weekNum int
	if _, err := fmt.Sscanf(week, "%d-W%d", &year, &weekNum); err != nil {
		return nil, NewValidationError("week", "must be in YYYY-Www format", week)
	}
	if year < 1 || weekNum < 1 || weekNum > 53 {
		return nil, NewValidationError("week", "week number out of range", week)
	}

	start := weekStart(year, weekNum)
	end := start.AddDate(0, 0, 6)

	return s.buildReport(ctx, "weekly:"+week, start, end)
}

func (s *reportService) Monthly(ctx context.Context, actor *models.Principal, month string) (*AttendanceReport, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceReports) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceReports), "read")
	}

	first, err := time.Parse(MonthlyPeriodLayout, month)
	if err != nil {
		return nil, NewValidationError("month", "must be in YYYY-MM format", month)
	}

	// AddDate handles the December year rollover.
	last := first.AddDate(0, 1, -1)

	return s.buildReport(ctx, "monthly:"+month, first, last)
}

// weekStart returns the Monday starting the given week, where week 1 is
// the week beginning at the year's first Monday.
func weekStart(year, week int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(jan1.Weekday()) + 7) % 7
	firstMonday := jan1.AddDate(0, 0, offset)
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

func (s *reportService) buildReport(ctx context.Context, period string, from, to time.Time) (*AttendanceReport, error) {
	fetch := func() (interface{}, error) {
		return s.computeReport(ctx, period, from, to)
	}

	if s.cache != nil {
		var report AttendanceReport
		err := s.cache.Report.CacheOrExecute(ctx, period, &report, cache.ReportCacheConfig.TTL, fetch)
		if err != nil {
			return nil, err
		}
		return &report, nil
	}

	return s.computeReport(ctx, period, from, to)
}

func (s *reportService) computeReport(ctx context.Context, period string, from, to time.Time) (*AttendanceReport, error) {
	totals, err := s.repo.Attendance().GetTotals(ctx, from, to)
	if err != nil {
		return nil, mapRepoError(err)
	}

	records, err := s.repo.Attendance().GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, mapRepoError(err)
	}

	for _, record := range records {
		record.StudentName = record.Student.Name
		record.CompanyName = record.Company.Name
	}

	var rate float64
	if totals.TotalRecords > 0 {
		rate = utils.RoundFloat(float64(totals.Present)/float64(totals.TotalRecords)*100, 2)
	}

	return &AttendanceReport{
		Period:              period,
		TotalStudents:       totals.DistinctStudents,
		TotalRecords:        totals.TotalRecords,
		Present:             totals.Present,
		AbsentWithReason:    totals.AbsentWithReason,
		AbsentWithoutReason: totals.AbsentWithoutReason,
		AttendanceRate:      rate,
		DateRange: DateRange{
			From: from.Format(DailyPeriodLayout),
			To:   to.Format(DailyPeriodLayout),
		},
		Records: records,
	}, nil
}
