package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

type dashboardPostgreSQL struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardPostgreSQL{db: db}
}

func (r *dashboardPostgreSQL) GetOverviewCounts(ctx context.Context) (*repositories.OverviewCounts, error) {
	var counts repositories.OverviewCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Company{}).Count(&counts.Companies).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&models.Student{}).Count(&counts.Students).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleSupervisor, true).
		Count(&counts.Supervisors).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&models.Visit{}).
		Where("status = ?", models.VisitPending).
		Count(&counts.PendingVisits).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&models.AssignedEvaluation{}).
		Where("status = ?", models.AssignmentPending).
		Count(&counts.PendingAssignments).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&models.EvaluationRequest{}).
		Where("due_date >= ?", dateOnly(time.Now())).
		Count(&counts.OpenRequests).Error; err != nil {
		return nil, translateError(err)
	}

	return &counts, nil
}

func (r *dashboardPostgreSQL) GetAttendanceTotalsForDate(ctx context.Context, date time.Time) (*repositories.AttendanceTotals, error) {
	var totals repositories.AttendanceTotals
	day := dateOnly(date)
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("date = ?", day).
		Select(`
			COUNT(*) AS total_records,
			COUNT(*) FILTER (WHERE status = ?) AS present,
			COUNT(*) FILTER (WHERE status = ? AND reason IS NOT NULL AND reason <> '') AS absent_with_reason,
			COUNT(*) FILTER (WHERE status = ? AND (reason IS NULL OR reason = '')) AS absent_without_reason,
			COUNT(DISTINCT student_id) AS distinct_students`,
			models.AttendancePresent, models.AttendanceAbsent, models.AttendanceAbsent).
		Scan(&totals).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &totals, nil
}
