package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

// ===== TRAINING DAYS =====

type trainingDayPostgreSQL struct {
	db *gorm.DB
}

func NewTrainingDayPostgreSQL(db *gorm.DB) repositories.TrainingDayRepository {
	return &trainingDayPostgreSQL{db: db}
}

func (r *trainingDayPostgreSQL) Create(ctx context.Context, day *models.TrainingDay) error {
	return translateError(r.db.WithContext(ctx).Create(day).Error)
}

func (r *trainingDayPostgreSQL) GetByID(ctx context.Context, id uint) (*models.TrainingDay, error) {
	var day models.TrainingDay
	if err := r.db.WithContext(ctx).First(&day, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &day, nil
}

func (r *trainingDayPostgreSQL) GetByDate(ctx context.Context, date time.Time) (*models.TrainingDay, error) {
	var day models.TrainingDay
	err := r.db.WithContext(ctx).
		Where("date = ?", dateOnly(date)).
		First(&day).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &day, nil
}

func (r *trainingDayPostgreSQL) Update(ctx context.Context, day *models.TrainingDay) error {
	return translateError(r.db.WithContext(ctx).Save(day).Error)
}

func (r *trainingDayPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.TrainingDay{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *trainingDayPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.TrainingDay, int64, error) {
	var days []*models.TrainingDay
	var total int64

	query := r.db.WithContext(ctx).Model(&models.TrainingDay{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "date", "desc", limit, offset)
	if err := query.Find(&days).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return days, total, nil
}

// ===== ATTENDANCE RECORDS =====

type attendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &attendancePostgreSQL{db: db}
}

func (r *attendancePostgreSQL) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return translateError(r.db.WithContext(ctx).Create(record).Error)
}

func (r *attendancePostgreSQL) GetByID(ctx context.Context, id uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Company").
		First(&record, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *attendancePostgreSQL) GetByStudentAndDate(ctx context.Context, studentID uint, date time.Time) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, dateOnly(date)).
		First(&record).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *attendancePostgreSQL) Update(ctx context.Context, record *models.AttendanceRecord) error {
	return translateError(r.db.WithContext(ctx).Save(record).Error)
}

func (r *attendancePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.AttendanceRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *attendancePostgreSQL) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, int64, error) {
	var records []*models.AttendanceRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AttendanceRecord{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "date", "desc", filters.Limit, filters.Offset)
	if err := query.Preload("Student").Preload("Company").Find(&records).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return records, total, nil
}

func (r *attendancePostgreSQL) ExistsForStudentAndDate(ctx context.Context, studentID uint, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("student_id = ? AND date = ?", studentID, dateOnly(date)).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *attendancePostgreSQL) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", dateOnly(from), dateOnly(to)).
		Order("date ASC, student_id ASC").
		Preload("Student").
		Preload("Company").
		Find(&records).Error
	if err != nil {
		return nil, translateError(err)
	}
	return records, nil
}

func (r *attendancePostgreSQL) GetTotals(ctx context.Context, from, to time.Time) (*repositories.AttendanceTotals, error) {
	var totals repositories.AttendanceTotals
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("date >= ? AND date <= ?", dateOnly(from), dateOnly(to)).
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

func (r *attendancePostgreSQL) applyFilters(query *gorm.DB, filters repositories.AttendanceFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.Date != nil {
		query = query.Where("date = ?", dateOnly(*filters.Date))
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	return query
}
