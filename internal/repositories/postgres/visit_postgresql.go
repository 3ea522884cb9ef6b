package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

type visitPostgreSQL struct {
	db *gorm.DB
}

func NewVisitPostgreSQL(db *gorm.DB) repositories.VisitRepository {
	return &visitPostgreSQL{db: db}
}

func (r *visitPostgreSQL) Create(ctx context.Context, visit *models.Visit) error {
	return translateError(r.db.WithContext(ctx).Create(visit).Error)
}

func (r *visitPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Visit, error) {
	var visit models.Visit
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Student").
		First(&visit, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &visit, nil
}

func (r *visitPostgreSQL) Update(ctx context.Context, visit *models.Visit) error {
	return translateError(r.db.WithContext(ctx).Save(visit).Error)
}

func (r *visitPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Visit{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *visitPostgreSQL) List(ctx context.Context, filters repositories.VisitFilters) ([]*models.Visit, int64, error) {
	var visits []*models.Visit
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Visit{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)
	if err := query.Preload("Company").Preload("Student").Find(&visits).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return visits, total, nil
}

func (r *visitPostgreSQL) applyFilters(query *gorm.DB, filters repositories.VisitFilters) *gorm.DB {
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filters.SupervisorID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("visit_date >= ?", dateOnly(*filters.DateFrom))
	}
	if filters.DateTo != nil {
		query = query.Where("visit_date <= ?", dateOnly(*filters.DateTo))
	}
	return query
}
