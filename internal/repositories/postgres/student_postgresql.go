package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

type studentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentPostgreSQL{db: db}
}

func (r *studentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return translateError(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("Company").First(&student, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &student, nil
}

func (r *studentPostgreSQL) GetByNationalID(ctx context.Context, nationalID string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&student).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &student, nil
}

func (r *studentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return translateError(r.db.WithContext(ctx).Save(student).Error)
}

func (r *studentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *studentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Student{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Company").Find(&students).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return students, total, nil
}

func (r *studentPostgreSQL) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("national_id = ?", nationalID).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *studentPostgreSQL) applyFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR national_id LIKE ?", like, like)
	}
	return query
}
