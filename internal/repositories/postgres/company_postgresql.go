package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

type companyPostgreSQL struct {
	db *gorm.DB
}

func NewCompanyPostgreSQL(db *gorm.DB) repositories.CompanyRepository {
	return &companyPostgreSQL{db: db}
}

func (r *companyPostgreSQL) Create(ctx context.Context, company *models.Company) error {
	return translateError(r.db.WithContext(ctx).Create(company).Error)
}

func (r *companyPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &company, nil
}

func (r *companyPostgreSQL) Update(ctx context.Context, company *models.Company) error {
	return translateError(r.db.WithContext(ctx).Save(company).Error)
}

func (r *companyPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Company{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *companyPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.Company, int64, error) {
	var companies []*models.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Company{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "name", "asc", limit, offset)
	if err := query.Find(&companies).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return companies, total, nil
}

func (r *companyPostgreSQL) StudentCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("company_id = ?", id).
		Count(&count).Error
	return count, translateError(err)
}
