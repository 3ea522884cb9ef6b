package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
)

// ===== EVALUATION REQUESTS =====

type evaluationRequestPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationRequestPostgreSQL(db *gorm.DB) repositories.EvaluationRequestRepository {
	return &evaluationRequestPostgreSQL{db: db}
}

func (r *evaluationRequestPostgreSQL) Create(ctx context.Context, req *models.EvaluationRequest) error {
	return translateError(r.db.WithContext(ctx).Create(req).Error)
}

func (r *evaluationRequestPostgreSQL) GetByID(ctx context.Context, id uint) (*models.EvaluationRequest, error) {
	var req models.EvaluationRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &req, nil
}

func (r *evaluationRequestPostgreSQL) GetByIDWithTargets(ctx context.Context, id uint) (*models.EvaluationRequest, error) {
	var req models.EvaluationRequest
	err := r.db.WithContext(ctx).
		Preload("Companies").
		Preload("Students").
		Preload("Assignments").
		First(&req, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &req, nil
}

func (r *evaluationRequestPostgreSQL) Update(ctx context.Context, req *models.EvaluationRequest) error {
	return translateError(r.db.WithContext(ctx).Save(req).Error)
}

func (r *evaluationRequestPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.EvaluationRequest{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *evaluationRequestPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.EvaluationRequest, int64, error) {
	var requests []*models.EvaluationRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.EvaluationRequest{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPaginationAndSort(query, "created_at", "desc", limit, offset)
	if err := query.Preload("Companies").Preload("Students").Find(&requests).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return requests, total, nil
}

func (r *evaluationRequestPostgreSQL) ReplaceTargets(ctx context.Context, id uint, companyIDs, studentIDs []uint) error {
	req := models.EvaluationRequest{ID: id}

	companies := make([]models.Company, len(companyIDs))
	for i, cid := range companyIDs {
		companies[i] = models.Company{ID: cid}
	}
	students := make([]models.Student, len(studentIDs))
	for i, sid := range studentIDs {
		students[i] = models.Student{ID: sid}
	}

	if err := r.db.WithContext(ctx).Model(&req).Association("Companies").Replace(companies); err != nil {
		return translateError(err)
	}
	if err := r.db.WithContext(ctx).Model(&req).Association("Students").Replace(students); err != nil {
		return translateError(err)
	}
	return nil
}

// ===== ASSIGNED EVALUATIONS =====

type assignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &assignmentPostgreSQL{db: db}
}

func (r *assignmentPostgreSQL) Create(ctx context.Context, assignment *models.AssignedEvaluation) error {
	return translateError(r.db.WithContext(ctx).Create(assignment).Error)
}

func (r *assignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.AssignedEvaluation, error) {
	var assignment models.AssignedEvaluation
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Student").
		First(&assignment, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &assignment, nil
}

func (r *assignmentPostgreSQL) GetByIDWithEvaluation(ctx context.Context, id uint) (*models.AssignedEvaluation, error) {
	var assignment models.AssignedEvaluation
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Student").
		Preload("Evaluation").
		First(&assignment, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &assignment, nil
}

func (r *assignmentPostgreSQL) Update(ctx context.Context, assignment *models.AssignedEvaluation) error {
	return translateError(r.db.WithContext(ctx).Save(assignment).Error)
}

func (r *assignmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.AssignedEvaluation{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentPostgreSQL) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.AssignedEvaluation, int64, error) {
	var assignments []*models.AssignedEvaluation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AssignedEvaluation{})
	if filters.EvaluationRequestID != nil {
		query = query.Where("evaluation_request_id = ?", *filters.EvaluationRequestID)
	}
	if filters.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filters.SupervisorID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = query.Order("assigned_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Preload("Company").Preload("Student").Find(&assignments).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return assignments, total, nil
}

// ===== FINAL EVALUATIONS =====

type evaluationPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationPostgreSQL(db *gorm.DB) repositories.EvaluationRepository {
	return &evaluationPostgreSQL{db: db}
}

func (r *evaluationPostgreSQL) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return translateError(r.db.WithContext(ctx).Create(evaluation).Error)
}

func (r *evaluationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Company").
		First(&evaluation, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &evaluation, nil
}

func (r *evaluationPostgreSQL) GetByAssignment(ctx context.Context, assignmentID uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.WithContext(ctx).
		Where("assigned_evaluation_id = ?", assignmentID).
		First(&evaluation).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &evaluation, nil
}

func (r *evaluationPostgreSQL) Update(ctx context.Context, evaluation *models.Evaluation) error {
	return translateError(r.db.WithContext(ctx).Save(evaluation).Error)
}

func (r *evaluationPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Evaluation{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *evaluationPostgreSQL) List(ctx context.Context, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	var evaluations []*models.Evaluation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Evaluation{})
	if filters.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filters.SupervisorID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.Result != nil {
		query = query.Where("result = ?", *filters.Result)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = query.Order("date DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Preload("Student").Preload("Company").Find(&evaluations).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return evaluations, total, nil
}
