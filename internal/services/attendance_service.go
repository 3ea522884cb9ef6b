package services

import (
	"context"
	"log/slog"

	"github.com/NCHRD-2025/training-service/internal/cache"
	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/policy"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

type attendanceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	audit     AuditService
	cache     *cache.CacheManager
}

func NewAttendanceService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, audit AuditService, cm *cache.CacheManager) AttendanceService {
	return &attendanceService{
		repo:      repo,
		logger:    logger,
		validator: v,
		audit:     audit,
		cache:     cm,
	}
}

// invalidateReports drops cached report aggregates after any attendance write.
func (s *attendanceService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAttendance(ctx); err != nil {
		s.logger.Warn("failed to invalidate report caches", "error", err)
	}
}

// ===== TRAINING DAYS =====

func (s *attendanceService) CreateTrainingDay(ctx context.Context, actor *models.Principal, req *validator.TrainingDayRequest) (*models.TrainingDay, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceTrainingDays) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceTrainingDays), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	day := &models.TrainingDay{
		Date:    req.Date,
		DayType: req.DayType,
	}

	// One row per date.
	if err := s.repo.TrainingDay().Create(ctx, day); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("created", "training day", day.ID),
		map[string]any{"training_day_id": day.ID, "day_type": string(day.DayType)})

	return day, nil
}

func (s *attendanceService) UpdateTrainingDay(ctx context.Context, actor *models.Principal, id uint, req *validator.TrainingDayRequest) (*models.TrainingDay, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceTrainingDays) {
		return nil, newPolicyError(actor, id, string(policy.ResourceTrainingDays), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	day, err := s.repo.TrainingDay().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	day.Date = req.Date
	day.DayType = req.DayType

	if err := s.repo.TrainingDay().Update(ctx, day); err != nil {
		return nil, mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "training day", id),
		map[string]any{"training_day_id": id})

	return day, nil
}

func (s *attendanceService) DeleteTrainingDay(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceTrainingDays) {
		return newPolicyError(actor, id, string(policy.ResourceTrainingDays), "delete")
	}

	if err := s.repo.TrainingDay().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "training day", id),
		map[string]any{"training_day_id": id})

	return nil
}

func (s *attendanceService) ListTrainingDays(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.TrainingDay], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceTrainingDays) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceTrainingDays), "read")
	}

	days, total, err := s.repo.TrainingDay().List(ctx, limit, offset)
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &ListResponse[*models.TrainingDay]{
		Items:  days,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// ===== ATTENDANCE RECORDS =====

// Record writes one student's attendance for one date. A second record for
// the same (student, date) is a conflict; the unique index backs this up
// against concurrent writers.
func (s *attendanceService) Record(ctx context.Context, actor *models.Principal, req *validator.AttendanceCreateRequest) (*models.AttendanceRecord, error) {
	if !policy.Check(actor, policy.ActionCreate, policy.ResourceAttendance) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceAttendance), "create")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	student, err := s.repo.Student().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("student_id", "student does not exist", req.StudentID)
		}
		return nil, err
	}

	exists, err := s.repo.Attendance().ExistsForStudentAndDate(ctx, req.StudentID, req.Date)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if exists {
		return nil, ErrConflict
	}

	record := &models.AttendanceRecord{
		StudentID:    req.StudentID,
		CompanyID:    student.CompanyID,
		Date:         req.Date,
		Status:       req.Status,
		Reason:       req.Reason,
		ProofURL:     req.ProofURL,
		RecordedByID: &actor.ID,
	}
	if req.IsExcused != nil {
		record.IsExcused = *req.IsExcused
	}

	if err := s.repo.Attendance().Create(ctx, record); err != nil {
		// The unique index catches the race the existence check misses.
		return nil, mapRepoError(err)
	}

	s.invalidateReports(ctx)

	s.audit.Record(ctx, actor, models.ActionCreate, entityDetail("recorded", "attendance", record.ID),
		map[string]any{"attendance_id": record.ID, "student_id": req.StudentID, "status": string(req.Status)})

	return record, nil
}

func (s *attendanceService) GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.AttendanceRecord, error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceAttendance) {
		return nil, newPolicyError(actor, id, string(policy.ResourceAttendance), "read")
	}

	record, err := s.repo.Attendance().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	record.StudentName = record.Student.Name
	record.CompanyName = record.Company.Name

	return record, nil
}

func (s *attendanceService) Update(ctx context.Context, actor *models.Principal, id uint, req *validator.AttendanceUpdateRequest) (*models.AttendanceRecord, error) {
	if !policy.Check(actor, policy.ActionUpdate, policy.ResourceAttendance) {
		return nil, newPolicyError(actor, id, string(policy.ResourceAttendance), "update")
	}

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationErrors(errs)
	}

	record, err := s.repo.Attendance().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.Reason != nil {
		record.Reason = req.Reason
	}
	if req.IsExcused != nil {
		record.IsExcused = *req.IsExcused
	}
	if req.ProofURL != nil {
		record.ProofURL = req.ProofURL
	}

	if err := s.repo.Attendance().Update(ctx, record); err != nil {
		return nil, mapRepoError(err)
	}

	s.invalidateReports(ctx)

	s.audit.Record(ctx, actor, models.ActionUpdate, entityDetail("updated", "attendance", id),
		map[string]any{"attendance_id": id})

	return record, nil
}

func (s *attendanceService) Delete(ctx context.Context, actor *models.Principal, id uint) error {
	if !policy.Check(actor, policy.ActionDelete, policy.ResourceAttendance) {
		return newPolicyError(actor, id, string(policy.ResourceAttendance), "delete")
	}

	if err := s.repo.Attendance().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.invalidateReports(ctx)

	s.audit.Record(ctx, actor, models.ActionDelete, entityDetail("deleted", "attendance", id),
		map[string]any{"attendance_id": id})

	return nil
}

func (s *attendanceService) List(ctx context.Context, actor *models.Principal, filters repositories.AttendanceFilters) (*ListResponse[*models.AttendanceRecord], error) {
	if !policy.Check(actor, policy.ActionRead, policy.ResourceAttendance) {
		return nil, newPolicyError(actor, 0, string(policy.ResourceAttendance), "read")
	}

	records, total, err := s.repo.Attendance().List(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err)
	}

	for _, record := range records {
		record.StudentName = record.Student.Name
		record.CompanyName = record.Company.Name
	}

	return &ListResponse[*models.AttendanceRecord]{
		Items:  records,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}
