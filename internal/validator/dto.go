package validator

import (
	"time"

	"github.com/NCHRD-2025/training-service/internal/models"
)

// ===== COMPANIES =====

type CompanyCreateRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
}

type CompanyUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
}

// ===== STUDENTS =====

type StudentCreateRequest struct {
	Name       string                `json:"name" validate:"required,min=1,max=255"`
	NationalID string                `json:"national_id" validate:"required,national_id"`
	CompanyID  uint                  `json:"company_id" validate:"required"`
	Status     *models.StudentStatus `json:"status" validate:"omitempty,oneof=active suspended graduated"`
	Phone      *string               `json:"phone" validate:"omitempty,max=20"`
	PhotoURL   *string               `json:"photo_url" validate:"omitempty,url"`
}

type StudentUpdateRequest struct {
	Name       *string               `json:"name" validate:"omitempty,min=1,max=255"`
	NationalID *string               `json:"national_id" validate:"omitempty,national_id"`
	CompanyID  *uint                 `json:"company_id"`
	Status     *models.StudentStatus `json:"status" validate:"omitempty,oneof=active suspended graduated"`
	Phone      *string               `json:"phone" validate:"omitempty,max=20"`
	PhotoURL   *string               `json:"photo_url" validate:"omitempty,url"`
}

// ===== VISITS =====

type VisitCreateRequest struct {
	CompanyID uint      `json:"company_id" validate:"required"`
	StudentID uint      `json:"student_id" validate:"required"`
	VisitDate time.Time `json:"visit_date" validate:"required"`
	Notes     *string   `json:"notes" validate:"omitempty,max=2000"`
}

type VisitUpdateRequest struct {
	VisitDate *time.Time          `json:"visit_date"`
	Status    *models.VisitStatus `json:"status" validate:"omitempty,oneof=pending completed canceled"`
	Notes     *string             `json:"notes" validate:"omitempty,max=2000"`
}

// ===== EVALUATION REQUESTS =====

type EvaluationRequestCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	IssueDate   time.Time  `json:"issue_date" validate:"required"`
	DueDate     *time.Time `json:"due_date"`
	CompanyIDs  []uint     `json:"company_ids" validate:"omitempty,dive,required"`
	StudentIDs  []uint     `json:"student_ids" validate:"omitempty,dive,required"`
}

type EvaluationRequestUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	IssueDate   *time.Time `json:"issue_date"`
	DueDate     *time.Time `json:"due_date"`
	CompanyIDs  []uint     `json:"company_ids" validate:"omitempty,dive,required"`
	StudentIDs  []uint     `json:"student_ids" validate:"omitempty,dive,required"`
}

// ===== ASSIGNED EVALUATIONS =====

type AssignmentCreateRequest struct {
	EvaluationRequestID uint    `json:"evaluation_request_id" validate:"required"`
	SupervisorID        uint    `json:"supervisor_id" validate:"required"`
	CompanyID           uint    `json:"company_id" validate:"required"`
	StudentID           uint    `json:"student_id" validate:"required"`
	Notes               *string `json:"notes" validate:"omitempty,max=2000"`
}

type AssignmentStatusRequest struct {
	Status models.AssignmentStatus `json:"status" validate:"required,oneof=printed in_progress submitted delivered canceled"`
	Notes  *string                 `json:"notes" validate:"omitempty,max=2000"`
}

// ===== EVALUATIONS =====

type EvaluationSubmitRequest struct {
	AssignedEvaluationID uint `json:"assigned_evaluation_id" validate:"required"`

	AppearanceScore  int `json:"appearance_score" validate:"score_range"`
	BehaviorScore    int `json:"behavior_score" validate:"score_range"`
	AttendanceScore  int `json:"attendance_score" validate:"score_range"`
	SkillScore       int `json:"skill_score" validate:"score_range"`
	DisciplineScore  int `json:"discipline_score" validate:"score_range"`
	CooperationScore int `json:"cooperation_score" validate:"score_range"`

	Result     models.EvaluationResult `json:"result" validate:"required,oneof=competent not_competent"`
	Notes      *string                 `json:"notes" validate:"omitempty,max=2000"`
	Date       *time.Time              `json:"date"`
	RepeatDate *time.Time              `json:"repeat_date"`
}

type EvaluationUpdateRequest struct {
	AppearanceScore  *int `json:"appearance_score" validate:"omitempty,score_range"`
	BehaviorScore    *int `json:"behavior_score" validate:"omitempty,score_range"`
	AttendanceScore  *int `json:"attendance_score" validate:"omitempty,score_range"`
	SkillScore       *int `json:"skill_score" validate:"omitempty,score_range"`
	DisciplineScore  *int `json:"discipline_score" validate:"omitempty,score_range"`
	CooperationScore *int `json:"cooperation_score" validate:"omitempty,score_range"`

	Result     *models.EvaluationResult `json:"result" validate:"omitempty,oneof=competent not_competent"`
	Notes      *string                  `json:"notes" validate:"omitempty,max=2000"`
	RepeatDate *time.Time               `json:"repeat_date"`
	Status     *models.EvaluationStatus `json:"status" validate:"omitempty,oneof=submitted delivered"`
}

// ===== TRAINING DAYS =====

type TrainingDayRequest struct {
	Date    time.Time      `json:"date" validate:"required"`
	DayType models.DayType `json:"day_type" validate:"required,oneof=study official_holiday training closed"`
}

// ===== ATTENDANCE =====

type AttendanceCreateRequest struct {
	StudentID uint                    `json:"student_id" validate:"required"`
	Date      time.Time               `json:"date" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent"`
	Reason    *string                 `json:"reason" validate:"omitempty,max=500"`
	IsExcused *bool                   `json:"is_excused"`
	ProofURL  *string                 `json:"proof_url" validate:"omitempty,url"`
}

type AttendanceUpdateRequest struct {
	Status    *models.AttendanceStatus `json:"status" validate:"omitempty,oneof=present absent"`
	Reason    *string                  `json:"reason" validate:"omitempty,max=500"`
	IsExcused *bool                    `json:"is_excused"`
	ProofURL  *string                  `json:"proof_url" validate:"omitempty,url"`
}

// ===== USERS =====

type UserCreateRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=150"`
	Password string          `json:"password" validate:"required,min=8,max=128"`
	Role     models.UserRole `json:"role" validate:"required,oneof=admin manager supervisor institution employee"`
	Email    *string         `json:"email" validate:"omitempty,email"`
	Phone    *string         `json:"phone" validate:"omitempty,max=20"`
}

type UserUpdateRequest struct {
	Role     *models.UserRole `json:"role" validate:"omitempty,oneof=admin manager supervisor institution employee"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Phone    *string          `json:"phone" validate:"omitempty,max=20"`
	IsActive *bool            `json:"is_active"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// ===== NOTIFICATIONS =====

type NotificationCreateRequest struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=2000"`
}
