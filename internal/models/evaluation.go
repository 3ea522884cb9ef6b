package models

import "time"

// EvaluationRequest is a management-issued campaign targeting a set of
// companies and students for evaluation. IssuedBy is stamped from the
// caller, never taken from the request body.
type EvaluationRequest struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description *string `json:"description" gorm:"type:text"`

	IssuedByID *uint `json:"issued_by" gorm:"index"`
	IssuedBy   *User `json:"issuer,omitempty" gorm:"foreignKey:IssuedByID;constraint:OnDelete:SET NULL"`

	IssueDate time.Time  `json:"issue_date" gorm:"type:date;not null"`
	DueDate   *time.Time `json:"due_date" gorm:"type:date"`

	Companies []Company `json:"companies,omitempty" gorm:"many2many:evaluation_request_companies"`
	Students  []Student `json:"students,omitempty" gorm:"many2many:evaluation_request_students"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assignments []AssignedEvaluation `json:"assignments,omitempty" gorm:"foreignKey:EvaluationRequestID;constraint:OnDelete:CASCADE"`
}

func (EvaluationRequest) TableName() string {
	return "evaluation_requests"
}

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentPrinted    AssignmentStatus = "printed"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentSubmitted  AssignmentStatus = "submitted"
	AssignmentDelivered  AssignmentStatus = "delivered"
	AssignmentCanceled   AssignmentStatus = "canceled"
)

// Terminal reports whether no further transition is allowed.
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentDelivered || s == AssignmentCanceled
}

// AssignedEvaluation is one supervisor's unit of evaluation work for one
// (company, student) pair, derived from an EvaluationRequest. Supervisor,
// company and student references survive deletion of their targets
// (SET NULL); the owning request cascades.
type AssignedEvaluation struct {
	ID uint `json:"id" gorm:"primaryKey"`

	EvaluationRequestID uint              `json:"evaluation_request_id" gorm:"not null;index"`
	EvaluationRequest   EvaluationRequest `json:"evaluation_request,omitempty" gorm:"foreignKey:EvaluationRequestID;constraint:OnDelete:CASCADE"`

	SupervisorID *uint `json:"supervisor_id" gorm:"index"`
	CompanyID    *uint `json:"company_id" gorm:"index"`
	StudentID    *uint `json:"student_id" gorm:"index"`

	Supervisor *User    `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID;constraint:OnDelete:SET NULL"`
	Company    *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	Student    *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:SET NULL"`

	Status AssignmentStatus `json:"status" gorm:"default:pending;size:20;index" validate:"omitempty,oneof=pending printed in_progress submitted delivered canceled"`
	Notes  *string          `json:"notes" gorm:"type:text"`

	// Each forward transition stamps its timestamp the first time it occurs.
	AssignedAt  time.Time  `json:"assigned_at" gorm:"autoCreateTime"`
	PrintedAt   *time.Time `json:"printed_at"`
	StartedAt   *time.Time `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`

	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Evaluation *Evaluation `json:"evaluation,omitempty" gorm:"foreignKey:AssignedEvaluationID;constraint:OnDelete:CASCADE"`
}

func (AssignedEvaluation) TableName() string {
	return "assigned_evaluations"
}

type EvaluationResult string

const (
	ResultCompetent    EvaluationResult = "competent"
	ResultNotCompetent EvaluationResult = "not_competent"
)

type EvaluationStatus string

const (
	EvaluationSubmitted EvaluationStatus = "submitted"
	EvaluationDelivered EvaluationStatus = "delivered"
)

// Evaluation is the final graded outcome for exactly one AssignedEvaluation.
// Invariant: result == not_competent requires RepeatDate.
type Evaluation struct {
	ID uint `json:"id" gorm:"primaryKey"`

	AssignedEvaluationID uint               `json:"assigned_evaluation_id" gorm:"uniqueIndex;not null"`
	AssignedEvaluation   AssignedEvaluation `json:"assigned_evaluation,omitempty" gorm:"foreignKey:AssignedEvaluationID;constraint:OnDelete:CASCADE"`

	StudentID    uint `json:"student_id" gorm:"not null;index"`
	CompanyID    uint `json:"company_id" gorm:"not null;index"`
	SupervisorID uint `json:"supervisor_id" gorm:"not null;index"`

	Student    Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Company    Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Supervisor User    `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID;constraint:OnDelete:CASCADE"`

	// Sub-scores, each 0-10.
	AppearanceScore  int `json:"appearance_score" gorm:"not null" validate:"min=0,max=10"`
	BehaviorScore    int `json:"behavior_score" gorm:"not null" validate:"min=0,max=10"`
	AttendanceScore  int `json:"attendance_score" gorm:"not null" validate:"min=0,max=10"`
	SkillScore       int `json:"skill_score" gorm:"not null" validate:"min=0,max=10"`
	DisciplineScore  int `json:"discipline_score" gorm:"not null" validate:"min=0,max=10"`
	CooperationScore int `json:"cooperation_score" gorm:"not null" validate:"min=0,max=10"`

	Result EvaluationResult `json:"result" gorm:"not null;size:20" validate:"required,oneof=competent not_competent"`
	Notes  *string          `json:"notes" gorm:"type:text"`

	Date       time.Time  `json:"date" gorm:"type:date;not null"`
	RepeatDate *time.Time `json:"repeat_date" gorm:"type:date"`

	Status EvaluationStatus `json:"status" gorm:"default:submitted;size:20" validate:"omitempty,oneof=submitted delivered"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
