package repositories

import (
	"context"
	"time"

	"github.com/NCHRD-2025/training-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	CompanyID *uint                 `json:"company_id"`
	Status    *models.StudentStatus `json:"status"`
	Query     string                `json:"query"` // name or national id
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type VisitFilters struct {
	CompanyID    *uint               `json:"company_id"`
	StudentID    *uint               `json:"student_id"`
	SupervisorID *uint               `json:"supervisor_id"`
	Status       *models.VisitStatus `json:"status"`
	DateFrom     *time.Time          `json:"date_from"`
	DateTo       *time.Time          `json:"date_to"`
	Limit        int                 `json:"limit"`
	Offset       int                 `json:"offset"`
}

type AssignmentFilters struct {
	EvaluationRequestID *uint                    `json:"evaluation_request_id"`
	SupervisorID        *uint                    `json:"supervisor_id"`
	Status              *models.AssignmentStatus `json:"status"`
	Limit               int                      `json:"limit"`
	Offset              int                      `json:"offset"`
}

type EvaluationFilters struct {
	SupervisorID *uint                    `json:"supervisor_id"`
	StudentID    *uint                    `json:"student_id"`
	CompanyID    *uint                    `json:"company_id"`
	Result       *models.EvaluationResult `json:"result"`
	Limit        int                      `json:"limit"`
	Offset       int                      `json:"offset"`
}

type AttendanceFilters struct {
	StudentID *uint                    `json:"student_id"`
	CompanyID *uint                    `json:"company_id"`
	Date      *time.Time               `json:"date"`
	Status    *models.AttendanceStatus `json:"status"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // username or email
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type LogFilters struct {
	UserID   *uint             `json:"user_id"`
	Action   *models.LogAction `json:"action"`
	DateFrom *time.Time        `json:"date_from"`
	DateTo   *time.Time        `json:"date_to"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// AttendanceTotals are the raw aggregate counts over a date window.
type AttendanceTotals struct {
	TotalRecords        int64 `json:"total_records"`
	Present             int64 `json:"present"`
	AbsentWithReason    int64 `json:"absent_with_reason"`
	AbsentWithoutReason int64 `json:"absent_without_reason"`
	DistinctStudents    int64 `json:"distinct_students"`
}

type OverviewCounts struct {
	Companies          int64 `json:"companies"`
	Students           int64 `json:"students"`
	Supervisors        int64 `json:"supervisors"`
	PendingVisits      int64 `json:"pending_visits"`
	PendingAssignments int64 `json:"pending_assignments"`
	OpenRequests       int64 `json:"open_requests"`
}

// ===== ENTITY REPOSITORIES =====

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Company, int64, error)
	StudentCount(ctx context.Context, id uint) (int64, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
}

type VisitRepository interface {
	Create(ctx context.Context, visit *models.Visit) error
	GetByID(ctx context.Context, id uint) (*models.Visit, error)
	Update(ctx context.Context, visit *models.Visit) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters VisitFilters) ([]*models.Visit, int64, error)
}

type EvaluationRequestRepository interface {
	Create(ctx context.Context, req *models.EvaluationRequest) error
	GetByID(ctx context.Context, id uint) (*models.EvaluationRequest, error)
	GetByIDWithTargets(ctx context.Context, id uint) (*models.EvaluationRequest, error)
	Update(ctx context.Context, req *models.EvaluationRequest) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.EvaluationRequest, int64, error)
	ReplaceTargets(ctx context.Context, id uint, companyIDs, studentIDs []uint) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.AssignedEvaluation) error
	GetByID(ctx context.Context, id uint) (*models.AssignedEvaluation, error)
	GetByIDWithEvaluation(ctx context.Context, id uint) (*models.AssignedEvaluation, error)
	Update(ctx context.Context, assignment *models.AssignedEvaluation) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters AssignmentFilters) ([]*models.AssignedEvaluation, int64, error)
}

type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id uint) (*models.Evaluation, error)
	GetByAssignment(ctx context.Context, assignmentID uint) (*models.Evaluation, error)
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters EvaluationFilters) ([]*models.Evaluation, int64, error)
}

type TrainingDayRepository interface {
	Create(ctx context.Context, day *models.TrainingDay) error
	GetByID(ctx context.Context, id uint) (*models.TrainingDay, error)
	GetByDate(ctx context.Context, date time.Time) (*models.TrainingDay, error)
	Update(ctx context.Context, day *models.TrainingDay) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.TrainingDay, int64, error)
}

type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	GetByID(ctx context.Context, id uint) (*models.AttendanceRecord, error)
	GetByStudentAndDate(ctx context.Context, studentID uint, date time.Time) (*models.AttendanceRecord, error)
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters AttendanceFilters) ([]*models.AttendanceRecord, int64, error)
	ExistsForStudentAndDate(ctx context.Context, studentID uint, date time.Time) (bool, error)

	// Reporting
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.AttendanceRecord, error)
	GetTotals(ctx context.Context, from, to time.Time) (*AttendanceTotals, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	Update(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Notification, int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type SystemLogRepository interface {
	// Append only; there is no update or delete.
	Create(ctx context.Context, entry *models.SystemLog) error
	List(ctx context.Context, filters LogFilters) ([]*models.SystemLog, int64, error)
}

type DashboardRepository interface {
	GetOverviewCounts(ctx context.Context) (*OverviewCounts, error)
	GetAttendanceTotalsForDate(ctx context.Context, date time.Time) (*AttendanceTotals, error)
}
