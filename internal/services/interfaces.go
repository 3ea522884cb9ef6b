package services

import (
	"context"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

// ===== SHARED RESPONSE TYPES =====

// ListResponse wraps a page of results with the total count.
type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// DateRange is the inclusive window a report covers.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AttendanceReport is the aggregate view over a reporting window.
type AttendanceReport struct {
	Period              string                     `json:"period"`
	TotalStudents       int64                      `json:"total_students"`
	TotalRecords        int64                      `json:"total_records"`
	Present             int64                      `json:"present"`
	AbsentWithReason    int64                      `json:"absent_with_reason"`
	AbsentWithoutReason int64                      `json:"absent_without_reason"`
	AttendanceRate      float64                    `json:"attendance_rate"`
	DateRange           DateRange                  `json:"date_range"`
	Records             []*models.AttendanceRecord `json:"records"`
}

// DashboardOverview is the landing-page summary.
type DashboardOverview struct {
	Companies          int64   `json:"companies"`
	Students           int64   `json:"students"`
	Supervisors        int64   `json:"supervisors"`
	PendingVisits      int64   `json:"pending_visits"`
	PendingAssignments int64   `json:"pending_assignments"`
	OpenRequests       int64   `json:"open_requests"`
	TodayPresent       int64   `json:"today_present"`
	TodayAbsent        int64   `json:"today_absent"`
	TodayRate          float64 `json:"today_rate"`
}

// ===== SERVICE INTERFACES =====

type CompanyService interface {
	Create(ctx context.Context, actor *models.Principal, req *validator.CompanyCreateRequest) (*models.Company, error)
	GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.Company, error)
	Update(ctx context.Context, actor *models.Principal, id uint, req *validator.CompanyUpdateRequest) (*models.Company, error)
	Delete(ctx context.Context, actor *models.Principal, id uint) error
	List(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.Company], error)
}

type StudentService interface {
	Create(ctx context.Context, actor *models.Principal, req *validator.StudentCreateRequest) (*models.Student, error)
	GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.Student, error)
	Update(ctx context.Context, actor *models.Principal, id uint, req *validator.StudentUpdateRequest) (*models.Student, error)
	Delete(ctx context.Context, actor *models.Principal, id uint) error
	List(ctx context.Context, actor *models.Principal, filters repositories.StudentFilters) (*ListResponse[*models.Student], error)
}

type VisitService interface {
	Create(ctx context.Context, actor *models.Principal, req *validator.VisitCreateRequest) (*models.Visit, error)
	GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.Visit, error)
	Update(ctx context.Context, actor *models.Principal, id uint, req *validator.VisitUpdateRequest) (*models.Visit, error)
	Delete(ctx context.Context, actor *models.Principal, id uint) error
	List(ctx context.Context, actor *models.Principal, filters repositories.VisitFilters) (*ListResponse[*models.Visit], error)
}

type EvaluationService interface {
	// Requests
	CreateRequest(ctx context.Context, actor *models.Principal, req *validator.EvaluationRequestCreateRequest) (*models.EvaluationRequest, error)
	GetRequest(ctx context.Context, actor *models.Principal, id uint) (*models.EvaluationRequest, error)
	UpdateRequest(ctx context.Context, actor *models.Principal, id uint, req *validator.EvaluationRequestUpdateRequest) (*models.EvaluationRequest, error)
	DeleteRequest(ctx context.Context, actor *models.Principal, id uint) error
	ListRequests(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.EvaluationRequest], error)

	// Assignments
	CreateAssignment(ctx context.Context, actor *models.Principal, req *validator.AssignmentCreateRequest) (*models.AssignedEvaluation, error)
	GetAssignment(ctx context.Context, actor *models.Principal, id uint) (*models.AssignedEvaluation, error)
	UpdateAssignmentStatus(ctx context.Context, actor *models.Principal, id uint, req *validator.AssignmentStatusRequest) (*models.AssignedEvaluation, error)
	DeleteAssignment(ctx context.Context, actor *models.Principal, id uint) error
	ListAssignments(ctx context.Context, actor *models.Principal, filters repositories.AssignmentFilters) (*ListResponse[*models.AssignedEvaluation], error)

	// Final evaluations
	Submit(ctx context.Context, actor *models.Principal, req *validator.EvaluationSubmitRequest) (*models.Evaluation, error)
	GetEvaluation(ctx context.Context, actor *models.Principal, id uint) (*models.Evaluation, error)
	UpdateEvaluation(ctx context.Context, actor *models.Principal, id uint, req *validator.EvaluationUpdateRequest) (*models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, actor *models.Principal, id uint) error
	ListEvaluations(ctx context.Context, actor *models.Principal, filters repositories.EvaluationFilters) (*ListResponse[*models.Evaluation], error)
}

type AttendanceService interface {
	// Training days
	CreateTrainingDay(ctx context.Context, actor *models.Principal, req *validator.TrainingDayRequest) (*models.TrainingDay, error)
	UpdateTrainingDay(ctx context.Context, actor *models.Principal, id uint, req *validator.TrainingDayRequest) (*models.TrainingDay, error)
	DeleteTrainingDay(ctx context.Context, actor *models.Principal, id uint) error
	ListTrainingDays(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.TrainingDay], error)

	// Attendance records
	Record(ctx context.Context, actor *models.Principal, req *validator.AttendanceCreateRequest) (*models.AttendanceRecord, error)
	GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.AttendanceRecord, error)
	Update(ctx context.Context, actor *models.Principal, id uint, req *validator.AttendanceUpdateRequest) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, actor *models.Principal, id uint) error
	List(ctx context.Context, actor *models.Principal, filters repositories.AttendanceFilters) (*ListResponse[*models.AttendanceRecord], error)
}

type ReportService interface {
	Daily(ctx context.Context, actor *models.Principal, date string) (*AttendanceReport, error)
	Weekly(ctx context.Context, actor *models.Principal, week string) (*AttendanceReport, error)
	Monthly(ctx context.Context, actor *models.Principal, month string) (*AttendanceReport, error)
}

type ExportService interface {
	// AttendanceXLSX renders a report as a spreadsheet and returns the bytes.
	AttendanceXLSX(ctx context.Context, actor *models.Principal, report *AttendanceReport) ([]byte, error)
}

type NotificationService interface {
	Notify(ctx context.Context, userID uint, title, message string) error
	ListForUser(ctx context.Context, actor *models.Principal, limit, offset int) (*ListResponse[*models.Notification], error)
	UnreadCount(ctx context.Context, actor *models.Principal) (int64, error)
	MarkRead(ctx context.Context, actor *models.Principal, id uint) (*models.Notification, error)
}

type AuditService interface {
	// Record writes an audit entry. A nil actor is a silent no-op; a
	// failure is logged and swallowed, never returned to the caller.
	Record(ctx context.Context, actor *models.Principal, action models.LogAction, detail string, logContext map[string]any)
	ListLogs(ctx context.Context, actor *models.Principal, filters repositories.LogFilters) (*ListResponse[*models.SystemLog], error)
}

type UserService interface {
	Create(ctx context.Context, actor *models.Principal, req *validator.UserCreateRequest) (*models.User, error)
	GetByID(ctx context.Context, actor *models.Principal, id uint) (*models.User, error)
	Update(ctx context.Context, actor *models.Principal, id uint, req *validator.UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, actor *models.Principal, id uint) error
	List(ctx context.Context, actor *models.Principal, filters repositories.UserFilters) (*ListResponse[*models.User], error)

	// Authenticate verifies credentials and returns the active user.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ChangePassword(ctx context.Context, actor *models.Principal, req *validator.ChangePasswordRequest) error
}

type DashboardService interface {
	Overview(ctx context.Context, actor *models.Principal) (*DashboardOverview, error)
}

// ServiceManager wires every service behind one lifecycle.
type ServiceManager interface {
	Company() CompanyService
	Student() StudentService
	Visit() VisitService
	Evaluation() EvaluationService
	Attendance() AttendanceService
	Report() ReportService
	Export() ExportService
	Notification() NotificationService
	Audit() AuditService
	User() UserService
	Dashboard() DashboardService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Period string layouts accepted by the report service.
const (
	DailyPeriodLayout   = "2006-01-02"
	MonthlyPeriodLayout = "2006-01"
)
