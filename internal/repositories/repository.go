package repositories

import "context"

// Repository aggregates all entity repositories behind one interface.
type Repository interface {
	// Organization domain
	Company() CompanyRepository
	Student() StudentRepository

	// Supervision domain
	Visit() VisitRepository

	// Evaluation domain
	EvaluationRequest() EvaluationRequestRepository
	Assignment() AssignmentRepository
	Evaluation() EvaluationRepository

	// Attendance domain
	TrainingDay() TrainingDayRepository
	Attendance() AttendanceRepository

	// User domain
	User() UserRepository

	// Side-effect sinks
	Notification() NotificationRepository
	SystemLog() SystemLogRepository

	// Dashboard domain
	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
