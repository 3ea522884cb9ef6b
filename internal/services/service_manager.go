package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NCHRD-2025/training-service/internal/cache"
	"github.com/NCHRD-2025/training-service/internal/events"
	"github.com/NCHRD-2025/training-service/internal/repositories"
	"github.com/NCHRD-2025/training-service/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher

	companyService      CompanyService
	studentService      StudentService
	visitService        VisitService
	evaluationService   EvaluationService
	attendanceService   AttendanceService
	reportService       ReportService
	exportService       ExportService
	notificationService NotificationService
	auditService        AuditService
	userService         UserService
	dashboardService    DashboardService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
// publisher may be nil when no broker is configured; cache may be nil when
// Redis is absent. Every service degrades gracefully without them.
func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cm *cache.CacheManager,
	publisher events.EventPublisher,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		cache:     cm,
		publisher: publisher,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.auditService = NewAuditService(sm.repo, sm.logger, sm.publisher)
	sm.notificationService = NewNotificationService(sm.repo, sm.logger, sm.publisher)

	sm.companyService = NewCompanyService(sm.repo, sm.logger, sm.validator, sm.auditService)
	sm.studentService = NewStudentService(sm.repo, sm.logger, sm.validator, sm.auditService, sm.cache)
	sm.visitService = NewVisitService(sm.repo, sm.logger, sm.validator, sm.auditService)
	sm.evaluationService = NewEvaluationService(sm.repo, sm.logger, sm.validator, sm.auditService, sm.notificationService, sm.publisher)
	sm.attendanceService = NewAttendanceService(sm.repo, sm.logger, sm.validator, sm.auditService, sm.cache)
	sm.reportService = NewReportService(sm.repo, sm.logger, sm.validator, sm.cache)
	sm.exportService = NewExportService(sm.logger)
	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator, sm.auditService)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger, sm.cache)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Company() CompanyService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.companyService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.studentService
}

func (sm *serviceManager) Visit() VisitService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.visitService
}

func (sm *serviceManager) Evaluation() EvaluationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.evaluationService
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.attendanceService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.reportService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.exportService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.notificationService
}

func (sm *serviceManager) Audit() AuditService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.auditService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.userService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")

	return nil
}
