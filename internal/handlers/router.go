package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NCHRD-2025/training-service/internal/models"
	"github.com/NCHRD-2025/training-service/internal/services"
	"github.com/NCHRD-2025/training-service/internal/utils"
)

type HandlerManager struct {
	userHandler         *UserHandler
	companyHandler      *CompanyHandler
	studentHandler      *StudentHandler
	visitHandler        *VisitHandler
	evaluationHandler   *EvaluationHandler
	attendanceHandler   *AttendanceHandler
	reportHandler       *ReportHandler
	notificationHandler *NotificationHandler
	dashboardHandler    *DashboardHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	authMiddleware *JWTAuthMiddleware,
) *HandlerManager {
	return &HandlerManager{
		userHandler:         NewUserHandler(serviceManager.User(), authMiddleware, logger),
		companyHandler:      NewCompanyHandler(serviceManager.Company(), logger),
		studentHandler:      NewStudentHandler(serviceManager.Student(), logger),
		visitHandler:        NewVisitHandler(serviceManager.Visit(), logger),
		evaluationHandler:   NewEvaluationHandler(serviceManager.Evaluation(), logger),
		attendanceHandler:   NewAttendanceHandler(serviceManager.Attendance(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), serviceManager.Export(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Audit(), logger),
		authMiddleware:      authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/v1/auth/login", hm.userHandler.Login)

	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware()) // Apply authentication to all API routes
	{
		// Own account
		v1.GET("/profile", hm.userHandler.GetProfile)
		v1.PUT("/profile/password", hm.userHandler.ChangePassword)

		// User management - Admins only
		users := v1.Group("/users")
		users.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		// Company routes - management staff
		companies := v1.Group("/companies")
		companies.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleSupervisor))
		{
			companies.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.companyHandler.CreateCompany)
			companies.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.companyHandler.UpdateCompany)
			companies.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.companyHandler.DeleteCompany)
			companies.GET("", hm.companyHandler.ListCompanies)
			companies.GET("/:id", hm.companyHandler.GetCompany)
		}

		// Student routes - management staff
		students := v1.Group("/students")
		students.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleSupervisor))
		{
			students.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.studentHandler.CreateStudent)
			students.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.studentHandler.DeleteStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
		}

		// Visit routes - supervisors record, management reads
		visits := v1.Group("/visits")
		visits.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleSupervisor))
		{
			visits.POST("", hm.visitHandler.CreateVisit)
			visits.GET("", hm.visitHandler.ListVisits)
			visits.GET("/:id", hm.visitHandler.GetVisit)
			visits.PUT("/:id", hm.visitHandler.UpdateVisit)
			visits.DELETE("/:id", hm.visitHandler.DeleteVisit)
		}

		// Evaluation request routes - Managers and Admins only
		requests := v1.Group("/evaluation-requests")
		requests.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager))
		{
			requests.POST("", hm.evaluationHandler.CreateRequest)
			requests.GET("", hm.evaluationHandler.ListRequests)
			requests.GET("/:id", hm.evaluationHandler.GetRequest)
			requests.PUT("/:id", hm.evaluationHandler.UpdateRequest)
			requests.DELETE("/:id", hm.evaluationHandler.DeleteRequest)
		}

		// Assignment workflow routes - Managers and Admins only
		assignments := v1.Group("/assigned-evaluations")
		assignments.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager))
		{
			assignments.POST("", hm.evaluationHandler.CreateAssignment)
			assignments.GET("", hm.evaluationHandler.ListAssignments)
			assignments.GET("/:id", hm.evaluationHandler.GetAssignment)
			assignments.PUT("/:id/status", hm.evaluationHandler.UpdateAssignmentStatus)
			assignments.DELETE("/:id", hm.evaluationHandler.DeleteAssignment)
		}

		// Evaluation routes - supervisors submit, management reads
		evaluations := v1.Group("/evaluations")
		evaluations.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleSupervisor))
		{
			evaluations.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleSupervisor), hm.evaluationHandler.SubmitEvaluation)
			evaluations.GET("", hm.evaluationHandler.ListEvaluations)
			evaluations.GET("/:id", hm.evaluationHandler.GetEvaluation)
			evaluations.PUT("/:id", hm.evaluationHandler.UpdateEvaluation)
			evaluations.DELETE("/:id", hm.evaluationHandler.DeleteEvaluation)
		}

		// Training calendar - everyone reads, management maintains
		trainingDays := v1.Group("/training-days")
		{
			trainingDays.GET("", hm.attendanceHandler.ListTrainingDays)
			trainingDays.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.attendanceHandler.CreateTrainingDay)
			trainingDays.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.attendanceHandler.UpdateTrainingDay)
			trainingDays.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.attendanceHandler.DeleteTrainingDay)
		}

		// Attendance routes - recorded in the field, reviewed by management
		attendance := v1.Group("/attendance")
		attendance.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleSupervisor, models.RoleInstitution))
		{
			attendance.POST("", hm.attendanceHandler.RecordAttendance)
			attendance.GET("", hm.attendanceHandler.ListAttendance)
			attendance.GET("/:id", hm.attendanceHandler.GetAttendance)
			attendance.PUT("/:id", hm.attendanceHandler.UpdateAttendance)
			attendance.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.attendanceHandler.DeleteAttendance)
		}

		// Report routes
		reports := v1.Group("/reports")
		reports.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleSupervisor))
		{
			reports.GET("/attendance/daily", hm.reportHandler.DailyReport)
			reports.GET("/attendance/weekly", hm.reportHandler.WeeklyReport)
			reports.GET("/attendance/monthly", hm.reportHandler.MonthlyReport)
			reports.GET("/attendance/export", hm.reportHandler.ExportAttendance)
		}

		// Notification routes - all authenticated users
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.GET("/unread-count", hm.notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
		}

		// Dashboard routes - Managers and Admins only
		dashboard := v1.Group("/dashboard")
		dashboard.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleManager))
		{
			dashboard.GET("/overview", hm.dashboardHandler.Overview)
		}

		// Audit trail - Admins only
		logs := v1.Group("/logs")
		logs.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			logs.GET("", hm.dashboardHandler.ListLogs)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "training-service",
		})
	})
}
