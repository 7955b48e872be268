package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/audit"
	"github.com/jtsistemas/agenda-api/internal/cache"
	"github.com/jtsistemas/agenda-api/internal/config"
	"github.com/jtsistemas/agenda-api/internal/handlers"
	infraRepo "github.com/jtsistemas/agenda-api/internal/infra/repository"
	"github.com/jtsistemas/agenda-api/internal/middleware"
	"github.com/jtsistemas/agenda-api/internal/storage"
	ucAppointment "github.com/jtsistemas/agenda-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	cacheStore *cache.Cache,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	historyRecorder := audit.NewHistoryRecorder(db, log)

	var photos *storage.PhotoStorage
	if cfg.S3AccessKey != "" {
		photos = storage.NewPhotoStorage(cfg)
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		historyRecorder,
		log,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
		historyRecorder,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		historyRecorder,
		log,
	)

	startAppointmentUC := ucAppointment.NewStartAppointment(
		appointmentRepo,
		auditDispatcher,
		historyRecorder,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		historyRecorder,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		historyRecorder,
		log,
	)

	rateAppointmentUC := ucAppointment.NewRateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	markPaidUC := ucAppointment.NewMarkAppointmentPaid(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db, auditDispatcher)

	clientHandler := handlers.NewClientHandler(db, photos, auditDispatcher)
	employeeHandler := handlers.NewEmployeeHandler(db, photos, auditDispatcher)
	positionHandler := handlers.NewPositionHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	categoryHandler := handlers.NewServiceCategoryHandler(db, auditDispatcher)
	packageHandler := handlers.NewPackageHandler(db, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		startAppointmentUC,
		completeAppointmentUC,
		rescheduleAppointmentUC,
		rateAppointmentUC,
		markPaidUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	notificationHandler := handlers.NewNotificationHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, cacheStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)

			secured.GET("/company", companyHandler.Get)
			secured.PATCH("/company", companyHandler.Update)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.POST("/clients/:id/photo", clientHandler.UploadPhoto)

			// ------------------------------
			// EMPLOYEES
			// ------------------------------
			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.GET("/employees/:id", employeeHandler.Get)
			secured.PUT("/employees/:id", employeeHandler.Update)
			secured.DELETE("/employees/:id", employeeHandler.Delete)
			secured.POST("/employees/:id/photo", employeeHandler.UploadPhoto)

			secured.GET("/positions", positionHandler.List)
			secured.POST("/positions", positionHandler.Create)
			secured.PUT("/positions/:id", positionHandler.Update)
			secured.DELETE("/positions/:id", positionHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/service-categories", categoryHandler.List)
			secured.POST("/service-categories", categoryHandler.Create)
			secured.PUT("/service-categories/:id", categoryHandler.Update)
			secured.DELETE("/service-categories/:id", categoryHandler.Delete)

			secured.GET("/packages", packageHandler.List)
			secured.POST("/packages", packageHandler.Create)
			secured.GET("/packages/:id", packageHandler.Get)
			secured.PUT("/packages/:id", packageHandler.Update)
			secured.DELETE("/packages/:id", packageHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/history", appointmentHandler.History)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/rate", appointmentHandler.Rate)
			secured.PATCH("/appointments/:id/pay", appointmentHandler.MarkPaid)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.POST("/notifications", notificationHandler.Create)
			secured.PATCH("/notifications/:id/sent", notificationHandler.MarkSent)
			secured.PATCH("/notifications/:id/delivered", notificationHandler.MarkDelivered)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.PATCH("/notifications/:id/error", notificationHandler.MarkError)

			secured.GET("/dashboard", dashboardHandler.Get)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
