package routes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/config"
	clientdomain "github.com/cema-health/program-manager/internal/domain/client"
	"github.com/cema-health/program-manager/internal/handlers"
	infraRepo "github.com/cema-health/program-manager/internal/infra/repository"
	"github.com/cema-health/program-manager/internal/metrics"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/session"
	"github.com/cema-health/program-manager/internal/timezone"
	"github.com/cema-health/program-manager/internal/token"
	ucAppointment "github.com/cema-health/program-manager/internal/usecase/appointment"
	ucAuth "github.com/cema-health/program-manager/internal/usecase/auth"
	ucClient "github.com/cema-health/program-manager/internal/usecase/client"
	ucEnrollment "github.com/cema-health/program-manager/internal/usecase/enrollment"
	ucNotification "github.com/cema-health/program-manager/internal/usecase/notification"
	ucProgram "github.com/cema-health/program-manager/internal/usecase/program"
	ucUser "github.com/cema-health/program-manager/internal/usecase/user"
	"github.com/cema-health/program-manager/internal/validators"
)

// Deps are the process-wide singletons the router is built from. Metrics and
// Limiter are optional.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *slog.Logger
	Sessions session.Store
	Metrics  *metrics.Provider
	Limiter  *middleware.IPRateLimiter
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {
	cfg := deps.Config
	log := deps.Log

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID(), middleware.RequestLogger(log))

	if deps.Metrics != nil {
		mw, err := middleware.Metrics(deps.Metrics.Meter())
		if err != nil {
			return fmt.Errorf("metrics middleware: %w", err)
		}
		r.Use(mw)
	}

	r.Use(middleware.CORSMiddleware(cfg.Server.CORS.AllowOrigins))

	if deps.Limiter != nil {
		r.Use(middleware.RateLimitMiddleware(deps.Limiter))
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	az, err := authz.NewAuthorizer()
	if err != nil {
		return fmt.Errorf("authorizer: %w", err)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}

	loc := timezone.Location(cfg.Clinic.Timezone)
	clock := timezone.NewClock(cfg.Clinic.Timezone)
	contacts := validators.NewContacts(cfg.Clinic.PhoneRegion, cfg.Clinic.CheckEmailDomain)
	tokens := token.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	auditLogger := audit.New(deps.DB, log)

	programRepo := infraRepo.NewProgramGormRepository(deps.DB)
	clientRepo := infraRepo.NewClientGormRepository(deps.DB)
	enrollmentRepo := infraRepo.NewEnrollmentGormRepository(deps.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(deps.DB)
	userRepo := infraRepo.NewUserGormRepository(deps.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	programUC := handlers.ProgramUseCases{
		Add:    ucProgram.NewAddProgram(programRepo, az, auditLogger, clock),
		Edit:   ucProgram.NewEditProgram(programRepo, az, auditLogger, clock),
		Delete: ucProgram.NewDeleteProgram(programRepo, az, auditLogger),
		List:   ucProgram.NewListPrograms(programRepo, az),
		Get:    ucProgram.NewGetProgram(programRepo, az),
	}

	clientUC := handlers.ClientUseCases{
		Register:    ucClient.NewRegisterClient(clientRepo, az, auditLogger, clock, contacts),
		Search:      ucClient.NewSearchClients(clientRepo, az, clock, clientdomain.AgeMode(cfg.Search.AgeMode), log),
		QuickSearch: ucClient.NewQuickSearch(clientRepo, az),
		Profile:     ucClient.NewGetProfile(clientRepo, az, clock),
	}

	enrollmentUC := handlers.EnrollmentUseCases{
		Enroll:   ucEnrollment.NewEnrollClient(enrollmentRepo, notificationRepo, az, auditLogger, clock, log),
		List:     ucEnrollment.NewListClientEnrollments(enrollmentRepo, az),
		Drop:     ucEnrollment.NewDropEnrollment(enrollmentRepo, az, auditLogger),
		Complete: ucEnrollment.NewCompleteEnrollment(enrollmentRepo, az, auditLogger),
	}

	appointmentUC := handlers.AppointmentUseCases{
		Schedule: ucAppointment.NewScheduleAppointment(appointmentRepo, notificationRepo, az, auditLogger, clock, log),
		Confirm:  ucAppointment.NewConfirmAppointment(appointmentRepo, az, auditLogger),
		Cancel:   ucAppointment.NewCancelAppointment(appointmentRepo, az, auditLogger),
	}

	notificationUC := handlers.NotificationUseCases{
		List:     ucNotification.NewListNotifications(notificationRepo, az),
		MarkRead: ucNotification.NewMarkNotificationRead(notificationRepo, az),
	}

	userUC := handlers.UserUseCases{
		Add:    ucUser.NewAddUser(userRepo, az, auditLogger, clock, contacts),
		Delete: ucUser.NewDeleteUser(userRepo, deps.Sessions, az, auditLogger),
		View:   ucUser.NewViewUser(userRepo, az),
		List:   ucUser.NewListUsers(userRepo, az),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAuth.NewLogin(userRepo, deps.Sessions, tokens, auditLogger, clock, log),
		ucAuth.NewLogout(deps.Sessions),
		ucUser.NewMe(userRepo),
		cfg.Auth,
		log,
	)
	programHandler := handlers.NewProgramHandler(programUC, loc, log)
	clientHandler := handlers.NewClientHandler(clientUC, loc, log)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentUC, log)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, loc, log)
	notificationHandler := handlers.NewNotificationHandler(notificationUC, log)
	userHandler := handlers.NewUserHandler(userUC, loc, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, az, loc, log)
	healthHandler := handlers.NewHealthHandler(sqlDB)

	authn := middleware.NewAuthenticator(deps.Sessions, tokens, cfg.Auth.CookieName, log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	if deps.Metrics != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(authn.Required())
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// PROGRAMS
			// ------------------------------
			secured.GET("/programs", programHandler.List)
			secured.POST("/programs", programHandler.Create)
			secured.GET("/programs/:id", programHandler.Get)
			secured.PUT("/programs/:id", programHandler.Update)
			secured.DELETE("/programs/:id", programHandler.Delete)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.POST("/clients", clientHandler.Register)
			secured.GET("/clients/search", clientHandler.QuickSearch)
			secured.GET("/search-clients", clientHandler.Search)
			secured.GET("/client/:id", clientHandler.Profile)

			// ------------------------------
			// ENROLLMENTS
			// ------------------------------
			secured.GET("/clients/:id/enrollments", enrollmentHandler.ListByClient)
			secured.POST("/clients/:id/enroll", enrollmentHandler.Enroll)
			secured.PATCH("/enrollments/:id/drop", enrollmentHandler.Drop)
			secured.PATCH("/enrollments/:id/complete", enrollmentHandler.Complete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// USERS
			// ------------------------------
			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.GET("/users/:id", userHandler.Get)
			secured.DELETE("/users/:id", userHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
