package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devhire/jobboard/docs"
	"github.com/devhire/jobboard/internal/api/handler"
	"github.com/devhire/jobboard/internal/api/middleware"
	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/service"
	mongodb "github.com/devhire/jobboard/internal/infrastructure/db/mongo"
	redisdb "github.com/devhire/jobboard/internal/infrastructure/db/redis"
	"github.com/devhire/jobboard/internal/pkg/config"
	"github.com/devhire/jobboard/pkg/logger"
)

// Router bundles the Echo instance with the services that need an
// orderly shutdown.
type Router struct {
	Echo     *echo.Echo
	Profiles *service.ProfileService
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *Router {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Component("http"))
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	skillRepo := mongodb.NewSkillRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, sessionStore, cfg.JWTSecret, cfg.SessionTTL, logger.Component("auth"))
	profileService := service.NewProfileService(accountRepo, cfg.AutoSaveDebounce, logger.Component("profile"))
	jobService := service.NewJobService(jobRepo, skillRepo, accountRepo, logger.Component("jobs"))
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, logger.Component("applications"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService, authService)
	jobHandler := handler.NewJobHandler(jobService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	skillHandler := handler.NewSkillHandler(skillRepo)

	authRequired := middleware.Auth(authService)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Users ---
	users := e.Group("/v1/users", authRequired)
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	users.PATCH("/me", userHandler.UpdateMe)
	users.GET("/me/saved-jobs", userHandler.SavedJobs)
	users.PUT("/me/saved-jobs/:id", userHandler.ToggleSavedJob)
	users.GET("/:id", userHandler.Get)

	// --- Profile edit sessions ---
	profile := e.Group("/v1/profile", authRequired)
	profile.GET("/status", profileHandler.Status)
	profile.POST("/edit", profileHandler.Begin)
	profile.PATCH("/edit/fields", profileHandler.FieldChange)
	profile.POST("/edit/skills", profileHandler.SkillAdd)
	profile.DELETE("/edit/skills/:id", profileHandler.SkillRemove)
	profile.POST("/edit/cancel", profileHandler.Cancel)
	profile.POST("/draft", profileHandler.SaveDraft)
	profile.POST("/publish", profileHandler.Publish)
	profile.POST("/discard", profileHandler.Discard)

	// --- Jobs ---
	jobs := e.Group("/v1/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/recommendations", jobHandler.Recommendations, authRequired, middleware.RBAC(domain.RoleDeveloper))
	jobs.GET("/:id", jobHandler.Get)
	jobs.POST("", jobHandler.Create, authRequired, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	jobs.PATCH("/:id", jobHandler.Update, authRequired, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	jobs.DELETE("/:id", jobHandler.Delete, authRequired, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	jobs.GET("/:id/applications", applicationHandler.ListByJob, authRequired, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))

	// --- Applications ---
	applications := e.Group("/v1/applications", authRequired)
	applications.POST("", applicationHandler.Apply, middleware.RBAC(domain.RoleDeveloper))
	applications.GET("", applicationHandler.ListMine)
	applications.PATCH("/:id", applicationHandler.UpdateStatus, middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin))
	applications.DELETE("/:id", applicationHandler.Withdraw)

	// --- Skills ---
	e.GET("/v1/skills", skillHandler.List)

	return &Router{Echo: e, Profiles: profileService}
}
