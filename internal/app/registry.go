package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-leaveflow/internal/access"
	"go-leaveflow/internal/auth"
	"go-leaveflow/internal/config"
	"go-leaveflow/internal/dashboard"
	"go-leaveflow/internal/employee"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/middleware"
	"go-leaveflow/internal/observability"
	"go-leaveflow/internal/profile"
	"go-leaveflow/internal/session"
	"go-leaveflow/internal/shared/apperror"
	"go-leaveflow/internal/shared/response"
)

const idempotencyTTL = 24 * time.Hour

// identityBridge breaks the construction cycle between auth, which mirrors
// new identities onto profiles, and profile, which provisions identities.
type identityBridge struct {
	auth.Service
}

func registerModules(router *gin.Engine, infra *Infra, cfg config.Config) error {
	db, gormDB, rdb := infra.SQLDB, infra.GormDB, infra.Redis

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Access & sessions ---
	accessService, err := access.NewDefaultService()
	if err != nil {
		return err
	}
	sessionStore := session.NewRedisStore(rdb, cfg.SessionTTL)
	tokens := session.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	resolver := session.NewResolver(profileRepo)
	authenticate := middleware.Authenticate(tokens, sessionStore, resolver)

	// --- Services ---
	identities := &identityBridge{}
	profileService := profile.NewService(db, profileRepo, outboxRepo, identities, sessionStore, cfg.SelfDemotionSignoutDelay)
	authService := auth.NewService(authRepo, sessionStore, tokens, profileService, auth.Options{
		SessionTTL:         cfg.SessionTTL,
		SignupDefaultRole:  cfg.SignupDefaultRole,
		TempPasswordLength: cfg.TempPasswordLength,
	})
	identities.Service = authService

	employeeService := employee.NewService(employeeRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, employeeService, profileService, leave.Options{
		Location: cfg.Location(),
	})
	dashboardService := dashboard.NewService(dashboardRepo)

	// --- Observability ---
	metrics := observability.NewMetrics()
	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", observability.Healthz(2*time.Second,
		observability.PingCheck("postgres", db),
		observability.RedisCheck(rdb),
	))

	// --- Routes Registration ---
	ipLimit := middleware.RateLimitByIP(20, 40)

	// The leave backend is served at the root, everything else under /api.
	root := router.Group("")
	root.Use(ipLimit)
	leave.RegisterRoutes(root, leave.NewHandler(leaveService), accessService, authenticate,
		middleware.Idempotency(rdb, idempotencyTTL))

	api := router.Group("/api")
	api.Use(ipLimit)
	{
		auth.RegisterRoutes(api, auth.NewHandler(authService, accessService, cfg.CookieSecure), authenticate)
		access.RegisterRoutes(api, access.NewHandler(accessService), authenticate)
		profile.RegisterRoutes(api, profile.NewHandler(profileService), accessService, authenticate)
		employee.RegisterRoutes(api, employee.NewHandler(employeeService), accessService, authenticate)
		dashboard.RegisterRoutes(api, dashboard.NewHandler(dashboardService), accessService, authenticate)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Route not found", nil)
	})
	return nil
}
