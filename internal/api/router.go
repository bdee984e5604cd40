package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devcollab/devcollab-api/internal/api/handler"
	"github.com/devcollab/devcollab-api/internal/api/middleware"
	"github.com/devcollab/devcollab-api/internal/core/domain"
	"github.com/devcollab/devcollab-api/internal/core/service"
	mongodb "github.com/devcollab/devcollab-api/internal/infrastructure/db/mongo"
	"github.com/devcollab/devcollab-api/internal/ws"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The hub must already be running.
func NewRouter(db *mongo.Database, rdb *redis.Client, hub *ws.Hub, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devcollab"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	authService := service.NewAuthService(userRepo, jwtSecret, 0) // default 7-day TTL
	adminService := service.NewAdminService(userRepo, projectRepo, messageRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	wsHandler := ws.NewHandler(hub, userRepo, jwtSecret, log)

	requireAuth := middleware.Auth(jwtSecret)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Admin routes: every route passes the auth and role gates ---
	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/users/:id/role", adminHandler.SetUserRole)
	admin.GET("/users/chart", adminHandler.UsersChart)
	admin.GET("/users/roles", adminHandler.UserRoles)
	admin.GET("/projects", adminHandler.ListProjects)
	admin.DELETE("/projects/:id", adminHandler.DeleteProject)
	admin.GET("/projects/chart", adminHandler.ProjectsChart)
	admin.GET("/messages", adminHandler.ListMessages)
	admin.DELETE("/messages/:id", adminHandler.DeleteMessage)
	admin.GET("/messages/chart", adminHandler.MessagesChart)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/charts", adminHandler.Charts)

	// --- Presence channel (authenticates inside the handshake) ---
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
