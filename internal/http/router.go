package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/schoolapp/internal/audit"
	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/config"
	"github.com/mrlokans/schoolapp/internal/database"
	"github.com/mrlokans/schoolapp/internal/logging"
)

// RouterConfig contains all dependencies needed to build the HTTP router.
type RouterConfig struct {
	AuthService *auth.Service
	// RateLimiter throttles POST /auth/token. Optional.
	RateLimiter *auth.RateLimiter

	Database *database.Database
	Users    UserCounter
	// Audit records and lists auth events. Optional.
	Audit *audit.Service

	CORS    config.CORS
	Logger  zerolog.Logger
	Version string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.GinLogger(cfg.Logger))
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(corsMiddleware(cfg.CORS))

	health := NewHealthController(cfg.Database, cfg.Users, cfg.Version)
	router.GET("/", health.Root)
	router.GET("/health", health.Status)
	router.GET("/test", health.Status)

	// A nil *audit.Service must stay a nil interface.
	var eventLogger AuthEventLogger
	var eventReader AuthEventReader
	if cfg.Audit != nil {
		eventLogger = cfg.Audit
		eventReader = cfg.Audit
	}

	authController := NewAuthController(cfg.AuthService, cfg.RateLimiter, eventLogger)
	authController.RegisterRoutes(router)

	users := NewUsersController(eventReader)
	protected := router.Group("/", auth.NewMiddleware(cfg.AuthService).RequireAuth())
	protected.GET("/me", users.Me)
	protected.GET("/me/events", users.Events)
	protected.GET("/dashboard", users.Dashboard)

	return router
}

// corsMiddleware allows every origin when the list is empty or contains "*".
// Credentials are only allowed for an explicit origin list.
func corsMiddleware(cfg config.CORS) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"WWW-Authenticate", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(cfg.AllowedOrigins) == 0
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}

	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = cfg.AllowCredentials
	}

	return cors.New(corsConfig)
}
