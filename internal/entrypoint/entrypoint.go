package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/schoolapp/internal/audit"
	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/config"
	"github.com/mrlokans/schoolapp/internal/database"
	auditRepo "github.com/mrlokans/schoolapp/internal/database/audit"
	"github.com/mrlokans/schoolapp/internal/database/users"
	http_controllers "github.com/mrlokans/schoolapp/internal/http"
	"github.com/mrlokans/schoolapp/internal/logging"
	"github.com/mrlokans/schoolapp/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the long-lived components shared by the server and CLI commands.
type App struct {
	DB          *database.Database
	Users       *users.Repository
	Auth        *auth.Service
	Audit       *audit.Service // nil when AUDIT_ENABLED=false
	RateLimiter *auth.RateLimiter
}

// NewApp opens the database and builds the auth gateway from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.Auth.UsesDefaultSecret() {
		log.Warn().Msg("AUTH_SECRET_KEY is not set, using the development default. Tokens can be forged by anyone who knows it.")
	}

	if cfg.Audit.Enabled && cfg.Audit.Retention > 0 {
		if err := scheduler.ValidateCronSchedule(cfg.Audit.PruneSchedule); err != nil {
			return nil, fmt.Errorf("invalid AUDIT_PRUNE_SCHEDULE %q: %w", cfg.Audit.PruneSchedule, err)
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	secret := cfg.Auth.SecretKey
	if secret == "" {
		secret = config.DefaultSecretKey
	}
	tokens, err := auth.NewTokenIssuer(secret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	repo := users.NewRepository(db.DB)
	service, err := auth.NewService(repo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{DB: db, Users: repo, Auth: service}

	if cfg.Audit.Enabled {
		app.Audit = audit.NewService(auditRepo.NewRepository(db.DB))
		if cfg.Audit.Retention > 0 {
			deleted, err := app.Audit.DeleteOldEvents(context.Background(), cfg.Audit.Retention)
			if err != nil {
				log.Warn().Err(err).Msg("failed to prune auth events")
			} else if deleted > 0 {
				log.Info().Int64("deleted", deleted).Msg("pruned old auth events")
			}
		}
	}

	return app, nil
}

// Close stops the rate limiter, flushes pending audit writes and closes the
// database.
func (a *App) Close() {
	if a.RateLimiter != nil {
		a.RateLimiter.Stop()
	}
	if a.Audit != nil {
		a.Audit.Wait()
	}
	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("server exiting")
}

func Run(cfg *config.Config, version string) {
	logging.Setup(cfg.Log)
	log.Info().Str("version", version).Msg("starting School App backend")

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	app.RateLimiter = auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})

	var pruneScheduler *scheduler.AuditPruneScheduler
	if app.Audit != nil {
		pruneScheduler = scheduler.NewAuditPruneScheduler(app.Audit, cfg.Audit.PruneSchedule, cfg.Audit.Retention)
		if err := pruneScheduler.Start(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to start audit prune scheduler")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthService: app.Auth,
		RateLimiter: app.RateLimiter,
		Database:    app.DB,
		Users:       app.Users,
		Audit:       app.Audit,
		CORS:        cfg.CORS,
		Logger:      log.Logger,
		Version:     version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if pruneScheduler != nil {
			pruneScheduler.Stop()
		}
		app.Close()
	})
}
