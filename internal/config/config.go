package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Audit
		CORS
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		SecretKey  string
		TokenTTL   time.Duration
		BcryptCost int
		Issuer     string

		// Login rate limiting
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Audit struct {
		Enabled   bool
		Retention time.Duration // Events older than this are pruned (0 keeps everything)
		// PruneSchedule is a five-field cron expression for the prune job.
		PruneSchedule string
	}
	CORS struct {
		AllowedOrigins   []string
		AllowCredentials bool
	}
	Log struct {
		Level  string
		Format string // "console" or "json"
	}
)

// UsesDefaultSecret reports whether the token signing secret was left at the
// development default. Never deploy with it.
func (a Auth) UsesDefaultSecret() bool {
	return a.SecretKey == "" || a.SecretKey == DefaultSecretKey
}

// loadDotenv loads the first .env found in the working directory or its
// parents. Missing files are fine; real environment variables win.
func loadDotenv() {
	for _, p := range []string{".env", "../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func NewConfig() *Config {
	loadDotenv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_secret_key", DefaultSecretKey)
	v.SetDefault("auth_token_ttl", DefaultTokenTTL.String())
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_issuer", "")
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention", "2160h")
	v.SetDefault("audit_prune_schedule", "0 3 * * *")

	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("cors_allow_credentials", true)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SecretKey:        v.GetString("AUTH_SECRET_KEY"),
			TokenTTL:         v.GetDuration("AUTH_TOKEN_TTL"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			Issuer:           v.GetString("AUTH_ISSUER"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Audit: Audit{
			Enabled:       v.GetBool("AUDIT_ENABLED"),
			Retention:     v.GetDuration("AUDIT_RETENTION"),
			PruneSchedule: v.GetString("AUDIT_PRUNE_SCHEDULE"),
		},
		CORS: CORS{
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
