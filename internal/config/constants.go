package config

import "time"

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./school-app.db"

	// DefaultSecretKey signs tokens when AUTH_SECRET_KEY is unset.
	// Development only: anyone who reads this file can forge tokens.
	DefaultSecretKey = "dev-secret-key-change-me"

	// DefaultTokenTTL is how long an access token stays valid.
	DefaultTokenTTL = 8 * time.Hour
)
