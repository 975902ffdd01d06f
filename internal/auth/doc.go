// Package auth provides password hashing, stateless bearer tokens and the
// register / login / current-user flows built on them.
//
// # Configuration
//
//	AUTH_SECRET_KEY=<random string>   # HS256 signing secret; the default is for development only
//	AUTH_TOKEN_TTL=8h                 # Access token lifetime
//	AUTH_BCRYPT_COST=12               # bcrypt cost factor
//	AUTH_ISSUER=                      # Optional "iss" claim, checked on verify when set
//
// # Usage
//
//	tokens, err := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
//	svc, err := auth.NewService(usersRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)
//	router.GET("/me", auth.NewMiddleware(svc).RequireAuth(), handler)
//
// Extract the user in handlers:
//
//	user := auth.GetUser(c) // *entities.PublicUser, never carries the digest
//
// Tokens are not revoked server-side. CurrentUser always reloads the user by
// the token's email and rejects the token if the record's id differs from
// the token subject, so handlers see current name and role.
package auth
