package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/schoolapp/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUser = "auth_user"
)

// Middleware authenticates requests carrying a bearer token.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// current user to the context otherwise.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		user, err := m.service.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrUnauthorized) {
				log.Error().Err(err).Msg("failed to resolve current user")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"detail": "internal server error",
				})
				return
			}
			abortUnauthorized(c)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": "Could not validate credentials",
	})
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUser retrieves the authenticated user from the context, or nil.
func GetUser(c *gin.Context) *entities.PublicUser {
	if u, exists := c.Get(ContextKeyUser); exists {
		if user, ok := u.(*entities.PublicUser); ok {
			return user
		}
	}
	return nil
}
