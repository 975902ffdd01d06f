package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/schoolapp/internal/auth"
)

// ErrorResponse is the error body for every API error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is a plain informational body.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Detail: message})
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Error().Err(err).Str("context", context).Msg("internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Detail: message})
}

// respondAuthError maps gateway errors onto HTTP statuses.
func respondAuthError(c *gin.Context, err error, context string) {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		respondBadRequest(c, verr.Error())
	case errors.Is(err, auth.ErrConflict):
		respondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondBadRequest(c, "Incorrect email or password")
	case errors.Is(err, auth.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized, "Could not validate credentials")
	default:
		respondInternalError(c, err, context)
	}
}
