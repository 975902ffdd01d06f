package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/entities"
)

type DashboardResponse struct {
	Welcome string        `json:"welcome"`
	View    entities.Role `json:"view"`
}

const (
	defaultEventsLimit = 20
	maxEventsLimit     = 100
)

type EventsResponse struct {
	Events []entities.AuthEvent `json:"events"`
}

// AuthEventReader lists recorded auth events for an email.
type AuthEventReader interface {
	GetEvents(ctx context.Context, email string, limit int) ([]entities.AuthEvent, error)
}

// UsersController serves endpoints for the authenticated user.
// Routes using it must sit behind auth.Middleware.RequireAuth.
type UsersController struct {
	events AuthEventReader
}

// NewUsersController creates a UsersController. events may be nil, in which
// case Events answers 404.
func NewUsersController(events AuthEventReader) *UsersController {
	return &UsersController{events: events}
}

// Me returns the current user without the password digest.
func (uc *UsersController) Me(c *gin.Context) {
	user := auth.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Dashboard greets the current user and tells the client which view to show.
func (uc *UsersController) Dashboard(c *gin.Context) {
	user := auth.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{
		Welcome: "Welcome, " + user.Name + "!",
		View:    user.Role,
	})
}

// Events lists the current user's recent register and login attempts.
func (uc *UsersController) Events(c *gin.Context) {
	user := auth.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	if uc.events == nil {
		respondError(c, http.StatusNotFound, "audit log is disabled")
		return
	}

	limit := defaultEventsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = min(n, maxEventsLimit)
	}

	events, err := uc.events.GetEvents(c.Request.Context(), user.Email, limit)
	if err != nil {
		respondInternalError(c, err, "list auth events")
		return
	}
	if events == nil {
		events = []entities.AuthEvent{}
	}
	c.JSON(http.StatusOK, EventsResponse{Events: events})
}
