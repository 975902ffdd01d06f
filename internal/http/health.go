package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/schoolapp/internal/database"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status    string            `json:"status"`
	Time      string            `json:"time"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks"`
	UserCount *int64            `json:"user_count,omitempty"`
}

// UserCounter reports how many users are registered.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type HealthController struct {
	db      *database.Database
	users   UserCounter
	version string
}

// NewHealthController creates a HealthController. Both db and users may be nil.
func NewHealthController(db *database.Database, users UserCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		users:   users,
		version: version,
	}
}

// Root answers GET / so clients can tell the backend is up.
func (h *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "School App Backend is running"})
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	checks := map[string]string{"backend": "ok"}
	status := "healthy"
	var userCount *int64

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.users != nil && status == "healthy" {
		if n, err := h.users.Count(ctx); err != nil {
			checks["users"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			userCount = &n
		}
	}

	health := HealthResponse{
		Status:    status,
		Time:      time.Now().Format(time.RFC3339),
		Version:   h.version,
		Checks:    checks,
		UserCount: userCount,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
