package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/entities"
)

// RegisterRequest is accepted as JSON, form data or query parameters.
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
	Grade    string `form:"grade" json:"grade"`
}

type RegisterResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthEventLogger records register and login attempts.
type AuthEventLogger interface {
	LogAuth(action entities.AuthAction, userID, email, ipAddr, userAgent string, err error)
}

// AuthController serves registration and the OAuth2 password-flow token
// endpoint.
type AuthController struct {
	service *auth.Service
	limiter *auth.RateLimiter
	events  AuthEventLogger
}

// NewAuthController creates an AuthController. limiter and events may be nil.
func NewAuthController(service *auth.Service, limiter *auth.RateLimiter, events AuthEventLogger) *AuthController {
	return &AuthController{service: service, limiter: limiter, events: events}
}

func (ac *AuthController) logEvent(c *gin.Context, action entities.AuthAction, userID, email string, err error) {
	if ac.events == nil {
		return
	}
	ac.events.LogAuth(action, userID, email, c.ClientIP(), c.Request.UserAgent(), err)
}

// RegisterRoutes mounts the /auth endpoints.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/auth")
	group.POST("/register", ac.Register)

	if ac.limiter != nil {
		group.POST("/token", ac.limiter.Middleware(), ac.Token)
	} else {
		group.POST("/token", ac.Token)
	}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	res, err := ac.service.Register(c.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entities.Role(req.Role),
		Grade:    req.Grade,
	})
	if err != nil {
		ac.logEvent(c, entities.AuthActionRegister, "", req.Email, err)
		respondAuthError(c, err, "register")
		return
	}
	ac.logEvent(c, entities.AuthActionRegister, res.UserID, req.Email, nil)

	c.JSON(http.StatusOK, RegisterResponse{
		UserID:      res.UserID,
		AccessToken: res.AccessToken,
		TokenType:   auth.TokenType,
	})
}

// Token handles POST /auth/token with form fields username and password.
func (ac *AuthController) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	res, err := ac.service.Login(c.Request.Context(), username, password)
	if err != nil {
		if ac.limiter != nil && errors.Is(err, auth.ErrInvalidCredentials) {
			ac.limiter.RecordFailure(c.ClientIP(), username)
		}
		ac.logEvent(c, entities.AuthActionLogin, "", username, err)
		respondAuthError(c, err, "login")
		return
	}
	ac.logEvent(c, entities.AuthActionLogin, res.UserID, username, nil)

	if ac.limiter != nil {
		ac.limiter.RecordSuccess(c.ClientIP(), username)
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: res.AccessToken, TokenType: auth.TokenType})
}
