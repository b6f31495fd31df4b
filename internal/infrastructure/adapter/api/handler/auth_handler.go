package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbharat/finbharat/internal/domain/entity"
	domainerr "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/usecase"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/dto"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/auth"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	userService   usecase.UserUseCase
	sessions      *auth.SessionManager
	logger        coreport.Logger
	secureCookies bool
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(
	userService usecase.UserUseCase,
	sessions *auth.SessionManager,
	logger coreport.Logger,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		sessions:      sessions,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// Register handles the POST /register endpoint. A successful
// registration logs the user in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.logger, domainerr.ErrInvalidRequest)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, h.toUserResponse(user))
}

// Login handles the POST /login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.logger, domainerr.ErrInvalidRequest)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, h.toUserResponse(user))
}

// Logout handles the GET /logout endpoint by expiring the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, user *entity.User) error {
	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}

	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(auth.SessionCookieName, token, maxAge, "/", "", h.secureCookies, true)
	return nil
}

func (h *AuthHandler) toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Cash:     user.FormattedCash(),
	}
}
