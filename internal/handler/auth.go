package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coursehub/internal/apperror"
	"coursehub/internal/models"
	"coursehub/internal/service"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, logger: logger}
}

// Register handles POST /api/auth/register
func (h *authHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login handles POST /api/auth/login
func (h *authHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
