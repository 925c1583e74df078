package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursehub/internal/apperror"
	"coursehub/internal/models"
	"coursehub/internal/repository"
)

type UserHandler interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

type userHandler struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserHandler(userRepo repository.UserRepository, logger *zap.Logger) UserHandler {
	return &userHandler{userRepo: userRepo, logger: logger}
}

func (h *userHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := callerIdentity(c, h.logger)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(id.SubjectID)
	if err != nil {
		h.logger.Error("Token subject is not a user ID", zap.String("sub", id.SubjectID), zap.Error(err))
		apperror.Respond(c, apperror.Internal("Invalid user ID"))
		return uuid.Nil, false
	}
	return userID, true
}

// GetProfile handles GET /api/users/profile
func (h *userHandler) GetProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperror.Respond(c, apperror.NotFound("User not found"))
			return
		}
		h.logger.Error("Failed to get user", zap.String("user_id", userID.String()), zap.Error(err))
		apperror.Respond(c, apperror.Internal("Database error"))
		return
	}

	c.JSON(http.StatusOK, user.Response())
}

// UpdateProfile handles PATCH /api/users/profile. Only the display name is
// writable.
func (h *userHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	user, err := h.userRepo.UpdateName(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperror.Respond(c, apperror.NotFound("User not found"))
			return
		}
		h.logger.Error("Failed to update profile", zap.String("user_id", userID.String()), zap.Error(err))
		apperror.Respond(c, apperror.Internal("Failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, user.Response())
}
