package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coursehub/internal/apperror"
	"coursehub/internal/auth"
	"coursehub/internal/middleware"
)

// bindJSON decodes and validates the request body into dst. On failure it
// writes a 400 and returns false; the decoder's message is only logged.
func bindJSON(c *gin.Context, dst any, logger *zap.Logger) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Debug("Failed to bind JSON", zap.String("path", c.FullPath()), zap.Error(err))
		apperror.Respond(c, apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// callerIdentity returns the identity attached by middleware.IdentityGuard.
// Reaching a handler without one means the route was wired without the guard.
func callerIdentity(c *gin.Context, logger *zap.Logger) (auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		logger.Error("Protected handler reached without identity", zap.String("path", c.FullPath()))
		apperror.Respond(c, apperror.Unauthorized("No token provided"))
		return auth.Identity{}, false
	}
	return id, true
}
