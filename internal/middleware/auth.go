package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coursehub/internal/apperror"
	"coursehub/internal/auth"
	"coursehub/internal/metrics"
)

const identityKey = "identity"

// IdentityGuard creates a Gin middleware that authenticates the caller from
// the Authorization header. Requests without a valid bearer token are
// answered with 401 and never reach the handler.
func IdentityGuard(tokens auth.TokenValidator, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := auth.IdentityFromHeader(c.GetHeader("Authorization"), tokens)
		if err != nil {
			m.ObserveTokenCheck(false)
			logger.Debug("Rejected request without valid identity",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			apperror.Abort(c, err)
			return
		}
		m.ObserveTokenCheck(true)

		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), id))

		c.Next()
	}
}

// IdentityFrom returns the identity stored by IdentityGuard.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
