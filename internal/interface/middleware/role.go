package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/response"
)

// RequireRole lets the request through only when the identity's role equals
// role exactly. It must run after Authenticate.
func RequireRole(role entity.Role, logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("role check reached without an authenticated identity")
			response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		if id.Role != role {
			response.Abort(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
