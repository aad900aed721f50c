package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/response"
)

const identityKey = "securetask.identity"

// SetIdentity attaches a verified identity to the request.
func SetIdentity(c *gin.Context, id entity.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok && id.UserID != ""
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is case-insensitive and exactly one token must follow it.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Authenticate verifies the bearer token and attaches the identity it
// carries. Every failure gets the same 401 body.
func Authenticate(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		SetIdentity(c, claims.Identity())
		c.Next()
	}
}
