package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/securetask/internal/container"
	handlers "github.com/oksasatya/securetask/internal/interface/http"
	"github.com/oksasatya/securetask/internal/interface/middleware"
)

// AuthModule wires the public credential endpoints:
// POST /auth/register, POST /auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
