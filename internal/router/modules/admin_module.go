package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/container"
	"github.com/oksasatya/securetask/internal/domain/entity"
	handlers "github.com/oksasatya/securetask/internal/interface/http"
	"github.com/oksasatya/securetask/internal/interface/middleware"
	"github.com/oksasatya/securetask/pkg/helpers"
)

// AdminModule wires the read-only admin endpoints behind Authenticate and
// RequireRole(admin).
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.Authenticate(m.JWT),
		middleware.RequireRole(entity.RoleAdmin, m.Logger),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		admin.GET("/users", m.Handler.Users)
		admin.GET("/users/search", m.Handler.SearchUsers)
		admin.GET("/tasks", m.Handler.Tasks)
	}
}
