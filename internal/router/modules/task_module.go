package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/securetask/internal/container"
	handlers "github.com/oksasatya/securetask/internal/interface/http"
	"github.com/oksasatya/securetask/internal/interface/middleware"
	"github.com/oksasatya/securetask/pkg/helpers"
)

// TaskModule wires the owner-scoped task endpoints. Every route requires a
// bearer token.
type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.Use(
		middleware.Authenticate(m.JWT),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		tasks.POST("", m.Handler.Create)
		tasks.GET("", m.Handler.List)
		tasks.PUT("/:id", m.Handler.Update)
		tasks.DELETE("/:id", m.Handler.Delete)
	}
}
