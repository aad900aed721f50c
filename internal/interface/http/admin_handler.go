package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/application"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/response"
)

// AdminHandler serves the read-only admin surface. Routes are gated by
// middleware.RequireRole.
type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AdminHandler{Svc: svc, Logger: logger}
}

// Users GET /api/v1/admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, users, "users")
}

// Tasks GET /api/v1/admin/tasks
func (h *AdminHandler) Tasks(c *gin.Context) {
	tasks, err := h.Svc.ListTasks(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, tasks, "tasks")
}

// SearchUsers GET /api/v1/admin/users/search?q=&size=
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, hits, "users")
}
