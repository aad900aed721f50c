package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/application"
	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/internal/interface/middleware"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/response"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &TaskHandler{Svc: svc, Logger: logger}
}

// No owner field: the owner always comes from the token.
type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// identity is always present behind Authenticate.
func (h *TaskHandler) identity(c *gin.Context) (entity.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		h.Logger.WithField("request_id", c.GetString("request_id")).Error("task route reached without identity")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
	return id, ok
}

// Create POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), id, application.CreateTaskInput{Title: req.Title, Description: req.Description})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "task created", nil)
}

// List GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	tasks, err := h.Svc.ListOwn(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, tasks, "tasks")
}

// Update PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), id, c.Param("id"), application.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task updated", nil)
}

// Delete DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "task deleted", nil)
}
