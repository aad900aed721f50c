package handlers

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securetask/internal/application"
	"github.com/oksasatya/securetask/internal/domain/entity"
	repo "github.com/oksasatya/securetask/internal/domain/repository"
	"github.com/oksasatya/securetask/internal/interface/middleware"
	"github.com/oksasatya/securetask/pkg/helpers"
	"github.com/oksasatya/securetask/pkg/response"
)

var (
	registrations = expvar.NewInt("auth_registrations")
	loginSuccess  = expvar.NewInt("auth_login_success")
	loginFailure  = expvar.NewInt("auth_login_failure")
)

const auditTimeout = 2 * time.Second

type AuthHandler struct {
	Svc    *application.AuthService
	Audit  repo.AuditRepository
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, audit repo.AuditRepository, logger *logrus.Logger) *AuthHandler {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthHandler{Svc: svc, Audit: audit, Logger: logger}
}

// Email format is checked by AuthService after trimming.
type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// audit records an auth event. It never fails the request.
func (h *AuthHandler) audit(c *gin.Context, userID, email, action string, metadata map[string]any) {
	if h.Audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), auditTimeout)
	defer cancel()
	err := h.Audit.Insert(ctx, entity.AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Metadata:  metadata,
	})
	if err != nil {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"action":     action,
		}).Warn("audit insert failed")
	}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	registrations.Add(1)
	h.audit(c, u.ID, u.Email, entity.AuditRegister, map[string]any{"role": u.Role})
	response.Success(c, http.StatusCreated, u.Summary(), "user registered", nil)
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	email := application.NormalizeEmail(req.Email)
	res, err := h.Svc.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			loginFailure.Add(1)
			h.audit(c, "", email, entity.AuditLoginFailure, nil)
		}
		writeError(c, h.Logger, err)
		return
	}
	loginSuccess.Add(1)
	h.audit(c, res.User.ID, res.User.Email, entity.AuditLoginSuccess, nil)
	response.Success(c, http.StatusOK, loginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt}, "login successful", nil)
}
