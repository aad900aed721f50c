package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/securetask/pkg/response"
	"github.com/oksasatya/securetask/pkg/validation"
)

const apiPrefix = "/api/v1"

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	validation.Init()
	api := engine.Group(apiPrefix)
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	r.Engine.GET("/", health)
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", nil)
	})
}

func health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "SecureTask API is running", nil)
}
