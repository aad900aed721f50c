package modules

import (
	"expvar"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/securetask/internal/interface/middleware"
)

var (
	startedAt   = time.Now()
	publishOnce sync.Once
)

// DebugModule serves expvar (auth counters, memstats, uptime) at
// /debug/vars. Public callers are rate-limited per IP; private addresses
// are not.
type DebugModule struct {
	RDB *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule {
	publishOnce.Do(func() {
		expvar.Publish("uptime_seconds", expvar.Func(func() any {
			return int64(time.Since(startedAt).Seconds())
		}))
	})
	return &DebugModule{RDB: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
