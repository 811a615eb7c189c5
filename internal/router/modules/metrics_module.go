package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-credential-service/internal/interface/middleware"
	"github.com/oksasatya/go-credential-service/internal/metrics"
)

// MetricsModule exposes Prometheus metrics to peers matched by Allow. A nil
// Allow rejects everyone.
type MetricsModule struct {
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
	Allow    middleware.AllowFunc
}

func NewMetricsModule(g prometheus.Gatherer, rdb *redis.Client, allow middleware.AllowFunc) *MetricsModule {
	return &MetricsModule{Gatherer: g, Redis: rdb, Allow: allow}
}

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/metrics", middleware.RequireAllowed(m.Allow), rl, gin.WrapH(metrics.Handler(m.Gatherer)))
}
