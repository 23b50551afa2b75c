package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/therapy-report-api/internal/handler"
	"github.com/jwalitptl/therapy-report-api/internal/middleware"
	"github.com/jwalitptl/therapy-report-api/pkg/metrics"
)

// Handler registers a group of related routes.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	Timeout   time.Duration
}

type Router struct {
	engine  *gin.Engine
	metrics *metrics.Metrics
}

func NewRouter(cfg Config, m *metrics.Metrics, handlers ...Handler) *Router {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	engine.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	}).RateLimit())
	timeoutCfg := middleware.DefaultTimeoutConfig()
	if cfg.Timeout > 0 {
		timeoutCfg = middleware.TimeoutConfig{Duration: cfg.Timeout}
	}
	engine.Use(middleware.Timeout(timeoutCfg))
	engine.Use(instrument(m))

	engine.GET("/health", handler.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(v1)
	}

	return &Router{engine: engine, metrics: m}
}

// instrument records request counts, durations and error totals per
// route template, not per raw path, to keep label cardinality down.
func instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.RequestsTotal.WithLabelValues(method, path, status).Inc()
		m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			m.ErrorsTotal.WithLabelValues(method, path, status).Inc()
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
