package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the engine with health, metrics and the v1 API.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogging(h.logger))

	r.GET("/health", h.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

// RegisterRoutes mounts the v1 endpoints on rg. The runs group is only
// mounted when a store is configured.
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	algorithms := rg.Group("/algorithms")
	{
		algorithms.GET("", h.HandleListAlgorithms)
		algorithms.GET("/:key", h.HandleGetAlgorithm)
	}

	rg.GET("/array", h.HandleRandomArray)
	rg.POST("/trace", h.HandleTrace)
	rg.GET("/play", h.HandlePlay)

	if h.opts.Store != nil {
		runs := rg.Group("/runs")
		{
			runs.GET("", h.HandleListRuns)
			runs.GET("/:id", h.HandleGetRun)
		}
	}
}

func requestLogging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", c.Writer.Header().Get("X-Request-ID"),
		)
	}
}
