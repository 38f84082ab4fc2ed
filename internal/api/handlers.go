package api

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
)

// Options configures the HTTP handlers.
type Options struct {
	BaseDelay time.Duration
	Speed     float64
	// NewClock returns the clock for each playback session. Nil means
	// playback.SystemClock.
	NewClock func() playback.Clock
	// Store enables the /runs routes and saving traces. Optional.
	Store  *storage.Store
	Logger *slog.Logger
}

type Handlers struct {
	opts   Options
	logger *slog.Logger
}

func NewHandlers(opts Options) *Handlers {
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = playback.DefaultBaseDelay
	}
	if opts.Speed <= 0 {
		opts.Speed = playback.DefaultSpeed
	}
	if opts.NewClock == nil {
		opts.NewClock = func() playback.Clock { return playback.SystemClock }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handlers{opts: opts, logger: opts.Logger}
}

func getOrCreateRequestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Header("X-Request-ID", id)
	return id
}

func (h *Handlers) requestLogger(c *gin.Context, handler string) *slog.Logger {
	return h.logger.With("request_id", getOrCreateRequestID(c), "handler", handler)
}

func abortWithError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "unknown_algorithm"
	case errors.Is(err, storage.ErrRunNotFound):
		return http.StatusNotFound, "run_not_found"
	case errors.Is(err, trace.ErrUnknownAlgorithm),
		errors.Is(err, trace.ErrInvalidInput),
		errors.Is(err, input.ErrInvalidSize),
		errors.Is(err, input.ErrInvalidRange),
		errors.Is(err, input.ErrUnknownPattern):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, playback.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, playback.ErrInvalidSpeed):
		return http.StatusBadRequest, "invalid_speed"
	}
	return http.StatusInternalServerError, "internal"
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: Version})
}

// HandleListAlgorithms handles GET /api/v1/algorithms.
func (h *Handlers) HandleListAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": catalog.List()})
}

// HandleGetAlgorithm handles GET /api/v1/algorithms/:key.
func (h *Handlers) HandleGetAlgorithm(c *gin.Context) {
	e, err := catalog.Get(c.Param("key"))
	if err != nil {
		status, code := statusFor(err)
		abortWithError(c, status, code, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// HandleRandomArray handles GET /api/v1/array.
func (h *Handlers) HandleRandomArray(c *gin.Context) {
	logger := h.requestLogger(c, "HandleRandomArray")

	var q ArrayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	p, err := input.ParsePattern(q.Pattern)
	if err != nil {
		status, code := statusFor(err)
		abortWithError(c, status, code, err)
		return
	}
	if q.Seed == 0 {
		q.Seed = time.Now().UnixNano()
	}
	arr, err := input.Seeded(q.Seed).Generate(p, q.Size, q.Min, q.Max)
	if err != nil {
		status, code := statusFor(err)
		abortWithError(c, status, code, err)
		return
	}
	logger.Debug("array generated", "size", q.Size, "pattern", p)
	c.JSON(http.StatusOK, ArrayResponse{Array: arr, Pattern: string(p), Seed: q.Seed})
}

// HandleTrace handles POST /api/v1/trace.
func (h *Handlers) HandleTrace(c *gin.Context) {
	logger := h.requestLogger(c, "HandleTrace")

	var req TraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	tr, err := trace.Generate(trace.Algorithm(req.Algorithm), req.Array)
	if err != nil {
		status, code := statusFor(err)
		logger.Warn("trace rejected", "algorithm", req.Algorithm, "error", err)
		abortWithError(c, status, code, err)
		return
	}
	tracesGenerated.WithLabelValues(string(tr.Algorithm)).Inc()
	traceSnapshots.Observe(float64(tr.Len()))

	resp := TraceResponse{Trace: tr, Stats: metrics.Summarize(tr)}
	if req.Save {
		if h.opts.Store == nil {
			abortWithError(c, http.StatusServiceUnavailable, "storage_disabled", errors.New("run storage is not configured"))
			return
		}
		id, err := h.opts.Store.Save(tr, storage.RunOptions{Speed: h.opts.Speed})
		if err != nil {
			logger.Error("failed to save run", "error", err)
			status, code := statusFor(err)
			abortWithError(c, status, code, err)
			return
		}
		resp.RunID = id
	}

	logger.Info("trace generated", "algorithm", tr.Algorithm, "size", len(tr.Input), "snapshots", tr.Len(), "run_id", resp.RunID)
	c.JSON(http.StatusOK, resp)
}

// HandleListRuns handles GET /api/v1/runs.
func (h *Handlers) HandleListRuns(c *gin.Context) {
	logger := h.requestLogger(c, "HandleListRuns")

	runs, err := h.opts.Store.List()
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		abortWithError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	if runs == nil {
		runs = []storage.RunMetadata{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// HandleGetRun handles GET /api/v1/runs/:id.
func (h *Handlers) HandleGetRun(c *gin.Context) {
	logger := h.requestLogger(c, "HandleGetRun")

	id := c.Param("id")
	if id != filepath.Base(id) || id == ".." || id == "." {
		abortWithError(c, http.StatusBadRequest, "invalid_run_id", errors.New("invalid run id"))
		return
	}
	meta, err := h.opts.Store.Load(id)
	if err != nil {
		status, code := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("failed to load run", "run_id", id, "error", err)
		}
		abortWithError(c, status, code, err)
		return
	}
	tr, err := h.opts.Store.LoadTrace(id)
	if err != nil {
		logger.Error("failed to load trace", "run_id", id, "error", err)
		status, code := statusFor(err)
		abortWithError(c, status, code, err)
		return
	}
	c.JSON(http.StatusOK, RunResponse{Run: *meta, Trace: tr})
}
