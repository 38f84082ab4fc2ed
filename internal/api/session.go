package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 << 10
	sendBuffer     = 256

	// Client actions per second, with a burst for quick step scrubbing.
	actionRate  = 30
	actionBurst = 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// session drives one Controller over one WebSocket. The read loop is the
// only caller of controller transitions; step and finished events are
// produced by the controller's ticks and drained by the write loop.
type session struct {
	id     string
	ws     *websocket.Conn
	ctl    *playback.Controller
	logger *slog.Logger

	out     chan ServerEvent
	done    chan struct{}
	once    sync.Once
	stats   atomic.Pointer[metrics.Stats]
	limiter *rate.Limiter
}

// HandlePlay handles GET /api/v1/play and upgrades to a playback session.
func (h *Handlers) HandlePlay(c *gin.Context) {
	logger := h.requestLogger(c, "HandlePlay")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s := &session{
		id:   uuid.NewString(),
		ws:   ws,
		out:     make(chan ServerEvent, sendBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(actionRate, actionBurst),
	}
	s.logger = logger.With("session_id", s.id)
	s.ctl = playback.New(s,
		playback.WithClock(h.opts.NewClock()),
		playback.WithBaseDelay(h.opts.BaseDelay),
		playback.WithSpeed(h.opts.Speed),
		playback.WithLogger(s.logger),
	)

	activeSessions.Inc()
	defer activeSessions.Dec()

	s.logger.Info("playback session opened")
	if err := s.serve(c.Request.Context()); err != nil {
		s.logger.Debug("playback session ended with error", "error", err)
	}
	s.logger.Info("playback session closed")
}

func (s *session) serve(ctx context.Context) error {
	s.emit(ServerEvent{Type: EventSession, Session: s.id, State: s.ctl.State().String(), Speed: s.ctl.Speed()})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer s.close()
		return s.writeLoop(ctx)
	})
	g.Go(func() error {
		defer s.close()
		return s.readLoop()
	})
	return g.Wait()
}

// close ends the session. done is closed before stopping the controller so
// a tick blocked in emit can return and release the controller lock.
func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.ctl.Stop()
		s.ws.Close()
	})
}

func (s *session) emit(ev ServerEvent) {
	select {
	case s.out <- ev:
	case <-s.done:
	}
}

func (s *session) emitError(err error) {
	_, code := statusFor(err)
	s.emit(ServerEvent{Type: EventError, Error: err.Error(), Code: code, State: s.ctl.State().String()})
}

func (s *session) emitState() {
	s.emit(ServerEvent{Type: EventState, State: s.ctl.State().String(), Index: s.ctl.Index(), Speed: s.ctl.Speed()})
}

func (s *session) OnStep(index int, snap trace.Snapshot) {
	s.emit(ServerEvent{Type: EventStep, Index: index, Snapshot: &snap})
}

func (s *session) OnFinished() {
	ev := ServerEvent{Type: EventFinished, State: playback.Completed.String()}
	if st := s.stats.Load(); st != nil {
		ev.Steps = st.Steps
		ev.Index = st.Steps - 1
		ev.Stats = st
	}
	s.emit(ev)
}

func (s *session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case ev := <-s.out:
			s.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.ws.WriteJSON(ev); err != nil {
				s.logger.Warn("failed to send websocket event", "type", ev.Type, "error", err)
				return err
			}
			playbackEvents.WithLabelValues(ev.Type).Inc()
		}
	}
}

func (s *session) readLoop() error {
	s.ws.SetReadLimit(maxMessageSize)
	for {
		_, data, err := s.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return err
			}
			return nil
		}

		if !s.limiter.Allow() {
			s.emit(ServerEvent{Type: EventError, Error: "too many actions", Code: "rate_limited"})
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.emit(ServerEvent{Type: EventError, Error: fmt.Sprintf("invalid message: %v", err), Code: "invalid_message"})
			continue
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg ClientMessage) {
	var err error
	switch msg.Action {
	case ActionStart:
		s.start(msg)
		return
	case ActionPause:
		err = s.ctl.Pause()
	case ActionResume:
		err = s.ctl.Resume()
	case ActionStop:
		s.ctl.Stop()
	case ActionSpeed:
		err = s.ctl.SetSpeed(msg.Speed)
	case ActionStep:
		err = s.ctl.StepForward()
	case ActionStepBack:
		err = s.ctl.StepBackward()
	default:
		s.emit(ServerEvent{Type: EventError, Error: fmt.Sprintf("unknown action %q", msg.Action), Code: "unknown_action"})
		return
	}
	if err != nil {
		s.emitError(err)
		return
	}
	// Step events carry their own snapshot; only plain transitions need
	// an explicit state echo.
	if msg.Action != ActionStep && msg.Action != ActionStepBack {
		s.emitState()
	}
}

// start validates and generates a trace, announces it, then hands it to
// the controller so "started" always precedes the first step event.
func (s *session) start(msg ClientMessage) {
	if st := s.ctl.State(); st != playback.Idle && st != playback.Completed {
		s.emitError(&playback.TransitionError{Op: "start", From: st})
		return
	}
	if len(msg.Array) > MaxArraySize {
		s.emitError(fmt.Errorf("%w: %d elements exceeds limit of %d", trace.ErrInvalidInput, len(msg.Array), MaxArraySize))
		return
	}
	tr, err := trace.Generate(trace.Algorithm(msg.Algorithm), msg.Array)
	if err != nil {
		s.emitError(err)
		return
	}
	tracesGenerated.WithLabelValues(string(tr.Algorithm)).Inc()
	traceSnapshots.Observe(float64(tr.Len()))

	st := metrics.Summarize(tr)
	s.stats.Store(&st)
	s.emit(ServerEvent{Type: EventStarted, Steps: tr.Len(), Stats: &st, Speed: s.ctl.Speed()})

	if err := s.ctl.Start(tr); err != nil {
		if !errors.Is(err, playback.ErrInvalidTransition) {
			s.logger.Error("playback start failed", "error", err)
		}
		s.emitError(err)
		return
	}
	s.logger.Debug("playback session started", "algorithm", tr.Algorithm, "snapshots", tr.Len())
}
