package api

import (
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	Version = "0.1.0"

	// MaxArraySize bounds every array accepted over HTTP. Bubble and
	// insertion traces grow quadratically with the input.
	MaxArraySize = 128
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ArrayQuery struct {
	Size    int    `form:"size,default=30" binding:"min=1,max=128"`
	Min     int    `form:"min,default=5"`
	Max     int    `form:"max,default=100" binding:"gtefield=Min"`
	Seed    int64  `form:"seed"`
	Pattern string `form:"pattern"`
}

type ArrayResponse struct {
	Array   []int  `json:"array"`
	Pattern string `json:"pattern"`
	Seed    int64  `json:"seed"`
}

type TraceRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
	Array     []int  `json:"array" binding:"required,min=1,max=128"`
	Save      bool   `json:"save,omitempty"`
}

type TraceResponse struct {
	RunID string        `json:"run_id,omitempty"`
	Trace *trace.Trace  `json:"trace"`
	Stats metrics.Stats `json:"stats"`
}

type RunResponse struct {
	Run   storage.RunMetadata `json:"run"`
	Trace *trace.Trace        `json:"trace"`
}

// ClientMessage is one request read from a playback socket.
type ClientMessage struct {
	Action    string  `json:"action"`
	Algorithm string  `json:"algorithm,omitempty"`
	Array     []int   `json:"array,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
}

// Client actions.
const (
	ActionStart    = "start"
	ActionPause    = "pause"
	ActionResume   = "resume"
	ActionStop     = "stop"
	ActionSpeed    = "speed"
	ActionStep     = "step"
	ActionStepBack = "step_back"
)

// ServerEvent is one message written to a playback socket.
type ServerEvent struct {
	Type     string          `json:"type"`
	Session  string          `json:"session,omitempty"`
	Index    int             `json:"index"`
	Snapshot *trace.Snapshot `json:"snapshot,omitempty"`
	State    string          `json:"state,omitempty"`
	Steps    int             `json:"steps,omitempty"`
	Stats    *metrics.Stats  `json:"stats,omitempty"`
	Speed    float64         `json:"speed,omitempty"`
	Error    string          `json:"error,omitempty"`
	Code     string          `json:"code,omitempty"`
}

// Server event types.
const (
	EventSession  = "session"
	EventStarted  = "started"
	EventStep     = "step"
	EventFinished = "finished"
	EventState    = "state"
	EventError    = "error"
)
