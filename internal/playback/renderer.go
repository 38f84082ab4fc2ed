package playback

import "github.com/san-kum/algoviz/internal/trace"

// Renderer receives playback output. Both methods are called while the
// controller holds its lock; they must return promptly and must not call
// back into the same Controller.
type Renderer interface {
	OnStep(index int, s trace.Snapshot)
	OnFinished()
}

// RendererFuncs adapts plain functions to Renderer. Nil fields are no-ops.
type RendererFuncs struct {
	Step     func(index int, s trace.Snapshot)
	Finished func()
}

func (r RendererFuncs) OnStep(index int, s trace.Snapshot) {
	if r.Step != nil {
		r.Step(index, s)
	}
}

func (r RendererFuncs) OnFinished() {
	if r.Finished != nil {
		r.Finished()
	}
}

type nopRenderer struct{}

func (nopRenderer) OnStep(int, trace.Snapshot) {}
func (nopRenderer) OnFinished()                {}
