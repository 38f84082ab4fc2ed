package playback_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

const delay = 100 * time.Millisecond

type step struct {
	index int
	array []int
}

type recordingRenderer struct {
	mu       sync.Mutex
	steps    []step
	finished int
}

func (r *recordingRenderer) OnStep(index int, s trace.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step{index: index, array: s.Array})
}

func (r *recordingRenderer) OnFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished++
}

func (r *recordingRenderer) indices() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.steps))
	for i, s := range r.steps {
		out[i] = s.index
	}
	return out
}

func (r *recordingRenderer) finishedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

func (r *recordingRenderer) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = nil
	r.finished = 0
}

// leakyClock hands out timers that cannot be cancelled, so the controller's
// generation check is the only thing standing between a stale callback and
// the renderer.
type leakyClock struct {
	funcs []func()
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c *leakyClock) AfterFunc(_ time.Duration, f func()) playback.Timer {
	c.funcs = append(c.funcs, f)
	return leakyTimer{}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

var _ = Describe("Controller", func() {
	var (
		clock    *playback.ManualClock
		renderer *recordingRenderer
		ctl      *playback.Controller
		tr       *trace.Trace
	)

	BeforeEach(func() {
		clock = playback.NewManualClock()
		renderer = &recordingRenderer{}
		ctl = playback.New(renderer,
			playback.WithClock(clock),
			playback.WithBaseDelay(delay),
			playback.WithSpeed(1),
		)
		tr = trace.MustGenerate(trace.Bubble, []int{3, 1, 2})
	})

	It("starts idle with nothing loaded", func() {
		Expect(ctl.State()).To(Equal(playback.Idle))
		_, ok := ctl.Current()
		Expect(ok).To(BeFalse())
		Expect(ctl.Delay()).To(Equal(delay))
	})

	Describe("Start", func() {
		It("delivers index 0 immediately and schedules one tick", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			Expect(renderer.indices()).To(Equal([]int{0}))
			Expect(ctl.State()).To(Equal(playback.Running))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("rejects an empty trace", func() {
			err := ctl.Start(nil)
			Expect(err).To(MatchError(trace.ErrInvalidInput))
			Expect(ctl.State()).To(Equal(playback.Idle))
		})

		It("rejects a second start while running and keeps the session", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			clock.Advance(delay)

			err := ctl.Start(trace.MustGenerate(trace.Heap, []int{9, 8}))
			Expect(err).To(MatchError(playback.ErrInvalidTransition))

			var te *playback.TransitionError
			Expect(err).To(BeAssignableToTypeOf(te))
			Expect(ctl.State()).To(Equal(playback.Running))
			Expect(ctl.Index()).To(Equal(1))
			Expect(ctl.Trace()).To(BeIdenticalTo(tr))
		})
	})

	Describe("ticks", func() {
		It("does not advance before the delay elapses", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			clock.Advance(delay - time.Nanosecond)
			Expect(renderer.indices()).To(Equal([]int{0}))
		})

		It("advances by exactly one per tick and finishes once", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			for i := 1; i < tr.Len(); i++ {
				clock.Advance(delay)
				Expect(ctl.Index()).To(Equal(i))
			}
			Expect(renderer.indices()).To(Equal(seq(tr.Len())))
			Expect(ctl.State()).To(Equal(playback.Running))
			Expect(renderer.finishedCount()).To(Equal(0))

			clock.Advance(delay)
			Expect(ctl.State()).To(Equal(playback.Completed))
			Expect(renderer.finishedCount()).To(Equal(1))

			clock.Advance(10 * delay)
			Expect(renderer.finishedCount()).To(Equal(1))
			Expect(renderer.indices()).To(HaveLen(tr.Len()))
			Expect(clock.Pending()).To(BeZero())
		})

		It("plays a single-snapshot trace to completion", func() {
			single := trace.MustGenerate(trace.Merge, []int{1})
			Expect(ctl.Start(single)).To(Succeed())
			Expect(renderer.indices()).To(Equal([]int{0}))

			clock.Advance(delay)
			Expect(ctl.State()).To(Equal(playback.Completed))
			Expect(renderer.finishedCount()).To(Equal(1))
		})

		It("can be restarted after completion", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			clock.Advance(time.Duration(tr.Len()) * delay)
			Expect(ctl.State()).To(Equal(playback.Completed))

			renderer.reset()
			Expect(ctl.Start(tr)).To(Succeed())
			Expect(ctl.Index()).To(Equal(0))
			clock.Advance(time.Duration(tr.Len()) * delay)
			Expect(renderer.indices()).To(Equal(seq(tr.Len())))
			Expect(renderer.finishedCount()).To(Equal(1))
		})
	})

	Describe("Pause and Resume", func() {
		It("continues from the paused index without skipping or repeating", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			clock.Advance(2 * delay)
			Expect(ctl.Pause()).To(Succeed())
			Expect(ctl.State()).To(Equal(playback.Paused))
			Expect(ctl.Index()).To(Equal(2))

			clock.Advance(50 * delay)
			Expect(renderer.indices()).To(Equal([]int{0, 1, 2}))
			Expect(clock.Pending()).To(BeZero())

			Expect(ctl.Resume()).To(Succeed())
			clock.Advance(delay)
			Expect(renderer.indices()).To(Equal([]int{0, 1, 2, 3}))
		})

		It("rejects invalid transitions without changing state", func() {
			Expect(ctl.Resume()).To(MatchError(playback.ErrInvalidTransition))
			Expect(ctl.Pause()).To(MatchError(playback.ErrInvalidTransition))
			Expect(ctl.State()).To(Equal(playback.Idle))

			Expect(ctl.Start(tr)).To(Succeed())
			Expect(ctl.Resume()).To(MatchError(playback.ErrInvalidTransition))
			Expect(ctl.Pause()).To(Succeed())
			Expect(ctl.Pause()).To(MatchError(playback.ErrInvalidTransition))
			Expect(ctl.State()).To(Equal(playback.Paused))
		})

		It("names the operation and state in the error", func() {
			err := ctl.Resume()
			Expect(err).To(MatchError("playback: invalid transition: cannot resume while idle"))
		})
	})

	Describe("Stop", func() {
		It("returns to idle and cancels the pending tick", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			clock.Advance(delay)
			ctl.Stop()

			Expect(ctl.State()).To(Equal(playback.Idle))
			Expect(ctl.Trace()).To(BeNil())
			Expect(clock.Pending()).To(BeZero())

			clock.Advance(10 * delay)
			Expect(renderer.indices()).To(Equal([]int{0, 1}))
			Expect(renderer.finishedCount()).To(BeZero())
		})

		It("lets a new trace start at index 0 with no leaked callbacks", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			clock.Advance(delay)
			ctl.Stop()
			renderer.reset()

			next := trace.MustGenerate(trace.Selection, []int{7, 6, 5, 4})
			Expect(ctl.Start(next)).To(Succeed())
			clock.Advance(time.Duration(next.Len()) * delay)

			Expect(renderer.indices()).To(Equal(seq(next.Len())))
			for i, s := range renderer.steps {
				Expect(s.array).To(Equal(next.At(i).Array))
			}
			Expect(renderer.finishedCount()).To(Equal(1))
		})

		It("is allowed while idle", func() {
			ctl.Stop()
			Expect(ctl.State()).To(Equal(playback.Idle))
		})
	})

	Describe("stale callbacks", func() {
		It("drops a tick that fires after Pause or Stop", func() {
			leaky := &leakyClock{}
			ctl = playback.New(renderer, playback.WithClock(leaky), playback.WithBaseDelay(delay))

			Expect(ctl.Start(tr)).To(Succeed())
			Expect(ctl.Pause()).To(Succeed())
			leaky.funcs[0]()
			Expect(renderer.indices()).To(Equal([]int{0}))

			Expect(ctl.Resume()).To(Succeed())
			ctl.Stop()
			leaky.funcs[1]()
			Expect(renderer.indices()).To(Equal([]int{0}))
			Expect(renderer.finishedCount()).To(BeZero())
		})
	})

	Describe("speed", func() {
		It("uses an inverse delay relationship", func() {
			Expect(ctl.SetSpeed(4)).To(Succeed())
			Expect(ctl.Delay()).To(Equal(delay / 4))
		})

		It("applies a new speed from the next tick only", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			Expect(ctl.SetSpeed(4)).To(Succeed())

			clock.Advance(delay / 4)
			Expect(ctl.Index()).To(Equal(0))

			clock.Advance(delay - delay/4)
			Expect(ctl.Index()).To(Equal(1))

			clock.Advance(delay / 4)
			Expect(ctl.Index()).To(Equal(2))
		})

		It("rejects non-positive speeds", func() {
			Expect(ctl.SetSpeed(0)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(ctl.SetSpeed(-3)).To(MatchError(playback.ErrInvalidSpeed))
			Expect(ctl.Speed()).To(Equal(1.0))
		})
	})

	Describe("manual stepping", func() {
		It("moves one snapshot at a time while paused", func() {
			Expect(ctl.Start(tr)).To(Succeed())
			Expect(ctl.StepForward()).To(MatchError(playback.ErrInvalidTransition))

			Expect(ctl.Pause()).To(Succeed())
			Expect(ctl.StepBackward()).To(Succeed())
			Expect(ctl.Index()).To(Equal(0))

			Expect(ctl.StepForward()).To(Succeed())
			Expect(ctl.StepForward()).To(Succeed())
			Expect(ctl.StepBackward()).To(Succeed())
			Expect(renderer.indices()).To(Equal([]int{0, 1, 2, 1}))

			cur, ok := ctl.Current()
			Expect(ok).To(BeTrue())
			Expect(cur.Array).To(Equal(tr.At(1).Array))
		})
	})

	Describe("SystemClock", func() {
		It("plays a trace to completion in real time", func() {
			live := &recordingRenderer{}
			rt := playback.New(live, playback.WithBaseDelay(time.Millisecond), playback.WithSpeed(1))
			Expect(rt.Start(tr)).To(Succeed())

			Eventually(live.finishedCount, time.Second, 5*time.Millisecond).Should(Equal(1))
			Expect(live.indices()).To(Equal(seq(tr.Len())))
			Expect(rt.State()).To(Equal(playback.Completed))
		})
	})
})
