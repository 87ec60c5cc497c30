package sim

import (
	"context"
	"time"

	"github.com/vovakirdan/resume-run/internal/core"
)

// DefaultMaxStep caps a single frame's simulated time.
const DefaultMaxStep = 30 * time.Millisecond

// Renderer receives a snapshot after every frame, playing or not.
type Renderer interface {
	Render(Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

// Render calls f.
func (f RendererFunc) Render(s Snapshot) { f(s) }

// InputSource yields the intents for the frame at time now.
// *core.Latch implements it.
type InputSource interface {
	Frame(now time.Time) core.InputFrame
}

type closer interface {
	Close()
}

// Driver turns wall-clock timestamps into clamped simulation steps.
// Without a renderer it runs headless. A Driver belongs to one goroutine;
// cancel Run's context before calling Close from elsewhere.
type Driver struct {
	sim      *Simulation
	renderer Renderer
	onEvents func([]Event)
	maxStep  time.Duration
	prev     time.Time
	started  bool
	closed   bool
	source   InputSource
}

// NewDriver creates a driver. A non-positive maxStep uses DefaultMaxStep.
func NewDriver(s *Simulation, maxStep time.Duration, r Renderer) *Driver {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	return &Driver{sim: s, renderer: r, maxStep: maxStep}
}

// OnEvents registers a callback for the events of every frame that produced any.
func (d *Driver) OnEvents(fn func([]Event)) {
	d.onEvents = fn
}

// Attach sets the input source that Close tears down.
func (d *Driver) Attach(src InputSource) {
	d.source = src
}

// Simulation returns the driven simulation.
func (d *Driver) Simulation() *Simulation {
	return d.sim
}

// Frame runs one frame. The first frame has dt = 0; later frames use the
// time since the previous frame clamped to [0, maxStep].
func (d *Driver) Frame(now time.Time, in core.InputFrame) StepResult {
	if d.closed {
		return StepResult{Phase: d.sim.Phase()}
	}

	var dt time.Duration
	if d.started {
		dt = min(max(now.Sub(d.prev), 0), d.maxStep)
	}
	d.started = true
	d.prev = now

	res := d.sim.Step(in, dt.Seconds())
	if d.onEvents != nil && len(res.Events) > 0 {
		d.onEvents(res.Events)
	}
	if d.renderer != nil {
		d.renderer.Render(d.sim.Snapshot())
	}
	return res
}

// Run drives frames from the channel until it closes, the context ends or
// the driver is closed. Intents are sampled from src once per frame.
func (d *Driver) Run(ctx context.Context, frames <-chan time.Time, src InputSource) error {
	d.source = src
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok || d.closed {
				return nil
			}
			d.Frame(now, src.Frame(now))
		}
	}
}

// Close tears the driver down. The input source is closed if it supports it
// and further frames are no-ops.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if c, ok := d.source.(closer); ok {
		c.Close()
	}
}

// Closed reports whether Close was called.
func (d *Driver) Closed() bool {
	return d.closed
}
