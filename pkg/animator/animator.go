package animator

import (
	"log"
	"math"

	"github.com/decker502/scrollreel/pkg/frames"
)

// GeometrySource reports the current page geometry for the animated section.
type GeometrySource func() Geometry

// Animator redraws a Surface with the frame matching the scroll position.
//
// Rendering starts only once every frame of the sequence has loaded. After
// that, each scheduled tick recomputes the target frame and draws it only if
// it differs from the current one. All methods must be called from the same
// goroutine that runs the scheduler.
type Animator struct {
	seq       *frames.Sequence
	surface   Surface
	scheduler Scheduler
	geometry  GeometrySource

	viewport Viewport
	current  int
	started  bool
	stopped  bool
	draws    int
}

// New creates an animator. It does nothing until Start succeeds.
func New(seq *frames.Sequence, surface Surface, scheduler Scheduler, geometry GeometrySource) *Animator {
	return &Animator{
		seq:       seq,
		surface:   surface,
		scheduler: scheduler,
		geometry:  geometry,
		viewport:  Viewport{Scale: 1},
	}
}

// Resize sets the surface backing store to the displayed size times the
// pixel ratio and scales drawing back to CSS pixels. Once rendering has
// started the current frame is redrawn, since resizing clears the backing
// store.
func (a *Animator) Resize(vp Viewport) {
	scale := vp.Scale
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	vp.Scale = scale
	a.viewport = vp

	a.surface.SetBackingSize(backing(vp.Width, scale), backing(vp.Height, scale))
	a.surface.SetScale(scale)

	if a.started {
		a.Draw(a.seq.Frame(a.current))
	}
}

func backing(css, scale float64) int {
	v := css * scale
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

// Viewport returns the last viewport passed to Resize.
func (a *Animator) Viewport() Viewport {
	return a.viewport
}

// Draw clears the surface and draws the frame with a centered cover fit.
// Frames that have not finished loading, and degenerate sizes, are skipped.
// It reports whether anything was drawn.
func (a *Animator) Draw(frame *frames.Load) bool {
	if frame == nil || !frame.Complete() {
		return false
	}
	img := frame.Image()
	if img == nil {
		return false
	}

	b := img.Bounds()
	sw, sh := a.surface.Size()
	dst, ok := CoverFit(float64(b.Dx()), float64(b.Dy()), sw, sh)
	if !ok {
		return false
	}

	a.surface.Clear()
	a.surface.DrawImage(img, dst)
	a.draws++
	return true
}

// Start performs the ready transition: resize, draw the first frame and
// schedule the loop. It returns false while the sequence is not ready, and
// after the first successful call.
func (a *Animator) Start() bool {
	if a.started || a.stopped || !a.seq.Ready() {
		return false
	}

	a.current = 0
	a.Resize(a.viewport)
	a.started = true
	a.Draw(a.seq.Frame(0))
	log.Printf("[Animator] All %d frames loaded, animation started", a.seq.Len())

	a.scheduler.Schedule(a.tick)
	return true
}

// ShowPoster draws the first frame without starting the loop. It is the
// fallback when the sequence can never become ready.
func (a *Animator) ShowPoster() bool {
	if a.started {
		return false
	}
	a.Resize(a.viewport)
	return a.Draw(a.seq.Frame(0))
}

// tick is one display refresh of the animation loop.
func (a *Animator) tick() {
	if a.stopped {
		return
	}

	idx := FrameIndex(Progress(a.geometry()), a.seq.Len())
	if idx != a.current {
		if frame := a.seq.Frame(idx); frame != nil {
			a.current = idx
			a.Draw(frame)
		}
	}

	a.scheduler.Schedule(a.tick)
}

// Stop ends the loop after the next tick. The window never calls it.
func (a *Animator) Stop() {
	a.stopped = true
}

// Current returns the index of the last frame drawn by the loop.
func (a *Animator) Current() int { return a.current }

// Started reports whether the ready transition has happened.
func (a *Animator) Started() bool { return a.started }

// Draws returns how many times the surface has been drawn.
func (a *Animator) Draws() int { return a.draws }
