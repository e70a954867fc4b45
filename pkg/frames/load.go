package frames

import (
	"image"
	"sync"
)

// State is the lifecycle state of a single frame.
type State int

const (
	StatePending State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Load is the eventual result of loading one frame.
//
// It moves from StatePending to exactly one of StateLoaded or StateFailed and
// never changes afterwards. Done is closed at that moment.
type Load struct {
	index   int
	locator string

	mu    sync.Mutex
	state State
	img   image.Image
	err   error
	done  chan struct{}
}

func newLoad(index int, locator string) *Load {
	return &Load{
		index:   index,
		locator: locator,
		done:    make(chan struct{}),
	}
}

// Index returns the 0-based position of the frame in its sequence.
func (l *Load) Index() int { return l.index }

// Locator returns the resource locator the frame was requested from.
func (l *Load) Locator() string { return l.locator }

// Done returns a channel closed once the load has settled.
func (l *Load) Done() <-chan struct{} { return l.done }

// State returns the current state.
func (l *Load) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Complete reports whether the image finished loading.
func (l *Load) Complete() bool {
	return l.State() == StateLoaded
}

// Image returns the decoded image, or nil unless the frame loaded.
func (l *Load) Image() image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateLoaded {
		return nil
	}
	return l.img
}

// Err returns the load error of a failed frame.
func (l *Load) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// settle records the outcome. It returns false if the load had already settled.
func (l *Load) settle(img image.Image, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StatePending {
		return false
	}
	if err != nil {
		l.state = StateFailed
		l.err = err
	} else {
		l.state = StateLoaded
		l.img = img
	}
	close(l.done)
	return true
}
