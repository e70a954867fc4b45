package frames

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Options tunes Preload.
type Options struct {
	// MaxInFlight caps concurrent fetches. 0 issues every request at once.
	MaxInFlight int

	// Decoder defaults to DecodeImage.
	Decoder Decoder
}

// Sequence is a fixed-length, ordered set of frame loads.
//
// Its length never changes after creation. The load counter only grows, and
// the sequence turns ready exactly once, when every frame has loaded. A single
// failed frame keeps it from ever becoming ready.
type Sequence struct {
	loads []*Load

	mu      sync.Mutex
	loaded  int
	settled int
	ready   bool
	onReady []func()
	done    chan struct{}
}

func newSequence(locators []string) *Sequence {
	s := &Sequence{
		loads: make([]*Load, len(locators)),
		done:  make(chan struct{}),
	}
	for i, loc := range locators {
		s.loads[i] = newLoad(i, loc)
	}
	if len(locators) == 0 {
		s.ready = true
		close(s.done)
	}
	return s
}

// Preload requests every locator concurrently and returns immediately.
//
// Completion order is unconstrained; readiness depends only on the count of
// loaded frames. Failures are logged and not retried.
func Preload(ctx context.Context, locators []string, fetcher Fetcher, opts Options) *Sequence {
	s := newSequence(locators)
	if len(locators) == 0 {
		return s
	}

	decode := opts.Decoder
	if decode == nil {
		decode = DecodeImage
	}

	g := new(errgroup.Group)
	if opts.MaxInFlight > 0 {
		g.SetLimit(opts.MaxInFlight)
	}

	go func() {
		for _, l := range s.loads {
			g.Go(func() error {
				img, err := fetchAndDecode(ctx, fetcher, decode, l.locator)
				s.resolve(l, img, err)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			log.Printf("[Frames] Preload finished with failures: %d/%d loaded (first error: %v)", s.Loaded(), s.Len(), err)
			return
		}
		log.Printf("[Frames] Preload finished: %d/%d loaded", s.Loaded(), s.Len())
	}()

	return s
}

// FromImages builds an already-settled sequence from decoded images.
// A nil entry is recorded as a failed frame.
func FromImages(images []image.Image) *Sequence {
	locators := make([]string, len(images))
	for i := range images {
		locators[i] = fmt.Sprintf("memory:%d", i)
	}
	s := newSequence(locators)
	for i, img := range images {
		var err error
		if img == nil {
			err = fmt.Errorf("frame %d: no image", i)
		}
		s.resolve(s.loads[i], img, err)
	}
	return s
}

func fetchAndDecode(ctx context.Context, fetcher Fetcher, decode Decoder, locator string) (image.Image, error) {
	rc, err := fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, err := decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", locator, err)
	}
	return img, nil
}

// resolve settles one load and updates the aggregate counters.
func (s *Sequence) resolve(l *Load, img image.Image, err error) {
	if !l.settle(img, err) {
		return
	}
	if err != nil {
		log.Printf("[Frames] Failed to load image: %s: %v", l.locator, err)
	}

	var hooks []func()
	s.mu.Lock()
	s.settled++
	if err == nil {
		s.loaded++
		if s.loaded == len(s.loads) && !s.ready {
			s.ready = true
			hooks = s.onReady
			s.onReady = nil
		}
	}
	allSettled := s.settled == len(s.loads)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if allSettled {
		close(s.done)
	}
}

// Len returns the fixed frame count.
func (s *Sequence) Len() int { return len(s.loads) }

// Frame returns the load at index i, or nil if i is out of range.
func (s *Sequence) Frame(i int) *Load {
	if i < 0 || i >= len(s.loads) {
		return nil
	}
	return s.loads[i]
}

// Loaded returns the load counter.
func (s *Sequence) Loaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Failed returns how many frames failed.
func (s *Sequence) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled - s.loaded
}

// Settled reports whether every frame has either loaded or failed.
func (s *Sequence) Settled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Ready reports whether every frame has loaded.
func (s *Sequence) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// OnReady registers fn to run once when the sequence turns ready. It runs
// immediately if the sequence is already ready, and never if a frame fails.
// Hooks run on whichever goroutine completed the last load.
func (s *Sequence) OnReady(fn func()) {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		fn()
		return
	}
	s.onReady = append(s.onReady, fn)
	s.mu.Unlock()
}

// Done returns a channel closed once every frame has settled.
func (s *Sequence) Done() <-chan struct{} { return s.done }

// Wait blocks until all frames settle or ctx ends. It returns nil when the
// sequence is ready and otherwise joins the error of every failed frame.
func (s *Sequence) Wait(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if s.Ready() {
		return nil
	}

	var errs []error
	for _, l := range s.loads {
		if err := l.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return fmt.Errorf("%d of %d frames failed: %w", len(errs), len(s.loads), errors.Join(errs...))
}
