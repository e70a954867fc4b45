// Package page models the scrollable document around the hero animation: a
// tall hero section followed by content sections.
//
// All positions are CSS pixels from the top of the document. The model is
// driven from the game loop and is not safe for concurrent use.
package page

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/utils"
)

// HeroName is the anchor name of the hero section.
const HeroName = config.HeroSection

// Section is one block of the document.
type Section struct {
	Name   string
	Top    float64
	Height float64

	reveal *reveal
}

// Bottom returns the offset just past the section.
func (s *Section) Bottom() float64 { return s.Top + s.Height }

// Page is the scroll state of the document.
type Page struct {
	cfg config.PageConfig

	hero     *Section
	sections []*Section
	byName   map[string]*Section

	viewportHeight float64
	docHeight      float64
	scroll         float64

	anchor *anchorScroll
}

// New lays out the hero followed by the configured sections.
func New(cfg config.PageConfig, viewportHeight float64) *Page {
	p := &Page{
		cfg:    cfg,
		byName: make(map[string]*Section),
	}

	p.hero = &Section{Name: HeroName, Top: 0, Height: cfg.HeroHeight}
	p.byName[HeroName] = p.hero

	top := cfg.HeroHeight
	for _, sc := range cfg.Sections {
		s := &Section{
			Name:   sc.Name,
			Top:    top,
			Height: sc.Height,
			reveal: &reveal{},
		}
		p.sections = append(p.sections, s)
		p.byName[s.Name] = s
		top += sc.Height
	}
	p.docHeight = top

	p.SetViewportHeight(viewportHeight)
	return p
}

// SetViewportHeight updates the visible height and re-clamps the scroll.
func (p *Page) SetViewportHeight(h float64) {
	if !(h >= 0) || math.IsInf(h, 0) {
		h = 0
	}
	p.viewportHeight = h
	p.scroll = p.clampScroll(p.scroll)
	p.updateReveals()
}

// ViewportHeight returns the visible height.
func (p *Page) ViewportHeight() float64 { return p.viewportHeight }

// DocumentHeight returns the total height of all sections.
func (p *Page) DocumentHeight() float64 { return p.docHeight }

// MaxScroll returns the largest valid scroll offset.
func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.docHeight-p.viewportHeight)
}

// ScrollOffset returns the vertical scroll offset.
func (p *Page) ScrollOffset() float64 { return p.scroll }

// ScrollTo jumps to y, clamped into the document. It cancels any anchor
// scroll in progress.
func (p *Page) ScrollTo(y float64) {
	p.anchor = nil
	p.setScroll(y)
}

// ScrollBy scrolls by dy (positive is down).
func (p *Page) ScrollBy(dy float64) {
	p.ScrollTo(p.scroll + dy)
}

func (p *Page) setScroll(y float64) {
	p.scroll = p.clampScroll(y)
	p.updateReveals()
}

func (p *Page) clampScroll(y float64) float64 {
	if math.IsNaN(y) {
		return 0
	}
	return math.Min(math.Max(y, 0), p.MaxScroll())
}

// Geometry returns the hero section geometry consumed by the animator.
func (p *Page) Geometry() animator.Geometry {
	return animator.Geometry{
		ScrollOffset:   p.scroll,
		SectionTop:     p.hero.Top,
		SectionHeight:  p.hero.Height,
		ViewportHeight: p.viewportHeight,
	}
}

// NavbarHeight returns the height of the fixed navbar.
func (p *Page) NavbarHeight() float64 { return p.cfg.NavbarHeight }

// NavScrolled reports whether the navbar should show its scrolled style.
func (p *Page) NavScrolled() bool {
	return p.scroll > p.cfg.NavScrolledAfter
}

// Hero returns the hero section.
func (p *Page) Hero() *Section { return p.hero }

// Sections returns the content sections in document order.
func (p *Page) Sections() []*Section { return p.sections }

// Section returns the named section, including "hero".
func (p *Page) Section(name string) (*Section, bool) {
	s, ok := p.byName[name]
	return s, ok
}

// ScrollToAnchor starts a smooth scroll that brings the top of the named
// section just below the navbar.
func (p *Page) ScrollToAnchor(name string) error {
	s, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("unknown anchor %q", name)
	}

	target := p.clampScroll(s.Top - p.cfg.NavbarHeight)
	if p.cfg.AnchorScrollSeconds <= 0 {
		p.ScrollTo(target)
		return nil
	}

	p.anchor = &anchorScroll{
		from:     p.scroll,
		to:       target,
		duration: p.cfg.AnchorScrollSeconds,
	}
	log.Printf("[Page] Scrolling to #%s (%.0f -> %.0f)", name, p.scroll, target)
	return nil
}

// Scrolling reports whether an anchor scroll is in progress.
func (p *Page) Scrolling() bool { return p.anchor != nil }

// Update advances anchor scrolling and reveal transitions by dt seconds.
func (p *Page) Update(dt float64) {
	if p.anchor != nil {
		y, done := p.anchor.step(dt)
		p.setScroll(y)
		if done {
			p.anchor = nil
		}
	}

	for _, s := range p.sections {
		s.reveal.advance(dt, p.cfg.RevealSeconds)
	}
}

// anchorScroll interpolates the scroll offset with ease-in-out cubic.
type anchorScroll struct {
	from, to float64
	elapsed  float64
	duration float64
}

func (a *anchorScroll) step(dt float64) (float64, bool) {
	a.elapsed += dt
	t := a.elapsed / a.duration
	if t >= 1 {
		return a.to, true
	}
	return utils.Lerp(a.from, a.to, utils.EaseInOutCubic(t)), false
}
