package page

import (
	"math"

	"github.com/decker502/scrollreel/pkg/utils"
)

// revealOffsetY is how far below its resting place a hidden section sits.
const revealOffsetY = 30

// reveal tracks a section's one-way transition from hidden to shown.
type reveal struct {
	triggered bool
	t         float64 // 0..1 transition progress
}

func (r *reveal) advance(dt, duration float64) {
	if !r.triggered || r.t >= 1 {
		return
	}
	if duration <= 0 {
		r.t = 1
		return
	}
	r.t = math.Min(1, r.t+dt/duration)
}

// updateReveals triggers every section whose visible share crosses the
// threshold. The viewport is shrunk at the bottom by the reveal margin.
// Triggered sections stay triggered.
func (p *Page) updateReveals() {
	top := p.scroll
	bottom := p.scroll + p.viewportHeight - p.cfg.RevealBottomMargin
	for _, s := range p.sections {
		if s.reveal.triggered || s.Height <= 0 {
			continue
		}
		visible := math.Min(bottom, s.Bottom()) - math.Max(top, s.Top)
		if visible <= 0 {
			continue
		}
		if visible/s.Height >= p.cfg.RevealThreshold {
			s.reveal.triggered = true
		}
	}
}

// Revealed reports whether the section has started its reveal.
func (s *Section) Revealed() bool {
	return s.reveal == nil || s.reveal.triggered
}

// RevealStyle returns the section's opacity and vertical offset for drawing.
// The hero is always fully shown.
func (s *Section) RevealStyle() (opacity, offsetY float64) {
	if s.reveal == nil {
		return 1, 0
	}
	e := utils.EaseOutCSS(s.reveal.t)
	return e, revealOffsetY * (1 - e)
}
