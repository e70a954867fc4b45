package page

import (
	"math"
	"testing"

	"github.com/decker502/scrollreel/pkg/config"
)

func testConfig() config.PageConfig {
	return config.PageConfig{
		HeroHeight:          1100,
		NavScrolledAfter:    100,
		ScrollStep:          60,
		AnchorScrollSeconds: 1,
		RevealThreshold:     0.1,
		RevealBottomMargin:  50,
		RevealSeconds:       0.6,
		Sections: []config.SectionConfig{
			{Name: "about", Height: 500},
			{Name: "projects", Height: 1000},
		},
	}
}

func TestLayout(t *testing.T) {
	p := New(testConfig(), 600)

	if p.DocumentHeight() != 2600 {
		t.Errorf("DocumentHeight() = %v, want 2600", p.DocumentHeight())
	}
	if p.MaxScroll() != 2000 {
		t.Errorf("MaxScroll() = %v, want 2000", p.MaxScroll())
	}

	about, ok := p.Section("about")
	if !ok || about.Top != 1100 || about.Bottom() != 1600 {
		t.Errorf("about = %+v, want top 1100 bottom 1600", about)
	}
	projects, _ := p.Section("projects")
	if projects.Top != 1600 {
		t.Errorf("projects.Top = %v, want 1600", projects.Top)
	}
	if hero, ok := p.Section(HeroName); !ok || hero != p.Hero() {
		t.Error("hero anchor not registered")
	}
}

func TestScrollClamp(t *testing.T) {
	p := New(testConfig(), 600)

	tests := []struct {
		name string
		to   float64
		want float64
	}{
		{"inside", 350, 350},
		{"negative", -40, 0},
		{"past end", 99999, 2000},
		{"NaN", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.ScrollTo(tt.to)
			if got := p.ScrollOffset(); got != tt.want {
				t.Errorf("ScrollTo(%v) -> %v, want %v", tt.to, got, tt.want)
			}
		})
	}

	p.ScrollTo(100)
	p.ScrollBy(60)
	if p.ScrollOffset() != 160 {
		t.Errorf("ScrollBy(60) -> %v, want 160", p.ScrollOffset())
	}

	// Growing the viewport re-clamps the offset.
	p.ScrollTo(2000)
	p.SetViewportHeight(1000)
	if p.ScrollOffset() != 1600 {
		t.Errorf("offset after viewport grow = %v, want 1600", p.ScrollOffset())
	}
}

func TestGeometry(t *testing.T) {
	p := New(testConfig(), 600)
	p.ScrollTo(350)

	g := p.Geometry()
	if g.ScrollOffset != 350 || g.SectionTop != 0 || g.SectionHeight != 1100 || g.ViewportHeight != 600 {
		t.Errorf("Geometry() = %+v", g)
	}
}

func TestNavScrolled(t *testing.T) {
	p := New(testConfig(), 600)

	p.ScrollTo(100)
	if p.NavScrolled() {
		t.Error("NavScrolled() at exactly 100 = true, want false")
	}
	p.ScrollTo(101)
	if !p.NavScrolled() {
		t.Error("NavScrolled() at 101 = false, want true")
	}
	p.ScrollTo(0)
	if p.NavScrolled() {
		t.Error("NavScrolled() back at top = true, want false")
	}
}

func TestReveal(t *testing.T) {
	p := New(testConfig(), 600)
	about, _ := p.Section("about")
	projects, _ := p.Section("projects")

	if about.Revealed() || projects.Revealed() {
		t.Fatal("sections revealed at top of page")
	}
	if !p.Hero().Revealed() {
		t.Error("hero must always be shown")
	}

	// Effective viewport bottom = scroll + 600 - 50. About starts at 1100 and
	// needs 50px (10% of 500) visible.
	p.ScrollTo(580) // bottom 1130: 30px visible
	if about.Revealed() {
		t.Error("about revealed with 6% visible")
	}
	p.ScrollTo(600) // bottom 1150: 50px visible
	if !about.Revealed() {
		t.Error("about not revealed with 10% visible")
	}

	// Reveal is one-way.
	p.ScrollTo(0)
	if !about.Revealed() {
		t.Error("about hidden again after scrolling away")
	}
	if projects.Revealed() {
		t.Error("projects revealed without being seen")
	}
}

func TestRevealStyle(t *testing.T) {
	p := New(testConfig(), 600)
	about, _ := p.Section("about")

	if op, dy := about.RevealStyle(); op != 0 || dy != revealOffsetY {
		t.Errorf("hidden style = (%v, %v), want (0, %v)", op, dy, revealOffsetY)
	}

	p.ScrollTo(800)
	p.Update(0.3)
	op, dy := about.RevealStyle()
	if op <= 0 || op >= 1 || dy <= 0 || dy >= revealOffsetY {
		t.Errorf("mid-transition style = (%v, %v)", op, dy)
	}

	p.Update(1)
	if op, dy := about.RevealStyle(); op != 1 || dy != 0 {
		t.Errorf("final style = (%v, %v), want (1, 0)", op, dy)
	}

	if op, dy := p.Hero().RevealStyle(); op != 1 || dy != 0 {
		t.Errorf("hero style = (%v, %v), want (1, 0)", op, dy)
	}
}

func TestScrollToAnchor(t *testing.T) {
	p := New(testConfig(), 600)

	if err := p.ScrollToAnchor("nowhere"); err == nil {
		t.Error("expected error for unknown anchor")
	}

	if err := p.ScrollToAnchor("about"); err != nil {
		t.Fatalf("ScrollToAnchor() error: %v", err)
	}
	if !p.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollToAnchor")
	}

	p.Update(0.5)
	mid := p.ScrollOffset()
	if math.Abs(mid-550) > 1e-9 {
		t.Errorf("offset at half time = %v, want 550", mid)
	}

	p.Update(0.6)
	if p.ScrollOffset() != 1100 || p.Scrolling() {
		t.Errorf("offset = %v scrolling = %v, want 1100 and false", p.ScrollOffset(), p.Scrolling())
	}

	// Anchors near the end clamp to MaxScroll.
	p.SetViewportHeight(1200)
	p.ScrollToAnchor("projects")
	p.Update(2)
	if p.ScrollOffset() != 1400 {
		t.Errorf("offset = %v, want 1400", p.ScrollOffset())
	}
}

func TestScrollToAnchorBelowNavbar(t *testing.T) {
	cfg := testConfig()
	cfg.NavbarHeight = 56

	tests := []struct {
		anchor string
		want   float64
	}{
		{"about", 1044},
		{"projects", 1544},
		{HeroName, 0}, // clamped at the top of the document
	}
	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			p := New(cfg, 600)
			p.ScrollTo(300)
			if err := p.ScrollToAnchor(tt.anchor); err != nil {
				t.Fatalf("ScrollToAnchor() error: %v", err)
			}
			p.Update(2)
			if got := p.ScrollOffset(); got != tt.want {
				t.Errorf("offset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScrollToAnchorInterruptedByUser(t *testing.T) {
	p := New(testConfig(), 600)
	p.ScrollToAnchor("projects")
	p.Update(0.2)

	p.ScrollBy(10)
	if p.Scrolling() {
		t.Error("manual scroll must cancel the anchor scroll")
	}
	at := p.ScrollOffset()
	p.Update(1)
	if p.ScrollOffset() != at {
		t.Error("offset moved after cancel")
	}
}

func TestScrollToAnchorInstant(t *testing.T) {
	cfg := testConfig()
	cfg.AnchorScrollSeconds = 0
	p := New(cfg, 600)

	p.ScrollToAnchor("about")
	if p.ScrollOffset() != 1100 || p.Scrolling() {
		t.Errorf("instant anchor scroll: offset=%v scrolling=%v", p.ScrollOffset(), p.Scrolling())
	}
}
