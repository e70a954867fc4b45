package animator

import (
	"math"
	"testing"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		want float64
	}{
		{
			name: "midpoint of scrollable span",
			g:    Geometry{ScrollOffset: 350, SectionTop: 100, SectionHeight: 1100, ViewportHeight: 600},
			want: 0.5,
		},
		{
			name: "above section start clamps to 0",
			g:    Geometry{ScrollOffset: 0, SectionTop: 100, SectionHeight: 1100, ViewportHeight: 600},
			want: 0,
		},
		{
			name: "past section end clamps to 1",
			g:    Geometry{ScrollOffset: 5000, SectionTop: 100, SectionHeight: 1100, ViewportHeight: 600},
			want: 1,
		},
		{
			name: "exact end",
			g:    Geometry{ScrollOffset: 600, SectionTop: 100, SectionHeight: 1100, ViewportHeight: 600},
			want: 1,
		},
		{
			name: "section shorter than viewport",
			g:    Geometry{ScrollOffset: 300, SectionTop: 0, SectionHeight: 400, ViewportHeight: 600},
			want: 0,
		},
		{
			name: "section equal to viewport",
			g:    Geometry{ScrollOffset: 300, SectionTop: 0, SectionHeight: 600, ViewportHeight: 600},
			want: 0,
		},
		{
			name: "zero height section",
			g:    Geometry{ScrollOffset: 10},
			want: 0,
		},
		{
			name: "NaN scroll offset",
			g:    Geometry{ScrollOffset: math.NaN(), SectionHeight: 1000, ViewportHeight: 500},
			want: 0,
		},
		{
			name: "infinite scroll offset",
			g:    Geometry{ScrollOffset: math.Inf(1), SectionHeight: 1000, ViewportHeight: 500},
			want: 1,
		},
		{
			name: "infinite section height",
			g:    Geometry{ScrollOffset: 10, SectionHeight: math.Inf(1), ViewportHeight: 500},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.g); got != tt.want {
				t.Errorf("Progress(%+v) = %v, want %v", tt.g, got, tt.want)
			}
		})
	}
}

func TestFrameIndex(t *testing.T) {
	tests := []struct {
		progress float64
		n        int
		want     int
	}{
		{0, 200, 0},
		{1, 200, 199},
		{0.5, 3, 1},
		{0.499, 3, 0},
		{0.999, 3, 1},
		{1.5, 10, 9},
		{-0.5, 10, 0},
		{math.NaN(), 10, 0},
		{0.7, 1, 0},
		{0.7, 0, 0},
		{0.7, -3, 0},
	}

	for _, tt := range tests {
		if got := FrameIndex(tt.progress, tt.n); got != tt.want {
			t.Errorf("FrameIndex(%v, %d) = %d, want %d", tt.progress, tt.n, got, tt.want)
		}
	}
}

// TestFrameIndexMonotonic p1 < p2 implies index(p1) <= index(p2).
func TestFrameIndexMonotonic(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 200} {
		prev := FrameIndex(0, n)
		for i := 1; i <= 1000; i++ {
			p := float64(i) / 1000
			idx := FrameIndex(p, n)
			if idx < prev {
				t.Fatalf("n=%d: FrameIndex(%v)=%d < previous %d", n, p, idx, prev)
			}
			if idx < 0 || idx > n-1 {
				t.Fatalf("n=%d: FrameIndex(%v)=%d out of range", n, p, idx)
			}
			prev = idx
		}
		if prev != n-1 {
			t.Errorf("n=%d: FrameIndex(1) = %d, want %d", n, prev, n-1)
		}
	}
}

func TestProgressToFrameScenario(t *testing.T) {
	g := Geometry{ScrollOffset: 350, SectionTop: 100, SectionHeight: 1100, ViewportHeight: 600}
	if idx := FrameIndex(Progress(g), 3); idx != 1 {
		t.Errorf("frame index = %d, want 1", idx)
	}
}

func TestCoverFit(t *testing.T) {
	tests := []struct {
		name                   string
		imgW, imgH, surW, surH float64
		want                   Rect
		wantOK                 bool
	}{
		{
			name: "same aspect fills exactly",
			imgW: 1600, imgH: 900, surW: 800, surH: 450,
			want:   Rect{X: 0, Y: 0, W: 800, H: 450},
			wantOK: true,
		},
		{
			name: "2:1 image on 2:1 surface",
			imgW: 1600, imgH: 800, surW: 800, surH: 400,
			want:   Rect{X: 0, Y: 0, W: 800, H: 400},
			wantOK: true,
		},
		{
			name: "square image on wide surface overflows vertically",
			imgW: 1000, imgH: 1000, surW: 800, surH: 400,
			want:   Rect{X: 0, Y: -200, W: 800, H: 800},
			wantOK: true,
		},
		{
			name: "wide image on square surface overflows horizontally",
			imgW: 2000, imgH: 1000, surW: 500, surH: 500,
			want:   Rect{X: -250, Y: 0, W: 1000, H: 500},
			wantOK: true,
		},
		{
			name: "zero surface",
			imgW: 100, imgH: 100, surW: 0, surH: 0,
			wantOK: false,
		},
		{
			name: "zero image",
			imgW: 0, imgH: 100, surW: 800, surH: 400,
			wantOK: false,
		},
		{
			name: "NaN surface",
			imgW: 100, imgH: 100, surW: math.NaN(), surH: 400,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoverFit(tt.imgW, tt.imgH, tt.surW, tt.surH)
			if ok != tt.wantOK {
				t.Fatalf("CoverFit ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !rectClose(got, tt.want) {
				t.Errorf("CoverFit = %+v, want %+v", got, tt.want)
			}
			// Cover: the drawn rect always contains the surface.
			if got.X > 1e-9 || got.Y > 1e-9 || got.X+got.W < tt.surW-1e-9 || got.Y+got.H < tt.surH-1e-9 {
				t.Errorf("CoverFit %+v does not cover %vx%v", got, tt.surW, tt.surH)
			}
		})
	}
}

func rectClose(a, b Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}
