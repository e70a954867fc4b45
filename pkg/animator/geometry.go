// Package animator keeps a drawing surface showing the frame that matches
// the user's scroll position inside the hero section.
package animator

import "math"

// Rect is a destination rectangle in CSS pixels.
type Rect struct {
	X, Y, W, H float64
}

// Viewport is the displayed surface size in CSS pixels and the device
// pixel ratio.
type Viewport struct {
	Width, Height float64
	Scale         float64
}

// Geometry is everything Progress needs about the page at one instant.
type Geometry struct {
	ScrollOffset   float64
	SectionTop     float64
	SectionHeight  float64
	ViewportHeight float64
}

// Progress maps the scroll offset to [0, 1] across the scrollable span of the
// section: clamp((scroll - top) / (height - viewport), 0, 1).
//
// A section no taller than the viewport has no span and yields 0, as do NaN
// inputs.
func Progress(g Geometry) float64 {
	span := g.SectionHeight - g.ViewportHeight
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}
	p := (g.ScrollOffset - g.SectionTop) / span
	if math.IsNaN(p) {
		return 0
	}
	return clamp(p, 0, 1)
}

// FrameIndex maps progress to floor(progress * (n-1)), clamped to [0, n-1].
func FrameIndex(progress float64, n int) int {
	if n <= 0 || math.IsNaN(progress) {
		return 0
	}
	idx := math.Floor(clamp(progress, 0, 1) * float64(n-1))
	i := int(idx)
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// CoverFit scales an image of imgW×imgH so it fully covers a surface of
// surfW×surfH while keeping its aspect ratio, and centers it. The result may
// extend past the surface on one axis.
//
// ok is false when any dimension is not positive.
func CoverFit(imgW, imgH, surfW, surfH float64) (dst Rect, ok bool) {
	if !(imgW > 0 && imgH > 0 && surfW > 0 && surfH > 0) {
		return Rect{}, false
	}

	imgRatio := imgW / imgH
	surfRatio := surfW / surfH

	var w, h float64
	if imgRatio > surfRatio {
		h = surfH
		w = imgRatio * h
	} else {
		w = surfW
		h = w / imgRatio
	}

	return Rect{
		X: (surfW - w) / 2,
		Y: (surfH - h) / 2,
		W: w,
		H: h,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
