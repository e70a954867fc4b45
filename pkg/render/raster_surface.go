package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	xdraw "golang.org/x/image/draw"
)

// RasterSurface is an in-memory animator.Surface used for headless rendering.
type RasterSurface struct {
	buf    *image.RGBA
	scale  float64
	scaler xdraw.Scaler
}

var _ animator.Surface = (*RasterSurface)(nil)

// NewRasterSurface creates an empty surface that scales with the named filter
// (see config.Filter*).
func NewRasterSurface(filter string) *RasterSurface {
	return &RasterSurface{
		scale:  1,
		scaler: ScalerFor(filter),
	}
}

// ScalerFor maps a filter name to an x/image/draw interpolator.
func ScalerFor(filter string) xdraw.Scaler {
	switch filter {
	case config.FilterNearest:
		return xdraw.NearestNeighbor
	case config.FilterBilinear:
		return xdraw.ApproxBiLinear
	default:
		return xdraw.CatmullRom
	}
}

func (r *RasterSurface) SetBackingSize(w, h int) {
	if r.buf != nil {
		if r.buf.Rect.Dx() == w && r.buf.Rect.Dy() == h {
			r.Clear()
			return
		}
		PutImage(r.buf)
		r.buf = nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	r.buf = GetImage(image.Rect(0, 0, w, h))
}

func (r *RasterSurface) SetScale(s float64) {
	if !(s > 0) {
		s = 1
	}
	r.scale = s
}

func (r *RasterSurface) Size() (float64, float64) {
	if r.buf == nil {
		return 0, 0
	}
	return float64(r.buf.Rect.Dx()) / r.scale, float64(r.buf.Rect.Dy()) / r.scale
}

func (r *RasterSurface) Clear() {
	if r.buf != nil {
		clear(r.buf.Pix)
	}
}

func (r *RasterSurface) DrawImage(img image.Image, dst animator.Rect) {
	if r.buf == nil || img == nil {
		return
	}
	dr := image.Rect(
		int(math.Round(dst.X*r.scale)),
		int(math.Round(dst.Y*r.scale)),
		int(math.Round((dst.X+dst.W)*r.scale)),
		int(math.Round((dst.Y+dst.H)*r.scale)),
	)
	if dr.Empty() {
		return
	}
	r.scaler.Scale(r.buf, dr, img, img.Bounds(), xdraw.Over, nil)
}

// Image returns the backing store, or nil before the first resize.
func (r *RasterSurface) Image() *image.RGBA {
	return r.buf
}

// WritePNG encodes the backing store as PNG.
func (r *RasterSurface) WritePNG(w io.Writer) error {
	if r.buf == nil {
		return fmt.Errorf("surface has no backing store")
	}
	if err := png.Encode(w, r.buf); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Release returns the backing store to the pool.
func (r *RasterSurface) Release() {
	PutImage(r.buf)
	r.buf = nil
}
