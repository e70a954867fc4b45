package render

import (
	"image"

	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// textureCacheSize bounds how many converted frames stay on the GPU.
const textureCacheSize = 8

// EbitenSurface is an animator.Surface backed by an offscreen ebiten image.
//
// Frames are converted to textures lazily, only when drawn, so a draw costs
// the same no matter how long the sequence is.
type EbitenSurface struct {
	offscreen *ebiten.Image
	scale     float64
	filter    ebiten.Filter

	textures map[image.Image]*ebiten.Image
	order    []image.Image
}

var _ animator.Surface = (*EbitenSurface)(nil)

// NewEbitenSurface creates a surface that samples with the named filter.
func NewEbitenSurface(filter string) *EbitenSurface {
	return &EbitenSurface{
		scale:    1,
		filter:   FilterFor(filter),
		textures: make(map[image.Image]*ebiten.Image),
	}
}

// FilterFor maps a filter name to the closest ebiten filter.
func FilterFor(filter string) ebiten.Filter {
	if filter == config.FilterNearest {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

func (s *EbitenSurface) SetBackingSize(w, h int) {
	if s.offscreen != nil {
		b := s.offscreen.Bounds()
		if b.Dx() == w && b.Dy() == h {
			s.offscreen.Clear()
			return
		}
		s.offscreen.Deallocate()
		s.offscreen = nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.offscreen = ebiten.NewImage(w, h)
}

func (s *EbitenSurface) SetScale(scale float64) {
	if !(scale > 0) {
		scale = 1
	}
	s.scale = scale
}

func (s *EbitenSurface) Size() (float64, float64) {
	if s.offscreen == nil {
		return 0, 0
	}
	b := s.offscreen.Bounds()
	return float64(b.Dx()) / s.scale, float64(b.Dy()) / s.scale
}

func (s *EbitenSurface) Clear() {
	if s.offscreen != nil {
		s.offscreen.Clear()
	}
}

func (s *EbitenSurface) DrawImage(img image.Image, dst animator.Rect) {
	if s.offscreen == nil || img == nil {
		return
	}
	tex := s.texture(img)
	b := tex.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.GeoM.Scale(s.scale, s.scale)
	op.Filter = s.filter
	s.offscreen.DrawImage(tex, op)
}

// texture returns the GPU copy of img, evicting the oldest when full.
func (s *EbitenSurface) texture(img image.Image) *ebiten.Image {
	if tex, ok := s.textures[img]; ok {
		return tex
	}
	if ei, ok := img.(*ebiten.Image); ok {
		return ei
	}

	tex := ebiten.NewImageFromImage(img)
	s.textures[img] = tex
	s.order = append(s.order, img)

	if len(s.order) > textureCacheSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		if t, ok := s.textures[oldest]; ok {
			t.Deallocate()
			delete(s.textures, oldest)
		}
	}
	return tex
}

// Blit draws the backing store onto screen at device-pixel scale, shifted
// down by offsetY CSS pixels.
func (s *EbitenSurface) Blit(screen *ebiten.Image, offsetY float64) {
	if s.offscreen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, offsetY*s.scale)
	screen.DrawImage(s.offscreen, op)
}
