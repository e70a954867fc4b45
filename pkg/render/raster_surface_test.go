package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/frames"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRasterSurfaceResize(t *testing.T) {
	s := NewRasterSurface(config.FilterBilinear)
	defer s.Release()

	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("empty surface size = %vx%v, want 0x0", w, h)
	}

	s.SetBackingSize(200, 100)
	s.SetScale(2)
	if w, h := s.Size(); w != 100 || h != 50 {
		t.Errorf("css size = %vx%v, want 100x50", w, h)
	}
	if b := s.Image().Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("backing = %v, want 200x100", b)
	}

	s.SetBackingSize(0, 10)
	if s.Image() != nil {
		t.Error("zero width should drop the backing store")
	}
}

// TestRasterSurfaceCoversSurface a cover-fit draw leaves no transparent pixel.
func TestRasterSurfaceCoversSurface(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	seq := frames.FromImages([]image.Image{solid(100, 100, red)})

	s := NewRasterSurface(config.FilterNearest)
	defer s.Release()

	a := animator.New(seq, s, &animator.ManualScheduler{}, func() animator.Geometry { return animator.Geometry{} })
	a.Resize(animator.Viewport{Width: 80, Height: 40, Scale: 2})
	if !a.Start() {
		t.Fatal("Start() = false")
	}

	buf := s.Image()
	b := buf.Bounds()
	if b.Dx() != 160 || b.Dy() != 80 {
		t.Fatalf("backing = %v, want 160x80", b)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := buf.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

func TestRasterSurfaceClear(t *testing.T) {
	s := NewRasterSurface(config.FilterCatmullRom)
	defer s.Release()
	s.SetBackingSize(4, 4)
	s.DrawImage(solid(2, 2, color.RGBA{G: 255, A: 255}), animator.Rect{W: 4, H: 4})
	if s.Image().RGBAAt(1, 1).A == 0 {
		t.Fatal("draw left the surface transparent")
	}

	s.Clear()
	for _, v := range s.Image().Pix {
		if v != 0 {
			t.Fatal("Clear() left non-zero pixels")
		}
	}
}

func TestRasterSurfaceWritePNG(t *testing.T) {
	s := NewRasterSurface(config.FilterCatmullRom)
	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err == nil {
		t.Error("WritePNG() without backing store should fail")
	}

	s.SetBackingSize(3, 2)
	defer s.Release()
	if err := s.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("decoded size = %v, want 3x2", b)
	}
}

func TestImagePoolReturnsClearedImages(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 2, 2)

	img := p.Get(rect)
	img.Pix[0] = 255
	p.Put(img)

	again := p.Get(rect)
	if again.Rect != rect {
		t.Errorf("Get() rect = %v, want %v", again.Rect, rect)
	}
	for _, v := range again.Pix {
		if v != 0 {
			t.Fatal("pooled image was not cleared")
		}
	}

	// Unknown sizes are ignored rather than pooled.
	p.Put(image.NewRGBA(image.Rect(0, 0, 9, 9)))
	p.Put(nil)
}

func TestScalerFor(t *testing.T) {
	if ScalerFor(config.FilterNearest) == nil || ScalerFor(config.FilterBilinear) == nil || ScalerFor("unknown") == nil {
		t.Error("ScalerFor returned nil")
	}
}
