package animator

import "image"

// Surface is a 2D drawing target with a backing store that may be larger
// than its displayed size.
type Surface interface {
	// SetBackingSize sets the backing resolution in device pixels.
	SetBackingSize(w, h int)

	// SetScale applies a uniform transform so callers draw in CSS pixels.
	SetScale(s float64)

	// Size returns the drawable size in CSS pixels.
	Size() (w, h float64)

	Clear()

	// DrawImage draws img stretched into dst (CSS pixels).
	DrawImage(img image.Image, dst Rect)
}
