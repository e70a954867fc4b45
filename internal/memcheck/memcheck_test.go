package memcheck

import (
	"errors"
	"image"
	"testing"
)

func TestFrameBytes(t *testing.T) {
	tests := []struct {
		name    string
		w, h, n int
		want    uint64
	}{
		{"single 1080p", 1920, 1080, 1, 1920 * 1080 * 4},
		{"200 frames", 1280, 720, 200, 1280 * 720 * 4 * 200},
		{"zero width", 0, 720, 10, 0},
		{"negative count", 10, 10, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrameBytes(tt.w, tt.h, tt.n); got != tt.want {
				t.Errorf("FrameBytes(%d, %d, %d) = %d, want %d", tt.w, tt.h, tt.n, got, tt.want)
			}
		})
	}
}

func TestImagesBytes(t *testing.T) {
	imgs := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 10, 10)),
		nil,
		image.NewGray(image.Rect(0, 0, 5, 2)),
	}
	if got, want := ImagesBytes(imgs), uint64(400+40); got != want {
		t.Errorf("ImagesBytes() = %d, want %d", got, want)
	}
}

func withAvailable(t *testing.T, n uint64, err error) {
	t.Helper()
	orig := availableMemory
	availableMemory = func() (uint64, error) { return n, err }
	t.Cleanup(func() { availableMemory = orig })
}

func TestCheck(t *testing.T) {
	withAvailable(t, 1000, nil)

	r, err := Check(800)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !r.Sufficient() {
		t.Errorf("800 of 1000 reported insufficient")
	}

	r, _ = Check(1001)
	if r.Sufficient() {
		t.Errorf("1001 of 1000 reported sufficient")
	}
	if r := Warn(2000); r.Required != 2000 || r.Available != 1000 {
		t.Errorf("Warn() = %+v", r)
	}
}

func TestCheckError(t *testing.T) {
	withAvailable(t, 0, errors.New("no /proc"))
	if _, err := Check(1); err == nil {
		t.Error("expected error")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{200 * 1280 * 720 * 4, "703.1 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
