// Package memcheck estimates the memory a decoded frame sequence needs and
// compares it with what the machine has available.
package memcheck

import (
	"fmt"
	"image"
	"log"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// bytesPerPixel is the size of a decoded RGBA pixel.
const bytesPerPixel = 4

// Report is the outcome of a memory check.
type Report struct {
	Required  uint64 // estimated bytes for the decoded frames
	Available uint64 // bytes the OS reports as available
	HeapAlloc uint64 // bytes currently allocated by the Go heap
}

// Sufficient reports whether the frames fit into available memory.
func (r Report) Sufficient() bool {
	return r.Required <= r.Available
}

func (r Report) String() string {
	return fmt.Sprintf("frames need %s, available %s (heap %s)",
		FormatBytes(r.Required), FormatBytes(r.Available), FormatBytes(r.HeapAlloc))
}

// availableMemory is replaced in tests.
var availableMemory = func() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// FrameBytes is the decoded size of n frames of w×h pixels.
func FrameBytes(w, h, n int) uint64 {
	if w <= 0 || h <= 0 || n <= 0 {
		return 0
	}
	return uint64(w) * uint64(h) * bytesPerPixel * uint64(n)
}

// ImagesBytes sums the decoded size of the given images. Nil entries are
// skipped.
func ImagesBytes(imgs []image.Image) uint64 {
	var total uint64
	for _, img := range imgs {
		if img == nil {
			continue
		}
		b := img.Bounds()
		total += FrameBytes(b.Dx(), b.Dy(), 1)
	}
	return total
}

// Check compares required against available memory.
func Check(required uint64) (Report, error) {
	avail, err := availableMemory()
	if err != nil {
		return Report{}, fmt.Errorf("failed to read system memory: %w", err)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return Report{
		Required:  required,
		Available: avail,
		HeapAlloc: ms.HeapAlloc,
	}, nil
}

// Warn runs Check and logs a warning when the frames will not fit.
// It returns the report for callers that want to print it.
func Warn(required uint64) Report {
	r, err := Check(required)
	if err != nil {
		log.Printf("[Memcheck] %v", err)
		return r
	}
	if !r.Sufficient() {
		log.Printf("[Memcheck] WARNING: %s", r)
	}
	return r
}

// FormatBytes renders n using binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
