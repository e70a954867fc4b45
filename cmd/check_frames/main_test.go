package main

import (
	"image"
	"testing"

	"github.com/decker502/scrollreel/pkg/frames"
)

func TestSummarize(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 16, 9))
	b := image.NewRGBA(image.Rect(0, 0, 16, 9))
	c := image.NewRGBA(image.Rect(0, 0, 8, 8))

	tests := []struct {
		name      string
		imgs      []image.Image
		loaded    int
		failures  []int
		wantMixed bool
	}{
		{"all good", []image.Image{a, b}, 2, nil, false},
		{"one missing", []image.Image{a, nil, b}, 2, []int{1}, false},
		{"mixed sizes", []image.Image{a, c}, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := summarize(frames.FromImages(tt.imgs))
			if s.loaded != tt.loaded {
				t.Errorf("loaded = %d, want %d", s.loaded, tt.loaded)
			}
			if len(s.failures) != len(tt.failures) {
				t.Fatalf("failures = %d, want %d", len(s.failures), len(tt.failures))
			}
			for i, idx := range tt.failures {
				if s.failures[i].Index() != idx {
					t.Errorf("failure %d index = %d, want %d", i, s.failures[i].Index(), idx)
				}
			}
			if s.mixedSizes != tt.wantMixed {
				t.Errorf("mixedSizes = %v, want %v", s.mixedSizes, tt.wantMixed)
			}
			if len(s.images) != tt.loaded {
				t.Errorf("images = %d, want %d", len(s.images), tt.loaded)
			}
		})
	}
}
