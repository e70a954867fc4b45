// Package frames loads the ordered image sequence behind the scroll animation.
//
// A Sequence is created once from a Pattern. Every frame is requested at the
// same time and settles independently; the sequence becomes ready only when
// all of its frames have loaded.
package frames

import (
	"fmt"
	"strings"

	"github.com/decker502/scrollreel/pkg/config"
)

// Pattern describes how frame locators are named.
//
// The locator of the i-th frame (1-based) is
// BasePath + Prefix + zero-padded(i, PadWidth) + Suffix.
type Pattern struct {
	BasePath string
	Prefix   string
	PadWidth int
	Suffix   string
	Count    int
}

// PatternFromConfig builds a Pattern from the frames section of the config.
func PatternFromConfig(cfg config.FramesConfig) Pattern {
	return Pattern{
		BasePath: cfg.BasePath,
		Prefix:   cfg.Prefix,
		PadWidth: cfg.PadWidth,
		Suffix:   cfg.Suffix,
		Count:    cfg.Count,
	}
}

// Locator returns the locator for the given 1-based frame number.
func (p Pattern) Locator(number int) string {
	var sb strings.Builder
	sb.WriteString(p.BasePath)
	sb.WriteString(p.Prefix)
	fmt.Fprintf(&sb, "%0*d", p.PadWidth, number)
	sb.WriteString(p.Suffix)
	return sb.String()
}

// Locators returns all Count locators in frame order.
func (p Pattern) Locators() []string {
	if p.Count <= 0 {
		return nil
	}
	out := make([]string, p.Count)
	for i := range out {
		out[i] = p.Locator(i + 1)
	}
	return out
}
