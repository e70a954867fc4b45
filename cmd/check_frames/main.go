// Package main checks that every frame of the configured sequence loads and
// decodes, and estimates the memory the decoded sequence needs.
//
// Usage:
//
//	go run ./cmd/check_frames [--config path] [--max-in-flight n] [--verbose]
//
// Exit status is 1 if any frame fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/scrollreel/internal/memcheck"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/embedded"
	"github.com/decker502/scrollreel/pkg/frames"
)

var (
	configFlag   = flag.String("config", "", "Path to YAML config (empty uses data/scrollreel.yaml)")
	inFlightFlag = flag.Int("max-in-flight", -1, "Override frames.maxInFlight (-1 keeps the config value)")
	timeoutFlag  = flag.Duration("timeout", 2*time.Minute, "Give up after this long")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := frames.Options{MaxInFlight: cfg.Frames.MaxInFlight}
	if *inFlightFlag >= 0 {
		opts.MaxInFlight = *inFlightFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	locators := frames.PatternFromConfig(cfg.Frames).Locators()
	fmt.Printf("Checking %d frames (%s .. %s)\n", len(locators), locators[0], locators[len(locators)-1])

	start := time.Now()
	seq := frames.Preload(ctx, locators, frames.NewRoutingFetcher(), opts)
	waitErr := seq.Wait(ctx)
	elapsed := time.Since(start)

	r := summarize(seq)
	fmt.Printf("Loaded %d/%d in %v\n", r.loaded, seq.Len(), elapsed.Round(time.Millisecond))
	for _, f := range r.failures {
		fmt.Printf("  FAIL %s: %v\n", f.Locator(), f.Err())
	}
	if r.mixedSizes {
		fmt.Printf("  WARN frames have different sizes (first %dx%d)\n", r.size.X, r.size.Y)
	}

	if report, err := memcheck.Check(memcheck.ImagesBytes(r.images)); err != nil {
		fmt.Printf("Memory: %v\n", err)
	} else {
		status := "OK"
		if !report.Sufficient() {
			status = "INSUFFICIENT"
		}
		fmt.Printf("Memory: %s [%s]\n", report, status)
	}

	if waitErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", waitErr)
		os.Exit(1)
	}
}

type summary struct {
	loaded     int
	failures   []*frames.Load
	images     []image.Image
	size       image.Point
	mixedSizes bool
}

// summarize collects per-frame results once the sequence has settled or the
// wait was abandoned. Frames still pending count as failures.
func summarize(seq *frames.Sequence) summary {
	var s summary
	for i := range seq.Len() {
		l := seq.Frame(i)
		img := l.Image()
		if img == nil {
			s.failures = append(s.failures, l)
			continue
		}
		s.loaded++
		s.images = append(s.images, img)

		size := img.Bounds().Size()
		if s.loaded == 1 {
			s.size = size
		} else if size != s.size {
			s.mixedSizes = true
		}
	}
	return s
}
