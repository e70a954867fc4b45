// Package main renders the hero frame for a scroll position to a PNG file
// without opening a window.
//
// Usage:
//
//	go run ./cmd/render_frame [flags]
//
// Flags:
//
//	--config <path>    YAML config (default: data/scrollreel.yaml)
//	--scroll <px>      Scroll offset in CSS pixels (default: 0)
//	--steps <n>        Render n evenly spaced positions across the hero instead
//	--width/--height   Viewport in CSS pixels (default: window size from config)
//	--scale <dpr>      Device pixel ratio (default: 1)
//	--out <path>       Output PNG; with --steps, a %03d pattern (default: frame.png)
//	--verbose          Enable verbose logging
//
// Run from the repository root so relative frame paths resolve.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/embedded"
	"github.com/decker502/scrollreel/pkg/frames"
	"github.com/decker502/scrollreel/pkg/page"
	"github.com/decker502/scrollreel/pkg/render"
)

var (
	configFlag  = flag.String("config", "", "Path to YAML config (empty uses data/scrollreel.yaml)")
	scrollFlag  = flag.Float64("scroll", 0, "Scroll offset in CSS pixels")
	stepsFlag   = flag.Int("steps", 0, "Render n evenly spaced scroll positions across the hero")
	widthFlag   = flag.Int("width", 0, "Viewport width in CSS pixels (0 uses the config)")
	heightFlag  = flag.Int("height", 0, "Viewport height in CSS pixels (0 uses the config)")
	scaleFlag   = flag.Float64("scale", 1, "Device pixel ratio")
	outFlag     = flag.String("out", "frame.png", "Output PNG path")
	timeoutFlag = flag.Duration("timeout", 2*time.Minute, "Give up loading frames after this long")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
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

	width, height := float64(cfg.Window.Width), float64(cfg.Window.Height)
	if *widthFlag > 0 {
		width = float64(*widthFlag)
	}
	if *heightFlag > 0 {
		height = float64(*heightFlag)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	locators := frames.PatternFromConfig(cfg.Frames).Locators()
	fmt.Printf("Loading %d frames from %s...\n", len(locators), locators[0])
	seq := frames.Preload(ctx, locators, frames.NewRoutingFetcher(), frames.Options{
		MaxInFlight: cfg.Frames.MaxInFlight,
	})
	if err := seq.Wait(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pg := page.New(cfg.Page, height)
	surface := render.NewRasterSurface(cfg.Render.Filter)
	defer surface.Release()

	scheduler := &animator.ManualScheduler{}
	anim := animator.New(seq, surface, scheduler, pg.Geometry)
	anim.Resize(animator.Viewport{Width: width, Height: height, Scale: *scaleFlag})
	if !anim.Start() {
		fmt.Fprintln(os.Stderr, "Error: sequence not ready")
		os.Exit(1)
	}
	defer anim.Stop()

	positions := []float64{*scrollFlag}
	if *stepsFlag > 0 {
		positions = heroPositions(pg, *stepsFlag)
	}

	for i, y := range positions {
		pg.ScrollTo(y)
		scheduler.Step()

		out := *outFlag
		if len(positions) > 1 {
			out = numbered(out, i)
		}
		if err := writePNG(surface, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("scroll %6.0f  progress %.3f  frame %3d/%d  -> %s\n",
			pg.ScrollOffset(), animator.Progress(pg.Geometry()), anim.Current()+1, seq.Len(), out)
	}
}

// heroPositions spreads n scroll offsets from the top of the hero to the
// point where the animation ends.
func heroPositions(pg *page.Page, n int) []float64 {
	g := pg.Geometry()
	span := g.SectionHeight - g.ViewportHeight
	if n == 1 || span <= 0 {
		return []float64{g.SectionTop}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = g.SectionTop + span*float64(i)/float64(n-1)
	}
	return out
}

// numbered inserts the index into path, using a % verb when present.
func numbered(path string, i int) string {
	if strings.Contains(path, "%") {
		return fmt.Sprintf(path, i)
	}
	base := strings.TrimSuffix(path, ".png")
	return fmt.Sprintf("%s-%03d.png", base, i)
}

func writePNG(surface *render.RasterSurface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := surface.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
