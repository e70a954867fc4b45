// Command scrollreel shows a frame sequence that plays as the page scrolls.
//
// Usage:
//
//	scrollreel [flags]
//
// Flags:
//
//	--config <path>   YAML config (default: embedded data/scrollreel.yaml)
//	--verbose         Enable verbose logging
//
// Controls:
//
//	Wheel / Arrows / PageUp / PageDown / Home / End - Scroll
//	1..9 - Jump to section
//	F11  - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/decker502/scrollreel/pkg/app"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configFlag  = flag.String("config", "", "Path to YAML config (empty uses the embedded default)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	settings, err := config.LoadConfig(*configFlag)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verboseFlag,
		Settings: settings,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
