// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/decker502/scrollreel/internal/memcheck"
	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/frames"
	"github.com/decker502/scrollreel/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// tickSeconds 每个 tick 的时长，Ebitengine 默认 60 TPS
const tickSeconds = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Settings 应用配置，为 nil 时加载嵌入的默认配置
	Settings *config.Config
	// Fetcher 帧图片获取方式，为 nil 时按地址自动选择文件或 HTTP
	Fetcher frames.Fetcher
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg     *config.Config
	verbose bool

	cancel  context.CancelFunc
	seq     *frames.Sequence
	surface *render.EbitenSurface
	scene   *scene

	layoutViewport animator.Viewport
	keys           []ebiten.Key

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建应用并开始预加载所有帧
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := cfg.Settings
	if settings == nil {
		var err error
		settings, err = config.LoadDefaultConfig()
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
	}
	log.Printf("[Config] Frames: %d x %s%s%0*d%s",
		settings.Frames.Count, settings.Frames.BasePath, settings.Frames.Prefix,
		settings.Frames.PadWidth, 1, settings.Frames.Suffix)

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = frames.NewRoutingFetcher()
	}

	ctx, cancel := context.WithCancel(context.Background())
	locators := frames.PatternFromConfig(settings.Frames).Locators()
	seq := frames.Preload(ctx, locators, fetcher, frames.Options{
		MaxInFlight: settings.Frames.MaxInFlight,
	})
	log.Printf("[App] Preloading %d frames", len(locators))

	surface := render.NewEbitenSurface(settings.Render.Filter)

	return &App{
		cfg:     settings,
		verbose: cfg.Verbose,
		cancel:  cancel,
		seq:     seq,
		surface: surface,
		scene:   newScene(settings, seq, surface),
	}, nil
}

// Close 取消尚未完成的加载
func (a *App) Close() {
	a.cancel()
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if a.layoutViewport.Width > 0 {
		a.scene.setViewport(a.layoutViewport)
	}
	a.handleInput()

	if a.scene.update(tickSeconds) {
		a.checkMemory()
	}
	return nil
}

// checkMemory 就绪后估算解码帧占用的内存
func (a *App) checkMemory() {
	imgs := make([]image.Image, 0, a.seq.Len())
	for i := range a.seq.Len() {
		imgs = append(imgs, a.seq.Frame(i).Image())
	}
	r := memcheck.Warn(memcheck.ImagesBytes(imgs))
	log.Printf("[App] %s", r)
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.surface.Blit(screen, a.scene.heroOffsetY())
	a.drawSections(screen)
	a.drawNavbar(screen)
	if !a.scene.anim.Started() {
		a.drawLoading(screen)
	}
	if a.verbose {
		a.drawDebug(screen)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
//
// 逻辑屏幕按设备像素比放大，画布背后存储与物理像素一一对应。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	vp := viewportFor(outsideWidth, outsideHeight, scale)
	a.layoutViewport = vp
	return screenSize(vp)
}

// viewportFor 窗口尺寸（CSS 像素）与设备缩放组成的视口
func viewportFor(outsideWidth, outsideHeight int, scale float64) animator.Viewport {
	if !(scale > 0) {
		scale = 1
	}
	return animator.Viewport{
		Width:  float64(outsideWidth),
		Height: float64(outsideHeight),
		Scale:  scale,
	}
}

// screenSize 视口对应的设备像素尺寸，至少 1x1
func screenSize(vp animator.Viewport) (int, int) {
	w := int(vp.Width * vp.Scale)
	h := int(vp.Height * vp.Scale)
	return max(w, 1), max(h, 1)
}
