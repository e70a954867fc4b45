package app

import (
	"log"

	"github.com/decker502/scrollreel/pkg/animator"
	"github.com/decker502/scrollreel/pkg/config"
	"github.com/decker502/scrollreel/pkg/frames"
	"github.com/decker502/scrollreel/pkg/page"
)

// scene 连接帧序列、页面模型与动画器，不依赖窗口，便于测试
//
// 所有方法都在游戏循环 goroutine 中调用。
type scene struct {
	fallback string

	seq       *frames.Sequence
	page      *page.Page
	scheduler *animator.ManualScheduler
	anim      *animator.Animator

	fallbackDone bool
	posterShown  bool
}

func newScene(cfg *config.Config, seq *frames.Sequence, surface animator.Surface) *scene {
	s := &scene{
		fallback:  cfg.Frames.Fallback,
		seq:       seq,
		page:      page.New(cfg.Page, float64(cfg.Window.Height)),
		scheduler: &animator.ManualScheduler{},
	}
	s.anim = animator.New(seq, surface, s.scheduler, s.page.Geometry)
	s.setViewport(animator.Viewport{
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
		Scale:  1,
	})
	return s
}

// setViewport 视口或设备缩放变化时调整页面和画布
func (s *scene) setViewport(vp animator.Viewport) {
	if vp == s.anim.Viewport() {
		return
	}
	s.page.SetViewportHeight(vp.Height)
	s.anim.Resize(vp)
	if s.posterShown {
		s.anim.ShowPoster()
	}
}

// update 推进一帧，返回本帧是否完成了就绪切换
func (s *scene) update(dt float64) bool {
	s.page.Update(dt)

	started := s.anim.Start()
	if !started && !s.anim.Started() {
		s.checkFallback()
	}

	s.scheduler.Step()
	return started
}

// checkFallback 所有帧都已结束但有失败时，只执行一次降级显示
func (s *scene) checkFallback() {
	if s.fallbackDone || !s.seq.Settled() || s.seq.Ready() {
		return
	}
	s.fallbackDone = true
	log.Printf("[App] %d of %d frames failed to load, animation disabled", s.seq.Failed(), s.seq.Len())

	if s.fallback != config.FallbackPoster {
		return
	}
	if s.anim.ShowPoster() {
		s.posterShown = true
		log.Printf("[App] Showing poster frame")
	} else {
		log.Printf("[App] Poster frame unavailable, showing background")
	}
}

// scroll 用户滚动，取消进行中的锚点滚动
func (s *scene) scroll(dy float64) {
	if dy != 0 {
		s.page.ScrollBy(dy)
	}
}

// jumpToSection 平滑滚动到第 i 个内容区块（从 0 开始）
func (s *scene) jumpToSection(i int) {
	sections := s.page.Sections()
	if i < 0 || i >= len(sections) {
		return
	}
	if err := s.page.ScrollToAnchor(sections[i].Name); err != nil {
		log.Printf("[App] %v", err)
	}
}

// heroOffsetY 首屏画布的纵向偏移
//
// 画布在首屏区块内保持吸顶，滚出首屏后随页面上移。
func (s *scene) heroOffsetY() float64 {
	hero := s.page.Hero()
	over := s.page.ScrollOffset() - (hero.Bottom() - s.page.ViewportHeight())
	if over <= 0 {
		return 0
	}
	return -over
}
