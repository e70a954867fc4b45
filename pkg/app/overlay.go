package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/scrollreel/pkg/page"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 文字标签布局（CSS 像素）
const (
	labelMargin  = 24
	labelBaseY   = 20
	glyphWidth   = 6 // DebugPrint 字形宽度（设备像素，不随缩放变化）
	labelSpacing = 3
)

var (
	backgroundColor  = color.RGBA{10, 10, 14, 255}
	navScrolledColor = color.RGBA{10, 10, 14, 230}
	panelColor       = color.RGBA{28, 28, 36, 255}
	accentColor      = color.RGBA{120, 200, 255, 255}
)

// drawSections 绘制首屏之后的内容区块，带显现过渡
func (a *App) drawSections(screen *ebiten.Image) {
	scale := float32(a.scene.anim.Viewport().Scale)
	scroll := a.scene.page.ScrollOffset()
	vh := a.scene.page.ViewportHeight()
	w := float32(a.scene.anim.Viewport().Width)

	for _, s := range a.scene.page.Sections() {
		y, h, visible := sectionBand(s, scroll, vh)
		if !visible {
			continue
		}
		opacity, _ := s.RevealStyle()
		if opacity <= 0 {
			continue
		}

		c := withAlpha(panelColor, opacity)
		vector.DrawFilledRect(screen, 0, float32(y)*scale, w*scale, float32(h)*scale, c, false)
		vector.DrawFilledRect(screen, 0, float32(y)*scale, w*scale, 2*scale, withAlpha(accentColor, opacity), false)
		ebitenutil.DebugPrintAt(screen, "#"+s.Name, int(labelMargin*scale), int((y+labelMargin)*float64(scale)))
	}
}

// sectionBand 区块在屏幕上的纵向位置（CSS 像素），包含显现偏移
func sectionBand(s *page.Section, scroll, viewportHeight float64) (y, h float64, visible bool) {
	_, offsetY := s.RevealStyle()
	y = s.Top - scroll + offsetY
	h = s.Height
	visible = y < viewportHeight && y+h > 0
	return y, h, visible
}

// drawNavbar 绘制导航栏，滚动后显示背景
func (a *App) drawNavbar(screen *ebiten.Image) {
	scale := float32(a.scene.anim.Viewport().Scale)
	w := float32(a.scene.anim.Viewport().Width)

	if a.scene.page.NavScrolled() {
		h := float32(a.scene.page.NavbarHeight())
		vector.DrawFilledRect(screen, 0, 0, w*scale, h*scale, navScrolledColor, false)
	}

	for _, l := range navLabels(a.scene.page.Sections(), float64(scale)) {
		ebitenutil.DebugPrintAt(screen, l.text, l.x, l.y)
	}
}

// navLabel 导航栏中一个区块标签的屏幕位置（设备像素）
type navLabel struct {
	text string
	x, y int
}

// navLabels 计算导航栏标签位置，起点按设备缩放换算，标签间距按字形宽度累加
func navLabels(sections []*page.Section, scale float64) []navLabel {
	var out []navLabel
	x := int(labelMargin * scale)
	y := int(labelBaseY * scale)
	for i, s := range sections {
		if i >= len(sectionKeys) {
			break
		}
		text := fmt.Sprintf("[%d] %s", i+1, s.Name)
		out = append(out, navLabel{text: text, x: x, y: y})
		x += (len(text) + labelSpacing) * glyphWidth
	}
	return out
}

// drawLoading 帧未就绪时显示加载进度或失败信息
func (a *App) drawLoading(screen *ebiten.Image) {
	msg := fmt.Sprintf("Loading frames %d/%d", a.seq.Loaded(), a.seq.Len())
	if a.seq.Settled() {
		msg = fmt.Sprintf("%d of %d frames failed to load", a.seq.Failed(), a.seq.Len())
	}
	b := screen.Bounds()
	scale := a.scene.anim.Viewport().Scale
	ebitenutil.DebugPrintAt(screen, msg, int(labelMargin*scale), b.Dy()-32)
}

// drawDebug 显示当前帧与滚动状态
func (a *App) drawDebug(screen *ebiten.Image) {
	g := a.scene.page.Geometry()
	msg := fmt.Sprintf("TPS: %0.1f\nscroll: %.0f/%.0f\nframe: %d/%d\ndraws: %d",
		ebiten.ActualTPS(), g.ScrollOffset, a.scene.page.MaxScroll(),
		a.scene.anim.Current()+1, a.seq.Len(), a.scene.anim.Draws())
	b := screen.Bounds()
	ebitenutil.DebugPrintAt(screen, msg, b.Dx()-160, 72)
}

// withAlpha 按不透明度缩放颜色（预乘 alpha）
func withAlpha(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return color.RGBA{}
	}
	f := func(v uint8) uint8 { return uint8(float64(v) * opacity) }
	return color.RGBA{f(c.R), f(c.G), f(c.B), f(c.A)}
}
