package app

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 按住方向键时的重复触发节奏（tick）
const (
	keyRepeatDelay    = 24
	keyRepeatInterval = 4
)

// sectionKeys 数字键 1..9 依次跳转到内容区块
var sectionKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// wheelScroll 将滚轮偏移换算为滚动距离，向上滚动为正偏移
func wheelScroll(wheelY, step float64) float64 {
	return -wheelY * step
}

// keyScroll 返回按键对应的滚动距离
//
// Home/End 返回无穷大，由页面钳制到文档边界。
func keyScroll(key ebiten.Key, step, viewportHeight float64) (float64, bool) {
	switch key {
	case ebiten.KeyArrowDown:
		return step, true
	case ebiten.KeyArrowUp:
		return -step, true
	case ebiten.KeyPageDown, ebiten.KeySpace:
		return viewportHeight * 0.9, true
	case ebiten.KeyPageUp:
		return -viewportHeight * 0.9, true
	case ebiten.KeyHome:
		return math.Inf(-1), true
	case ebiten.KeyEnd:
		return math.Inf(1), true
	}
	return 0, false
}

// sectionForKey 返回数字键对应的区块下标
func sectionForKey(key ebiten.Key) (int, bool) {
	for i, k := range sectionKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// repeating 按键刚按下或处于重复触发节拍上
func repeating(duration int) bool {
	if duration == 1 {
		return true
	}
	return duration >= keyRepeatDelay && (duration-keyRepeatDelay)%keyRepeatInterval == 0
}

// handleInput 读取本帧输入并作用到场景
func (a *App) handleInput() {
	step := a.cfg.Page.ScrollStep
	vh := a.scene.page.ViewportHeight()

	if _, wy := ebiten.Wheel(); wy != 0 {
		a.scene.scroll(wheelScroll(wy, step))
	}

	a.keys = inpututil.AppendPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if dy, ok := keyScroll(k, step, vh); ok && repeating(inpututil.KeyPressDuration(k)) {
			a.scene.scroll(dy)
			continue
		}
		if i, ok := sectionForKey(k); ok && inpututil.IsKeyJustPressed(k) {
			a.scene.jumpToSection(i)
		}
	}
}
