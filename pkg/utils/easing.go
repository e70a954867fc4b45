// Package utils 提供与具体页面无关的数值工具
package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制过渡动画的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，
// 超出范围的输入会先被钳制。
//
// 参考：https://easings.net/ 与 CSS Easing Functions Level 1

// EaseFunc 缓动函数类型
type EaseFunc func(t float64) float64

// EaseOutCSS 对应 CSS 的 ease-out，用于区块显现过渡
var EaseOutCSS = CubicBezier(0, 0, 0.58, 1)

// EaseInOutCubic 三次方缓入缓出，用于锚点平滑滚动
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicBezier 返回 CSS cubic-bezier(x1, y1, x2, y2) 对应的缓动函数
//
// 曲线端点固定为 (0,0) 和 (1,1)，x1、x2 会被钳制到 [0, 1] 以保证 x 单调。
func CubicBezier(x1, y1, x2, y2 float64) EaseFunc {
	x1, x2 = Clamp01(x1), Clamp01(x2)
	return func(t float64) float64 {
		t = Clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		return bezier(y1, y2, solveBezierX(x1, x2, t))
	}
}

// bezier 计算单轴三次贝塞尔在参数 s 处的值
func bezier(p1, p2, s float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierDerivative(p1, p2, s float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

// solveBezierX 求参数 s 使 x(s) = x，先牛顿迭代，不收敛时二分
func solveBezierX(x1, x2, x float64) float64 {
	const epsilon = 1e-7

	s := x
	for range 8 {
		diff := bezier(x1, x2, s) - x
		if math.Abs(diff) < epsilon {
			return s
		}
		d := bezierDerivative(x1, x2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= diff / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for range 64 {
		v := bezier(x1, x2, s)
		if math.Abs(v-x) < epsilon {
			break
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 v 钳制到 [0, 1]，NaN 视为 0
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
