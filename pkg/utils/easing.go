package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 用于 HUD 的血条平滑和波次提示的淡出。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Approach 每帧向目标值逼近（显示值追随真实值）
// rate 为每秒逼近的比例，dt 为帧时间
func Approach(current, target, rate, dt float64) float64 {
	t := Clamp01(rate * dt)
	return Lerp(current, target, EaseOutCubic(t))
}

// PulseAlpha 提示文字的透明度
// elapsed 从 0 增长到 duration 的过程中，前半段保持不透明，后半段淡出
func PulseAlpha(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	t := Clamp01(elapsed / duration)
	if t < 0.5 {
		return 1
	}
	return 1 - EaseInQuad((t-0.5)*2)
}
