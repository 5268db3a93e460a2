package utils

import "math"

// EaseFunc 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的进度
type EaseFunc func(t float64) float64

// EaseLinear 线性缓动（匀速）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出：开始快，结束慢（用于弹回原位）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutBack 回弹缓出：略微越过终点后回落（用于合成后的放大效果）
// 公式：f(t) = 1 + c3(t-1)³ + c1(t-1)²
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint 两点间线性插值
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Tween 点到点的补间动画
// 表现层用它播放物品弹回、移动到新槽位等过渡效果
type Tween struct {
	From, To Point
	Duration float64 // 秒
	Ease     EaseFunc
	elapsed  float64
}

// NewTween 创建补间动画，ease 为 nil 时使用线性缓动
func NewTween(from, to Point, duration float64, ease EaseFunc) *Tween {
	if ease == nil {
		ease = EaseLinear
	}
	return &Tween{From: from, To: to, Duration: duration, Ease: ease}
}

// Update 推进动画时间
func (tw *Tween) Update(dt float64) {
	tw.elapsed += dt
	if tw.elapsed > tw.Duration {
		tw.elapsed = tw.Duration
	}
}

// Progress 返回线性进度 [0, 1]
func (tw *Tween) Progress() float64 {
	if tw.Duration <= 0 {
		return 1
	}
	return tw.elapsed / tw.Duration
}

// Position 返回当前插值位置
func (tw *Tween) Position() Point {
	return LerpPoint(tw.From, tw.To, tw.Ease(tw.Progress()))
}

// Done 动画是否已结束
func (tw *Tween) Done() bool {
	return tw.Progress() >= 1
}
