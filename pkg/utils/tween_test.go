package utils

import (
	"math"
	"testing"
)

func TestEaseFunctions(t *testing.T) {
	tests := []struct {
		name     string
		ease     EaseFunc
		input    float64
		expected float64
	}{
		{"线性-中点", EaseLinear, 0.5, 0.5},
		{"缓出-起点", EaseOutCubic, 0, 0},
		{"缓出-中点", EaseOutCubic, 0.5, 0.875}, // 1 - (1-0.5)^3
		{"缓出-终点", EaseOutCubic, 1, 1},
		{"回弹-起点", EaseOutBack, 0, 0},
		{"回弹-终点", EaseOutBack, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ease(tt.input); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("got %v, 期望 %v", got, tt.expected)
			}
		})
	}

	// 回弹缓出在中段会越过终点
	if EaseOutBack(0.7) <= 1 {
		t.Errorf("EaseOutBack(0.7) = %v, 期望 > 1", EaseOutBack(0.7))
	}
}

func TestTween(t *testing.T) {
	tw := NewTween(Point{X: 0, Y: 0}, Point{X: 100, Y: 200}, 0.5, nil)
	if tw.Done() {
		t.Fatal("新建的动画不应该已结束")
	}

	tw.Update(0.25)
	if p := tw.Position(); math.Abs(p.X-50) > 0.001 || math.Abs(p.Y-100) > 0.001 {
		t.Errorf("Position = %+v, 期望 (50, 100)", p)
	}

	tw.Update(1.0)
	if !tw.Done() {
		t.Error("超过时长后动画应该结束")
	}
	if p := tw.Position(); p != (Point{X: 100, Y: 200}) {
		t.Errorf("Position = %+v, 期望终点", p)
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := NewTween(Point{X: 1, Y: 1}, Point{X: 9, Y: 9}, 0, EaseOutCubic)
	if !tw.Done() || tw.Position() != (Point{X: 9, Y: 9}) {
		t.Errorf("零时长动画应该直接位于终点，got %+v", tw.Position())
	}
}
