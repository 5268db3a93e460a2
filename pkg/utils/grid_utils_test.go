package utils

import (
	"math"
	"testing"
)

// 测试用的 5x5 布局（与默认棋盘配置一致）
var testLayout = GridLayout{
	StartX:     100,
	StartY:     200,
	Columns:    5,
	Rows:       5,
	CellWidth:  110,
	CellHeight: 110,
}

// TestGridToScreenCoords 测试网格坐标到屏幕坐标的转换
func TestGridToScreenCoords(t *testing.T) {
	tests := []struct {
		name  string
		col   int
		row   int
		wantX float64
		wantY float64
	}{
		{"左上角格子", 0, 0, 155, 255},
		{"右下角格子", 4, 4, 100 + 4*110 + 55, 200 + 4*110 + 55},
		{"中间格子", 2, 1, 100 + 2*110 + 55, 200 + 110 + 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := testLayout.GridToScreenCoords(tt.col, tt.row)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("GridToScreenCoords(%d, %d) = (%v, %v), want (%v, %v)",
					tt.col, tt.row, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestMouseToGridCoords 测试屏幕坐标到网格坐标的转换
func TestMouseToGridCoords(t *testing.T) {
	tests := []struct {
		name      string
		x, y      int
		wantCol   int
		wantRow   int
		wantValid bool
	}{
		{"左上角边界", 100, 200, 0, 0, true},
		{"右下角最后一个像素", 100 + 5*110 - 1, 200 + 5*110 - 1, 4, 4, true},
		{"左侧越界", 99, 250, 0, 0, false},
		{"下方越界", 150, 200 + 5*110, 0, 0, false},
		{"第二行第三列", 100 + 2*110 + 10, 200 + 110 + 10, 2, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, valid := testLayout.MouseToGridCoords(tt.x, tt.y)
			if valid != tt.wantValid {
				t.Fatalf("valid = %v, want %v", valid, tt.wantValid)
			}
			if valid && (col != tt.wantCol || row != tt.wantRow) {
				t.Errorf("got (%d, %d), want (%d, %d)", col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}

// TestSlotPositions 测试槽位中心坐标生成（行优先）
func TestSlotPositions(t *testing.T) {
	positions := testLayout.SlotPositions()
	if len(positions) != 25 {
		t.Fatalf("Expected 25 slot positions, got %d", len(positions))
	}

	// 索引 7 = row 1, col 2
	x, y := testLayout.GridToScreenCoords(2, 1)
	if positions[7].X != x || positions[7].Y != y {
		t.Errorf("positions[7] = %+v, want (%v, %v)", positions[7], x, y)
	}
}

// TestSlotCountInvalidLayout 测试无效布局返回 0 个槽位
func TestSlotCountInvalidLayout(t *testing.T) {
	if n := (GridLayout{Columns: 0, Rows: 3}).SlotCount(); n != 0 {
		t.Errorf("Expected 0 slots, got %d", n)
	}
	if n := (GridLayout{Columns: 3, Rows: -1}).SlotCount(); n != 0 {
		t.Errorf("Expected 0 slots, got %d", n)
	}
}

// TestPointDistance 测试两点距离
func TestPointDistance(t *testing.T) {
	d := Point{X: 0, Y: 0}.Distance(Point{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", d)
	}
}
