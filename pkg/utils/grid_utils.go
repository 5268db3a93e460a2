package utils

import "math"

// Point 二维坐标点（屏幕/布局坐标）
// 由表现层提供，核心逻辑只读取不修改
type Point struct {
	X, Y float64
}

// Distance 计算两点间的欧氏距离
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// GridLayout 棋盘网格布局参数
// 这些参数定义了棋盘格子在屏幕上的排布，用于生成每个槽位的中心坐标
type GridLayout struct {
	StartX     float64 // 网格起始X坐标
	StartY     float64 // 网格起始Y坐标
	Columns    int     // 网格列数
	Rows       int     // 网格行数
	CellWidth  float64 // 每格宽度
	CellHeight float64 // 每格高度
}

// SlotCount 返回布局中的槽位总数
func (l GridLayout) SlotCount() int {
	if l.Columns <= 0 || l.Rows <= 0 {
		return 0
	}
	return l.Columns * l.Rows
}

// GridToScreenCoords 将网格坐标转换为格子中心的屏幕坐标
// 参数:
//   - col: 列索引
//   - row: 行索引
//
// 返回:
//   - centerX, centerY: 格子中心的屏幕坐标
func (l GridLayout) GridToScreenCoords(col, row int) (centerX, centerY float64) {
	centerX = l.StartX + float64(col)*l.CellWidth + l.CellWidth/2
	centerY = l.StartY + float64(row)*l.CellHeight + l.CellHeight/2
	return centerX, centerY
}

// MouseToGridCoords 将屏幕坐标转换为网格坐标
// 返回:
//   - col, row: 列/行索引
//   - isValid: 是否在有效网格范围内
func (l GridLayout) MouseToGridCoords(mouseX, mouseY int) (col, row int, isValid bool) {
	x := float64(mouseX)
	y := float64(mouseY)

	gridEndX := l.StartX + float64(l.Columns)*l.CellWidth
	gridEndY := l.StartY + float64(l.Rows)*l.CellHeight

	if x < l.StartX || x >= gridEndX || y < l.StartY || y >= gridEndY {
		return 0, 0, false
	}

	col = int((x - l.StartX) / l.CellWidth)
	row = int((y - l.StartY) / l.CellHeight)

	// 边界检查（防止浮点数计算误差导致的越界）
	if col >= l.Columns {
		col = l.Columns - 1
	}
	if row >= l.Rows {
		row = l.Rows - 1
	}

	return col, row, true
}

// SlotPositions 按行优先顺序生成所有槽位的中心坐标
// 槽位索引 = row*Columns + col
func (l GridLayout) SlotPositions() []Point {
	positions := make([]Point, 0, l.SlotCount())
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Columns; col++ {
			x, y := l.GridToScreenCoords(col, row)
			positions = append(positions, Point{X: x, Y: y})
		}
	}
	return positions
}
