// Package scenes 提供合成房间的 Ebitengine 场景：决策界面和合成棋盘
package scenes

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/mergeroom/pkg/config"
	"github.com/gonewx/mergeroom/pkg/game"
	"github.com/gonewx/mergeroom/pkg/utils"
)

// Scene 是 game.Scene 的别名
type Scene = game.Scene

// 逻辑屏幕尺寸
const (
	WindowWidth  = config.GameWindowWidth
	WindowHeight = config.GameWindowHeight
)

// debugGlyphWidth/Height ebitenutil 调试字体的字符尺寸，字体加载失败时使用
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

// 字号
const (
	labelFontSize = 18.0
	titleFontSize = 30.0
)

var (
	backgroundColor = color.RGBA{R: 58, G: 46, B: 40, A: 255}
	buttonColor     = color.RGBA{R: 92, G: 138, B: 84, A: 255}
	buttonHotColor  = color.RGBA{R: 244, G: 196, B: 72, A: 255}
	buttonEdgeColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	textColor       = color.RGBA{R: 250, G: 244, B: 228, A: 255}
)

// Button 简单的矩形按钮
type Button struct {
	X, Y          float64
	Width, Height float64
	Label         string
	// Highlight 高亮（提示手指向的按钮）
	Highlight bool
	OnClick   func()
}

// Contains 判断点是否落在按钮内
func (b *Button) Contains(p utils.Point) bool {
	return p.X >= b.X && p.X < b.X+b.Width && p.Y >= b.Y && p.Y < b.Y+b.Height
}

// Click 触发点击回调
func (b *Button) Click() {
	if b.OnClick != nil {
		b.OnClick()
	}
}

// Draw 绘制按钮
func (b *Button) Draw(screen *ebiten.Image) {
	fill := buttonColor
	if b.Highlight {
		fill = buttonHotColor
	}
	drawBox(screen, b.X, b.Y, b.Width, b.Height, fill, buttonEdgeColor)
	drawCenteredText(screen, b.Label, b.X+b.Width/2, b.Y+b.Height/2)
}

// clickButtons 找到包含 p 的第一个按钮并触发点击
func clickButtons(buttons []*Button, p utils.Point) bool {
	for _, b := range buttons {
		if b.Contains(p) {
			b.Click()
			return true
		}
	}
	return false
}

// drawBox 绘制带边框的矩形
func drawBox(screen *ebiten.Image, x, y, w, h float64, fill, edge color.Color) {
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, fh, fill, true)
	vector.StrokeLine(screen, fx, fy, fx+fw, fy, 2, edge, true)
	vector.StrokeLine(screen, fx, fy+fh, fx+fw, fy+fh, 2, edge, true)
	vector.StrokeLine(screen, fx, fy, fx, fy+fh, 2, edge, true)
	vector.StrokeLine(screen, fx+fw, fy, fx+fw, fy+fh, 2, edge, true)
}

// drawCenteredText 以 (cx, cy) 为中心绘制标签文字
func drawCenteredText(screen *ebiten.Image, s string, cx, cy float64) {
	drawText(screen, s, labelFontSize, cx, cy, 0)
}

// drawTitle 以 (cx, cy) 为中心绘制大号文字，超过 maxWidth 时折行
func drawTitle(screen *ebiten.Image, s string, cx, cy, maxWidth float64) {
	drawText(screen, s, titleFontSize, cx, cy, maxWidth)
}

func drawText(screen *ebiten.Image, s string, size, cx, cy, maxWidth float64) {
	face, err := utils.DefaultFace(size)
	if err != nil {
		// 回退到调试字体
		x := int(cx) - len(s)*debugGlyphWidth/2
		y := int(cy) - debugGlyphHeight/2
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	if maxWidth > 0 {
		s = strings.Join(utils.WrapText(s, face, maxWidth), "\n")
	}
	utils.DrawTextCentered(screen, s, face, cx, cy, textColor)
}

// drawTextAt 以 (x, y) 为左上角绘制标签文字
func drawTextAt(screen *ebiten.Image, s string, x, y float64) {
	face, err := utils.DefaultFace(labelFontSize)
	if err != nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}
	utils.DrawTextAt(screen, s, face, x, y, textColor)
}
