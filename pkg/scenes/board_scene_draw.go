package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/mergeroom/pkg/board"
	"github.com/gonewx/mergeroom/pkg/utils"
)

var (
	slotColor     = color.RGBA{R: 84, G: 68, B: 58, A: 255}
	slotEdgeColor = color.RGBA{R: 120, G: 100, B: 84, A: 255}
	hintColor     = color.RGBA{R: 255, G: 236, B: 120, A: 255}
	junkColor     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	overlayColor  = color.RGBA{A: 160}

	// kindColors 故事种类的颜色，按种类循环使用
	kindColors = []color.RGBA{
		{R: 214, G: 96, B: 77, A: 255},
		{R: 90, G: 160, B: 214, A: 255},
		{R: 132, G: 190, B: 96, A: 255},
		{R: 196, G: 128, B: 210, A: 255},
		{R: 232, G: 168, B: 64, A: 255},
	}
)

// Draw 绘制棋盘场景
func (s *BoardScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.drawHeader(screen)
	s.drawSlots(screen)
	s.drawHint(screen)

	for _, item := range s.session.Grid().Items() {
		slot, _ := item.Slot()
		pos := s.session.Grid().Position(slot)
		if tw, ok := s.tweens[item.ID]; ok {
			pos = tw.Position()
		}
		s.drawItem(screen, item, pos)
	}
	if s.dragged != nil {
		s.drawItem(screen, s.dragged, s.dragCenter())
	}

	for _, b := range s.spawners {
		b.Draw(screen)
		if b.Highlight {
			drawCenteredText(screen, "v  tap  v", b.X+b.Width/2, b.Y-18)
		}
	}

	if s.msgTimer > 0 {
		drawTitle(screen, s.message, WindowWidth/2, 300, WindowWidth-80)
	}
	if s.victory {
		vector.DrawFilledRect(screen, 0, 0, WindowWidth, WindowHeight, overlayColor, false)
		drawTitle(screen, "The room is fixed! Thanks for helping.", WindowWidth/2, WindowHeight/2, WindowWidth-80)
	}
}

// drawHeader 得分和当前步骤
func (s *BoardScene) drawHeader(screen *ebiten.Image) {
	p := s.session.Progression()
	step := "all done"
	if !p.IsAllComplete() {
		step = fmt.Sprintf("%d/%d", p.CurrentStep()+1, p.TotalSteps())
	}
	drawTextAt(screen, fmt.Sprintf("Score: %d   Step: %s", s.session.Score(), step), 20, 16)
	help := "Drag two identical items together. [H] hint  [R] new round  [1-9] spawn"
	if utils.IsMobile() {
		help = "Drag two identical items together. Tap a glowing button to spawn."
	}
	drawText(screen, help, labelFontSize, WindowWidth/2, 60, WindowWidth-40)
}

// drawSlots 绘制所有槽位
func (s *BoardScene) drawSlots(screen *ebiten.Image) {
	w, h := s.cellSize()
	grid := s.session.Grid()
	for i := 0; i < grid.Len(); i++ {
		c := grid.Position(board.SlotIndex(i))
		drawBox(screen, c.X-w/2, c.Y-h/2, w, h, slotColor, slotEdgeColor)
	}
}

// drawHint 空闲提示：高亮一对可合成物品所在的槽位
func (s *BoardScene) drawHint(screen *ebiten.Image) {
	if !s.HintVisible() {
		return
	}
	a, b, ok := s.session.Hint()
	if !ok {
		return
	}
	w, h := s.cellSize()
	for _, slot := range []board.SlotIndex{a, b} {
		c := s.session.Grid().Position(slot)
		drawBox(screen, c.X-w/2, c.Y-h/2, w, h, hintColor, slotEdgeColor)
	}
}

// drawItem 在 center 处绘制物品：颜色区分种类，边长随等级增大
func (s *BoardScene) drawItem(screen *ebiten.Image, item *board.Item, center utils.Point) {
	cw, ch := s.cellSize()
	terminal := float64(s.session.Config().TerminalTier)
	scale := 0.55 + 0.35*float64(item.Tier)/terminal
	if t, ok := s.pops[item.ID]; ok {
		scale *= utils.Lerp(0.6, 1, utils.EaseOutBack(t/popDuration))
	}

	w, h := cw*scale, ch*scale
	drawBox(screen, center.X-w/2, center.Y-h/2, w, h, s.itemColor(item.Kind), buttonEdgeColor)
	drawCenteredText(screen, fmt.Sprintf("%d-%d", item.Kind+1, item.Tier+1), center.X, center.Y)
}

// itemColor 种类颜色，故事之外的种类（杂物）为灰色
func (s *BoardScene) itemColor(kind int) color.RGBA {
	if kind < 0 || kind >= s.session.Progression().TotalSteps() {
		return junkColor
	}
	return kindColors[kind%len(kindColors)]
}

// cellSize 槽位绘制尺寸（留出间隙）
func (s *BoardScene) cellSize() (float64, float64) {
	layout := s.session.Config().GridLayout()
	return layout.CellWidth * 0.9, layout.CellHeight * 0.9
}
