package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/mergeroom/pkg/game"
	"github.com/gonewx/mergeroom/pkg/utils"
)

// DecisionScene 开场决策界面
// 玩家选择"帮忙"开始修房间，或选择"离开"退出游戏
type DecisionScene struct {
	session      *game.Session
	sceneManager *game.SceneManager
	buttons      []*Button

	// pollInput 返回本帧的点击位置，测试中可以替换
	pollInput func() (bool, utils.Point)
}

// NewDecisionScene 创建决策界面
func NewDecisionScene(session *game.Session, sceneManager *game.SceneManager) *DecisionScene {
	d := &DecisionScene{
		session:      session,
		sceneManager: sceneManager,
		pollInput:    pollClick,
	}

	const w, h = 260.0, 90.0
	x := (WindowWidth - w) / 2
	d.buttons = []*Button{
		{X: x, Y: WindowHeight*0.55 - h, Width: w, Height: h, Label: "HELP", Highlight: true, OnClick: d.help},
		{X: x, Y: WindowHeight*0.55 + 40, Width: w, Height: h, Label: "LEAVE", OnClick: d.leave},
	}
	return d
}

// pollClick 读取本帧的鼠标/触摸点击
func pollClick() (bool, utils.Point) {
	clicked, x, y := utils.IsJustTouchedOrClicked()
	return clicked, utils.Point{X: float64(x), Y: float64(y)}
}

// Update 处理按钮点击
func (d *DecisionScene) Update(deltaTime float64) {
	if clicked, p := d.pollInput(); clicked {
		clickButtons(d.buttons, p)
	}
}

// help 开始游戏并切换到棋盘
func (d *DecisionScene) help() {
	d.session.Start()
	if err := d.sceneManager.Load(game.SceneBoard); err != nil {
		log.Printf("[DecisionScene] Failed to open board: %v", err)
	}
}

// leave 玩家离开，app 层在下一帧结束游戏
func (d *DecisionScene) leave() {
	d.session.Leave()
}

// Draw 绘制决策界面
func (d *DecisionScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawTitle(screen, "The room is a mess. Will you help fix it up?", WindowWidth/2, WindowHeight*0.3, WindowWidth-80)
	for _, b := range d.buttons {
		b.Draw(screen)
	}
}
