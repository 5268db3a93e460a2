package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneName 场景名称
type SceneName string

const (
	// SceneDecision 决策界面（帮忙/离开）
	SceneDecision SceneName = "decision"
	// SceneBoard 合成棋盘
	SceneBoard SceneName = "board"
)

// Scene 游戏场景（决策界面、棋盘等）
// 同一时间只有一个场景处于活动状态
type Scene interface {
	// Update 更新场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在游戏关闭时保存进度
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 保存进度；返回的错误只记录日志，不阻止程序退出
	SaveOnExit() error
}
