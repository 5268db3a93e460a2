package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 场景由 app 层注册，避免 game 包依赖 scenes 包造成循环引用
type SceneFactory func() Scene

// SceneManager 管理当前活动的场景
// 保证同一时间只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	currentName  SceneName
	factories    map[SceneName]SceneFactory
}

// NewSceneManager 创建场景管理器
// 初始没有活动场景，需要调用 SwitchTo 或 Load 设置
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[SceneName]SceneFactory),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(name SceneName, factory SceneFactory) {
	sm.factories[name] = factory
}

// SwitchTo 直接切换到指定场景实例
func (sm *SceneManager) SwitchTo(name SceneName, scene Scene) {
	sm.currentScene = scene
	sm.currentName = name
}

// Load 通过工厂创建并切换到指定场景
func (sm *SceneManager) Load(name SceneName) error {
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}

	scene := factory()
	if scene == nil {
		return fmt.Errorf("factory for scene %q returned nil", name)
	}
	sm.SwitchTo(name, scene)
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() SceneName {
	return sm.currentName
}

// SaveOnExit 游戏关闭时让当前场景保存进度
//
// 返回：
//   - bool: 当前场景是否实现了 Saveable
//   - error: 保存失败的原因
func (sm *SceneManager) SaveOnExit() (bool, error) {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return false, nil
	}
	return true, saveable.SaveOnExit()
}

// Update 更新当前场景；没有活动场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景；没有活动场景时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
