package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/mergeroom/pkg/board"
	"github.com/gonewx/mergeroom/pkg/game"
	"github.com/gonewx/mergeroom/pkg/systems"
	"github.com/gonewx/mergeroom/pkg/utils"
)

// 表现层时间参数（秒）
const (
	hintIdleDelay    = 3.0  // 空闲多久后显示合成提示
	snapBackDuration = 0.2  // 弹回原位动画时长
	moveDuration     = 0.12 // 移动到新槽位动画时长
	popDuration      = 0.3  // 合成/生成放大动画时长
	messageDuration  = 2.0  // 提示文字显示时长
)

// spawnerKeys 数字键 1..9 对应生成按钮
var spawnerKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// BoardScene 合成棋盘场景
//
// 职责：
//   - 拖拽源：把鼠标/触摸拖拽转换为 Session.BeginDrag / EndDrag 调用
//   - 生成按钮：每个故事步骤一个，提示手指向当前步骤
//   - 驱动 Session 的延迟回调，播放弹回/合成动画
//   - 空闲一段时间后高亮一对可合成的物品
type BoardScene struct {
	session     *game.Session
	saveManager *game.SaveManager
	audio       *game.AudioManager

	drag       *utils.DragManager
	dragged    *board.Item
	dragOffset utils.Point // 物品中心相对指针的偏移

	spawners []*Button
	tweens   map[board.ItemID]*utils.Tween
	pops     map[board.ItemID]float64

	idleTime  float64
	forceHint bool
	message   string
	msgTimer  float64
	victory   bool

	// pollInput 读取本帧输入并推进拖拽状态，测试中可以替换
	pollInput func()
}

// NewBoardScene 创建棋盘场景
//
// 参数：
//   - session: 游戏会话
//   - saveManager: 存档管理器（可为 nil，不保存）
//   - audio: 音效管理器（可为 nil，静音）
func NewBoardScene(session *game.Session, saveManager *game.SaveManager, audio *game.AudioManager) *BoardScene {
	s := &BoardScene{
		session:     session,
		saveManager: saveManager,
		audio:       audio,
		drag:        utils.NewDragManager(),
		tweens:      make(map[board.ItemID]*utils.Tween),
		pops:        make(map[board.ItemID]float64),
		victory:     session.Progression().IsAllComplete(),
	}
	s.pollInput = s.readInput
	s.buildSpawners()

	session.OnSpawn = s.onSpawn
	session.OnMerge = s.onMerge
	session.OnStepCompleted = s.onStepCompleted
	session.OnAllComplete = s.onAllComplete

	log.Printf("[BoardScene] Created: %d slots, %d spawners", session.Grid().Len(), len(s.spawners))
	return s
}

// buildSpawners 在棋盘下方为每个故事步骤创建一个生成按钮
func (s *BoardScene) buildSpawners() {
	layout := s.session.Config().GridLayout()
	steps := s.session.Progression().TotalSteps()

	const w, h, gap = 160.0, 70.0, 20.0
	total := float64(steps)*w + float64(steps-1)*gap
	x := (WindowWidth - total) / 2
	y := layout.StartY + float64(layout.Rows)*layout.CellHeight + 60

	s.spawners = make([]*Button, steps)
	for kind := 0; kind < steps; kind++ {
		kind := kind
		s.spawners[kind] = &Button{
			X:       x + float64(kind)*(w+gap),
			Y:       y,
			Width:   w,
			Height:  h,
			Label:   fmt.Sprintf("SPAWN %d", kind+1),
			OnClick: func() { s.session.SpawnFromSpawner(kind) },
		}
	}
	s.refreshSpawners()
}

// readInput 读取 Ebitengine 输入
func (s *BoardScene) readInput() {
	s.drag.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.forceHint = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.session.NextRound()
		s.resetAnimations()
	}
	for kind, key := range spawnerKeys {
		if kind < len(s.spawners) && inpututil.IsKeyJustPressed(key) {
			s.spawners[kind].Click()
		}
	}
}

// Update 更新场景
func (s *BoardScene) Update(deltaTime float64) {
	s.pollInput()
	s.handleDrag()
	s.session.Update(deltaTime)

	for id, tw := range s.tweens {
		tw.Update(deltaTime)
		if tw.Done() {
			delete(s.tweens, id)
		}
	}
	for id, t := range s.pops {
		if t += deltaTime; t >= popDuration {
			delete(s.pops, id)
		} else {
			s.pops[id] = t
		}
	}
	if s.msgTimer > 0 {
		s.msgTimer -= deltaTime
	}

	if s.dragged == nil {
		s.idleTime += deltaTime
	}
	s.refreshSpawners()
}

// handleDrag 把拖拽状态转换为会话操作
func (s *BoardScene) handleDrag() {
	switch {
	case s.drag.JustStarted():
		s.resetIdle()
		p := s.drag.Start()
		if clickButtons(s.spawners, p) {
			return
		}
		item, ok := s.session.ItemAt(p)
		if !ok {
			return
		}
		slot, _ := item.Slot()
		center := s.session.Grid().Position(slot)
		if s.session.BeginDrag(item) {
			s.dragged = item
			s.dragOffset = utils.Point{X: center.X - p.X, Y: center.Y - p.Y}
			delete(s.tweens, item.ID)
		}

	case s.drag.JustEnded() && s.dragged != nil:
		item := s.dragged
		s.dragged = nil
		drop := s.dragCenter()
		accepted, outcome := s.session.EndDrag(item, &drop)
		s.animateDrop(item, drop, accepted, outcome)
		s.resetIdle()

	case s.dragged != nil && s.session.Dragging() != s.dragged:
		// 拖拽期间会话开始了新一轮，物品已被清除
		s.dragged = nil
	}
}

// animateDrop 根据解析结果播放落下动画
func (s *BoardScene) animateDrop(item *board.Item, drop utils.Point, accepted bool, outcome systems.MoveOutcome) {
	switch {
	case outcome.Kind == systems.OutcomeRelocated:
		s.tweens[item.ID] = utils.NewTween(drop, s.session.Grid().Position(outcome.Slot), moveDuration, utils.EaseOutCubic)
	case !accepted && outcome.Slot != board.NoSlot:
		s.tweens[item.ID] = utils.NewTween(drop, s.session.Grid().Position(outcome.Slot), snapBackDuration, utils.EaseOutCubic)
		s.audio.PlaySound(game.SoundReject)
	}
}

// dragCenter 被拖拽物品的当前中心位置
func (s *BoardScene) dragCenter() utils.Point {
	p := s.drag.Current()
	return utils.Point{X: p.X + s.dragOffset.X, Y: p.Y + s.dragOffset.Y}
}

// refreshSpawners 提示手指向当前步骤的生成按钮
func (s *BoardScene) refreshSpawners() {
	suggested, ok := s.session.SuggestedSpawner()
	for kind, b := range s.spawners {
		b.Highlight = ok && kind == suggested
	}
}

// HintVisible 是否正在显示合成提示
func (s *BoardScene) HintVisible() bool {
	return s.dragged == nil && (s.forceHint || s.idleTime >= hintIdleDelay)
}

func (s *BoardScene) resetIdle() {
	s.idleTime = 0
	s.forceHint = false
}

func (s *BoardScene) resetAnimations() {
	s.dragged = nil
	clear(s.tweens)
	clear(s.pops)
}

func (s *BoardScene) showMessage(msg string) {
	s.message = msg
	s.msgTimer = messageDuration
}

func (s *BoardScene) onSpawn(item *board.Item) {
	s.pops[item.ID] = 0
	s.audio.PlaySound(game.SoundSpawn)
}

func (s *BoardScene) onMerge(outcome systems.MoveOutcome) {
	if outcome.Survivor != nil {
		s.pops[outcome.Survivor.ID] = 0
	}
	s.audio.PlaySound(game.SoundMerge)
}

func (s *BoardScene) onStepCompleted(kind int) {
	s.showMessage(fmt.Sprintf("Step %d done! Score %d", kind+1, s.session.Score()))
	s.audio.PlaySound(game.SoundComplete)
	if err := s.SaveOnExit(); err != nil {
		log.Printf("[BoardScene] Autosave failed: %v", err)
	}
}

func (s *BoardScene) onAllComplete() {
	s.victory = true
	s.showMessage("The room is fixed!")
}

// SaveOnExit 保存进度（实现 game.Saveable）
func (s *BoardScene) SaveOnExit() error {
	if s.saveManager == nil {
		return nil
	}
	return s.saveManager.SaveSession(s.session)
}
