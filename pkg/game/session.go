package game

import (
	"log"
	"math/rand"
	"slices"

	"github.com/google/uuid"

	"github.com/gonewx/mergeroom/pkg/board"
	"github.com/gonewx/mergeroom/pkg/config"
	"github.com/gonewx/mergeroom/pkg/systems"
	"github.com/gonewx/mergeroom/pkg/utils"
)

// Session 一局合成游戏的聚合根
//
// 职责：
//   - 持有棋盘、合成解析器、故事推进系统和延迟调度器（构造时注入，不使用全局单例）
//   - 对外提供拖拽、生成、提示等入口
//   - 终极合成的后续处理（移除存活物品、推进故事）延迟执行，执行前重新校验引用
//
// 架构说明：
//   - 所有方法都在游戏主循环中同步调用，不需要加锁
//   - 表现层通过 On* 回调接收事件，自行播放动画/音效
type Session struct {
	cfg         *config.BoardConfig
	rng         *rand.Rand
	grid        *board.Grid
	resolver    *systems.MergeResolver
	progression *systems.ProgressionSystem
	scheduler   *systems.ScheduleSystem

	runID      uuid.UUID
	started    bool
	left       bool
	score      int
	junkCursor int
	dragging   *board.Item

	// OnMerge 每次合成后回调（用于播放合成动画）
	OnMerge func(outcome systems.MoveOutcome)
	// OnStepCompleted 某个故事步骤完成后回调
	OnStepCompleted func(kind int)
	// OnAllComplete 全部步骤完成后回调（只触发一次，用于显示胜利界面）
	OnAllComplete func()
	// OnSpawn 生成物品后回调
	OnSpawn func(item *board.Item)
}

// SessionOption 会话构造选项
type SessionOption func(*Session)

// WithRunID 指定本局的运行ID（从存档恢复时使用）
func WithRunID(id uuid.UUID) SessionOption {
	return func(s *Session) {
		s.runID = id
	}
}

// NewSession 创建一局游戏
//
// 参数：
//   - cfg: 棋盘配置（nil 时使用默认配置）
//   - rng: 随机源，用于选择生成位置和杂物种类
//
// 返回：
//   - *Session: 尚未开始的会话，需要调用 Start()
func NewSession(cfg *config.BoardConfig, rng *rand.Rand, opts ...SessionOption) *Session {
	if cfg == nil {
		cfg = config.DefaultBoardConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	grid := board.NewGrid(cfg.GridLayout().SlotPositions(), cfg.SnapThreshold)
	s := &Session{
		cfg:         cfg,
		rng:         rng,
		grid:        grid,
		resolver:    systems.NewMergeResolver(grid, cfg.TerminalTier),
		progression: systems.NewProgressionSystem(cfg.TotalSteps, cfg.ProgressionPolicy()),
		scheduler:   systems.NewScheduleSystem(),
		runID:       uuid.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.progression.Policy() == systems.PolicySequential {
		s.resolver.Gate = s.mergeAllowed
	}
	s.progression.OnStepCompleted = s.handleStepCompleted
	s.progression.OnAllComplete = s.handleAllComplete

	log.Printf("[Session] Created run %s: %d slots, %d steps, policy=%s",
		s.runID, grid.Len(), cfg.TotalSteps, s.progression.Policy())
	return s
}

// RunID 返回本局的运行ID
func (s *Session) RunID() uuid.UUID {
	return s.runID
}

// Grid 返回棋盘（表现层只读使用）
func (s *Session) Grid() *board.Grid {
	return s.grid
}

// Progression 返回故事推进系统
func (s *Session) Progression() *systems.ProgressionSystem {
	return s.progression
}

// Config 返回棋盘配置
func (s *Session) Config() *config.BoardConfig {
	return s.cfg
}

// Score 返回得分（每完成一条合成链 +1）
func (s *Session) Score() int {
	return s.score
}

// IsStarted 玩家是否已选择"帮忙"开始游戏
func (s *Session) IsStarted() bool {
	return s.started
}

// HasLeft 玩家是否选择了"离开"
func (s *Session) HasLeft() bool {
	return s.left
}

// Dragging 返回当前正在拖拽的物品
func (s *Session) Dragging() *board.Item {
	return s.dragging
}

// PendingContinuations 返回尚未执行的延迟回调数量
func (s *Session) PendingContinuations() int {
	return s.scheduler.Pending()
}

// Start 开始游戏（对应决策界面的"帮忙"按钮）
// 生成开局物品和杂物；重复调用是空操作
func (s *Session) Start() {
	if s.started || s.left {
		return
	}
	s.started = true
	log.Printf("[Session] Game started")
	s.spawnOpening()
}

// Leave 玩家选择离开（对应决策界面的"离开"按钮）
func (s *Session) Leave() {
	if s.started {
		return
	}
	s.left = true
	log.Printf("[Session] Player chose to leave")
}

// Update 推进延迟回调（每帧调用）
func (s *Session) Update(dt float64) {
	s.scheduler.Update(dt)
}

// NearestSlot 将拖拽落点解析为槽位
func (s *Session) NearestSlot(p utils.Point) (board.SlotIndex, bool) {
	return s.grid.NearestSlot(p)
}

// ItemAt 返回某坐标附近槽位上的物品（用于拖拽开始时拾取）
func (s *Session) ItemAt(p utils.Point) (*board.Item, bool) {
	slot, ok := s.grid.NearestSlot(p)
	if !ok {
		return nil, false
	}
	return s.grid.Occupant(slot)
}

// BeginDrag 拖拽开始：把物品从棋盘上提起
// 游戏未开始、物品无效或已有拖拽进行中时返回 false
// 到达终极等级的物品正在等待延迟移除，不能再被拖动
func (s *Session) BeginDrag(item *board.Item) bool {
	if !s.started || item == nil || !item.Alive() || s.dragging != nil {
		return false
	}
	if item.Tier >= s.cfg.TerminalTier {
		log.Printf("[Session] item#%d is completing, drag refused", item.ID)
		return false
	}
	if _, ok := item.Slot(); !ok {
		return false
	}
	s.grid.Lift(item)
	s.dragging = item
	return true
}

// CancelDrag 放弃拖拽，物品回到原槽位
func (s *Session) CancelDrag() {
	if s.dragging == nil {
		return
	}
	item := s.dragging
	s.dragging = nil
	if item.Alive() {
		s.resolver.Apply(item, systems.MoveOutcome{Kind: systems.OutcomeRejected, Slot: item.Origin()})
	}
}

// EndDrag 拖拽结束
//
// 参数：
//   - item: 被拖拽的物品
//   - point: 落点，nil 表示没有有效落点
//
// 返回：
//   - bool: 拖拽是否被接受（false 时拖拽源需要播放弹回动画）
//   - systems.MoveOutcome: 解析结果
func (s *Session) EndDrag(item *board.Item, point *utils.Point) (bool, systems.MoveOutcome) {
	if item == nil {
		panic("game: EndDrag called with nil item")
	}
	if s.dragging == item {
		s.dragging = nil
	}
	if !item.Alive() {
		// 拖拽过程中棋盘被清空（例如轮次切换）
		return false, systems.MoveOutcome{Kind: systems.OutcomeRejected, Slot: board.NoSlot}
	}

	var (
		dest    = board.NoSlot
		hasDest bool
	)
	if point != nil {
		dest, hasDest = s.grid.NearestSlot(*point)
	}

	outcome := s.resolver.Drop(item, dest, hasDest)
	if outcome.IsMerge() {
		s.afterMerge(outcome)
	}
	return outcome.Accepted(), outcome
}

// Spawn 生成一个物品（生成请求入口）
// 游戏未开始、种类当前不可生成或棋盘已满时静默跳过
func (s *Session) Spawn(tier, kind int) (board.SlotIndex, bool) {
	if !s.started {
		return board.NoSlot, false
	}
	if s.isStoryKind(kind) && !s.progression.CanWork(kind) {
		log.Printf("[Session] Spawn of kind %d ignored: not workable at step %d", kind, s.progression.CurrentStep())
		return board.NoSlot, false
	}
	return s.spawn(tier, kind)
}

// SpawnFromSpawner 生成按钮：生成指定种类的基础物品
func (s *Session) SpawnFromSpawner(kind int) (board.SlotIndex, bool) {
	return s.Spawn(0, kind)
}

// SuggestedSpawner 返回提示手应指向的生成按钮（当前步骤的种类）
func (s *Session) SuggestedSpawner() (int, bool) {
	if !s.started || s.progression.IsAllComplete() {
		return 0, false
	}
	step := s.progression.CurrentStep()
	if !s.isStoryKind(step) {
		return 0, false
	}
	return step, true
}

// Hint 返回第一对可合成的物品槽位（空闲提示）
func (s *Session) Hint() (a, b board.SlotIndex, ok bool) {
	return board.FirstMergeablePair(s.grid, s.resolver.Gate)
}

// NextRound 清空棋盘并重新生成开局物品
// 尚未执行的延迟回调全部取消，正在拖拽的物品一并销毁
func (s *Session) NextRound() {
	s.scheduler.CancelAll()
	s.dropDragging()
	s.grid.ClearAll()
	if s.started && !s.progression.IsAllComplete() {
		s.spawnOpening()
	}
}

// dropDragging 销毁被提起的物品（它不在棋盘上，ClearAll 清不到）
func (s *Session) dropDragging() {
	if s.dragging != nil {
		s.grid.Remove(s.dragging)
		s.dragging = nil
	}
}

// spawn 生成物品（不做门控检查）
func (s *Session) spawn(tier, kind int) (board.SlotIndex, bool) {
	item, slot, ok := s.grid.Spawn(tier, kind, s.rng)
	if !ok {
		log.Printf("[Session] Grid full, spawn of kind %d dropped", kind)
		return board.NoSlot, false
	}
	if s.OnSpawn != nil {
		s.OnSpawn(item)
	}
	return slot, true
}

// spawnOpening 生成开局物品（当前步骤的基础物品 + 杂物）
func (s *Session) spawnOpening() {
	if kind, ok := s.SuggestedSpawner(); ok {
		for i := 0; i < s.cfg.InitialItems; i++ {
			s.spawn(0, kind)
		}
	}

	junk := s.cfg.JunkPolicy()
	var kinds []int
	kinds, s.junkCursor = junk.PickKinds(s.rng, s.junkCursor)
	for _, kind := range kinds {
		s.spawn(junk.Tier, kind)
	}
}

// afterMerge 合成后的处理
func (s *Session) afterMerge(outcome systems.MoveOutcome) {
	if s.OnMerge != nil {
		s.OnMerge(outcome)
	}

	if outcome.Kind == systems.OutcomeMergedCompleted {
		// 补充生成推迟到步骤完成之后，否则会生成即将完成的种类
		s.scheduleCompletion(outcome)
		return
	}

	if s.cfg.RespawnOnMerge {
		if kind, ok := s.SuggestedSpawner(); ok {
			s.spawn(0, kind)
		}
	}
}

// scheduleCompletion 延迟移除到达终极等级的物品并推进故事
//
// 回调执行时重新校验：同一轮次且物品仍存在
// 步骤完成后如果没有切换轮次，按 RespawnOnMerge 为新的当前步骤补充一个物品
func (s *Session) scheduleCompletion(outcome systems.MoveOutcome) {
	survivor := outcome.Survivor
	kind := outcome.CompletedKind
	round := s.grid.Round()

	s.scheduler.After("merge_complete", s.cfg.CompletionDelay, func() {
		if s.grid.Round() != round || !survivor.Alive() {
			log.Printf("[Session] Stale completion for item#%d ignored", survivor.ID)
			return
		}

		s.grid.Remove(survivor)
		s.progression.Complete(kind)

		if s.cfg.RespawnOnMerge && s.grid.Round() == round {
			if next, ok := s.SuggestedSpawner(); ok {
				s.spawn(0, next)
			}
		}
	})
}

// handleStepCompleted 故事步骤完成
func (s *Session) handleStepCompleted(kind int) {
	s.score++
	log.Printf("[Session] Total Score: %d", s.score)

	if s.OnStepCompleted != nil {
		s.OnStepCompleted(kind)
	}
	if s.cfg.ClearOnStepComplete && !s.progression.IsAllComplete() {
		s.NextRound()
	}
}

// handleAllComplete 全部步骤完成
func (s *Session) handleAllComplete() {
	log.Printf("[Session] All steps complete, final score %d", s.score)
	if s.OnAllComplete != nil {
		s.OnAllComplete()
	}
}

// mergeAllowed 顺序推进策略下的合成门控
// 故事种类只有当前步骤可以合成，故事之外的种类（杂物）不受限制
func (s *Session) mergeAllowed(kind int) bool {
	if !s.isStoryKind(kind) {
		return true
	}
	return s.progression.CanWork(kind)
}

// isStoryKind 种类是否属于故事步骤
func (s *Session) isStoryKind(kind int) bool {
	return kind >= 0 && kind < s.progression.TotalSteps()
}

// Snapshot 导出当前进度（用于存档）
// 已到达终极等级、正在等待延迟移除的物品按"已完成"保存
func (s *Session) Snapshot() *ProgressData {
	data := &ProgressData{
		RunID:          s.runID.String(),
		Started:        s.started,
		Score:          s.score,
		CompletedKinds: s.progression.CompletedKinds(),
		JunkCursor:     s.junkCursor,
	}
	items := s.grid.Items()
	if s.dragging != nil && s.dragging.Alive() {
		items = append(items, s.dragging)
	}
	for _, item := range items {
		slot, ok := item.Slot()
		if !ok {
			// 正在拖拽的物品按原槽位保存；原槽位已被占用时换一个空槽位
			slot = s.dragSaveSlot(item)
			if slot == board.NoSlot {
				log.Printf("[Session] No slot to save dragged item#%d, dropped from save", item.ID)
				continue
			}
		}
		if item.Tier >= s.cfg.TerminalTier {
			if s.progression.CanWork(item.Kind) && !slices.Contains(data.CompletedKinds, item.Kind) {
				data.CompletedKinds = append(data.CompletedKinds, item.Kind)
				data.Score++
			}
			continue
		}
		data.Items = append(data.Items, ItemData{Slot: int(slot), Tier: item.Tier, Kind: item.Kind})
	}
	return data
}

// dragSaveSlot 为正在拖拽的物品选择存档槽位
func (s *Session) dragSaveSlot(item *board.Item) board.SlotIndex {
	if origin := item.Origin(); origin != board.NoSlot && !s.grid.IsOccupied(origin) {
		return origin
	}
	if slot, ok := s.grid.FirstFreeSlot(); ok {
		return slot
	}
	return board.NoSlot
}

// Restore 从存档恢复进度
// 槽位越界、重复或等级无效的物品记录会被跳过
func (s *Session) Restore(data *ProgressData) {
	if data == nil {
		return
	}
	s.scheduler.CancelAll()
	s.dropDragging()
	s.grid.ClearAll()

	if id, err := uuid.Parse(data.RunID); err == nil {
		s.runID = id
	}
	s.started = data.Started
	s.score = data.Score
	s.junkCursor = data.JunkCursor
	s.progression.Restore(data.CompletedKinds)

	restored := 0
	for _, rec := range data.Items {
		if rec.Slot < 0 || rec.Slot >= s.grid.Len() || rec.Tier < 0 || rec.Tier >= s.cfg.TerminalTier {
			log.Printf("[Session] Skipping invalid saved item %+v", rec)
			continue
		}
		slot := board.SlotIndex(rec.Slot)
		if s.grid.IsOccupied(slot) {
			log.Printf("[Session] Skipping saved item %+v: slot already occupied", rec)
			continue
		}
		s.grid.Place(s.grid.NewItem(rec.Tier, rec.Kind), slot)
		restored++
	}
	log.Printf("[Session] Restored run %s: %d items, score=%d, step=%d",
		s.runID, restored, s.score, s.progression.CurrentStep())
}
