package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 一帧的指针输入采样（鼠标或触摸）
type PointerSample struct {
	// JustPressed 本帧刚按下
	JustPressed bool
	// Pressed 当前处于按下状态
	Pressed bool
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// TouchID 触摸ID，-1 表示鼠标
	TouchID ebiten.TouchID
}

// IsTouch 是否为触摸输入
func (p PointerSample) IsTouch() bool {
	return p.TouchID >= 0
}

// SamplePointer 读取当前帧的指针输入
//
// 优先跟踪 tracking 指定的触摸；tracking 为 -1 时检测新触摸，最后回退到鼠标
func SamplePointer(tracking ebiten.TouchID) PointerSample {
	if tracking >= 0 {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == tracking {
				x, y := ebiten.TouchPosition(id)
				return PointerSample{Pressed: true, X: x, Y: y, TouchID: id}
			}
		}
		// 触摸已释放，位置由调用方保留上一帧的值
		return PointerSample{TouchID: tracking}
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return PointerSample{JustPressed: true, Pressed: true, X: x, Y: y, TouchID: ids[0]}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
		TouchID:     -1,
	}
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// String 返回状态名称
func (s DragState) String() string {
	switch s {
	case DragStateNone:
		return "None"
	case DragStateStarted:
		return "Started"
	case DragStateDragging:
		return "Dragging"
	case DragStateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置；结束帧保留最后一次按下时的位置
	CurrentX, CurrentY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
}

// DragManager 拖拽管理器
// 跟踪一次鼠标/触摸拖拽的生命周期：Started -> Dragging -> Ended -> None
//
// 每个场景持有自己的实例，不使用全局单例
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	dm := &DragManager{}
	dm.Reset()
	return dm
}

// Update 读取当前帧输入并推进拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	tracking := ebiten.TouchID(-1)
	if dm.info.State == DragStateStarted || dm.info.State == DragStateDragging {
		tracking = dm.info.TouchID
	}
	dm.Feed(SamplePointer(tracking))
}

// Feed 用一帧的输入采样推进拖拽状态
func (dm *DragManager) Feed(sample PointerSample) {
	switch dm.info.State {
	case DragStateNone:
		if sample.JustPressed {
			dm.info = DragInfo{
				State:    DragStateStarted,
				StartX:   sample.X,
				StartY:   sample.Y,
				CurrentX: sample.X,
				CurrentY: sample.Y,
				TouchID:  sample.TouchID,
			}
		}

	case DragStateStarted, DragStateDragging:
		if !sample.Pressed {
			dm.info.State = DragStateEnded
			return
		}
		dm.info.State = DragStateDragging
		dm.info.CurrentX, dm.info.CurrentY = sample.X, sample.Y

	case DragStateEnded:
		dm.Reset()
		// 同一帧内的新按下直接开始下一次拖拽
		if sample.JustPressed {
			dm.Feed(sample)
		}
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsDragging 是否正在拖拽（包括刚开始的一帧）
func (dm *DragManager) IsDragging() bool {
	return dm.info.State == DragStateStarted || dm.info.State == DragStateDragging
}

// JustStarted 是否本帧刚开始拖拽
func (dm *DragManager) JustStarted() bool {
	return dm.info.State == DragStateStarted
}

// JustEnded 是否本帧刚结束拖拽
func (dm *DragManager) JustEnded() bool {
	return dm.info.State == DragStateEnded
}

// Current 当前指针位置
func (dm *DragManager) Current() Point {
	return Point{X: float64(dm.info.CurrentX), Y: float64(dm.info.CurrentY)}
}

// Start 拖拽起点
func (dm *DragManager) Start() Point {
	return Point{X: float64(dm.info.StartX), Y: float64(dm.info.StartY)}
}

// GetDragDistance 获取拖拽位移（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// IsTouchDrag 是否为触摸拖拽
func (dm *DragManager) IsTouchDrag() bool {
	return dm.info.TouchID >= 0
}
