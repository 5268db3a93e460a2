package systems

import (
	"log"

	"github.com/gonewx/mergeroom/pkg/board"
)

// OutcomeKind 拖拽落点的处理结果类型
type OutcomeKind int

const (
	// OutcomeRejected 无目标槽位或目标物品不可合成，物品弹回原位
	OutcomeRejected OutcomeKind = iota
	// OutcomeRelocated 目标槽位为空（或拖回原位），物品移动过去
	OutcomeRelocated
	// OutcomeMergedContinuing 合成成功，存活物品尚未到达终极等级
	OutcomeMergedContinuing
	// OutcomeMergedCompleted 合成成功，存活物品到达终极等级，该合成链完成
	OutcomeMergedCompleted
)

// String 返回结果类型名称
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "Rejected"
	case OutcomeRelocated:
		return "Relocated"
	case OutcomeMergedContinuing:
		return "MergedContinuing"
	case OutcomeMergedCompleted:
		return "MergedCompleted"
	default:
		return "Unknown"
	}
}

// MoveOutcome 合成解析结果
type MoveOutcome struct {
	Kind OutcomeKind
	// Slot 物品最终所在槽位（Rejected 为原槽位，合成时为存活物品槽位）
	Slot board.SlotIndex
	// Survivor 合成后存活的物品（总是目标槽位上的原占用者）
	Survivor *board.Item
	// CompletedKind 完成的合成链种类，仅 OutcomeMergedCompleted 有效
	CompletedKind int
}

// Accepted 拖拽是否被接受（Rejected 时拖拽源需要播放弹回动画）
func (o MoveOutcome) Accepted() bool {
	return o.Kind != OutcomeRejected
}

// IsMerge 是否为合成结果
func (o MoveOutcome) IsMerge() bool {
	return o.Kind == OutcomeMergedContinuing || o.Kind == OutcomeMergedCompleted
}

// MergeResolver 合成解析器
//
// 职责：
//   - 根据被拖拽物品和目标槽位决定：弹回、移动或合成
//   - 合成时目标槽位上的物品总是存活者（升级），被拖拽物品总是被销毁
//
// 架构说明：
//   - Resolve 是纯决策，不修改棋盘
//   - Apply 只执行同步部分；终极合成后移除存活物品是延迟执行的，由调用方负责
type MergeResolver struct {
	grid         *board.Grid
	terminalTier int

	// Gate 可选的合成门控：返回 false 的种类不允许合成（顺序推进策略使用）
	Gate func(kind int) bool
}

// NewMergeResolver 创建合成解析器
// 参数:
//   - grid: 棋盘
//   - terminalTier: 终极等级（到达该等级即视为合成链完成）
func NewMergeResolver(grid *board.Grid, terminalTier int) *MergeResolver {
	return &MergeResolver{
		grid:         grid,
		terminalTier: terminalTier,
	}
}

// TerminalTier 返回终极等级
func (r *MergeResolver) TerminalTier() int {
	return r.terminalTier
}

// Resolve 计算拖拽落点的处理结果（不修改任何状态）
//
// 参数:
//   - dragged: 被拖拽的物品（可能已被 Lift，也可能仍在原槽位上）
//   - dest: 目标槽位
//   - hasDest: false 表示落点附近没有槽位
func (r *MergeResolver) Resolve(dragged *board.Item, dest board.SlotIndex, hasDest bool) MoveOutcome {
	if dragged == nil {
		panic("systems: Resolve called with nil item")
	}
	origin := dragged.Home()
	rejected := MoveOutcome{Kind: OutcomeRejected, Slot: origin}

	if !hasDest {
		return rejected
	}

	// 拖回原位：原地放下
	if dest == origin {
		return MoveOutcome{Kind: OutcomeRelocated, Slot: dest}
	}

	occupant, occupied := r.grid.Occupant(dest)
	if !occupied {
		return MoveOutcome{Kind: OutcomeRelocated, Slot: dest}
	}
	if occupant == dragged {
		return MoveOutcome{Kind: OutcomeRelocated, Slot: dest}
	}

	if !dragged.CanMergeWith(occupant) {
		return rejected
	}
	if r.Gate != nil && !r.Gate(occupant.Kind) {
		return rejected
	}

	if occupant.Tier+1 >= r.terminalTier {
		return MoveOutcome{
			Kind:          OutcomeMergedCompleted,
			Slot:          dest,
			Survivor:      occupant,
			CompletedKind: occupant.Kind,
		}
	}
	return MoveOutcome{Kind: OutcomeMergedContinuing, Slot: dest, Survivor: occupant}
}

// Apply 将处理结果同步应用到棋盘和物品
//
//   - Rejected: 物品放回原槽位
//   - Relocated: 物品放到目标槽位
//   - Merged*: 存活物品升级，被拖拽物品销毁并清空其原槽位
func (r *MergeResolver) Apply(dragged *board.Item, outcome MoveOutcome) {
	switch outcome.Kind {
	case OutcomeRejected:
		if outcome.Slot != board.NoSlot {
			r.grid.Place(dragged, outcome.Slot)
		}
	case OutcomeRelocated:
		r.grid.Place(dragged, outcome.Slot)
	case OutcomeMergedContinuing, OutcomeMergedCompleted:
		r.grid.Remove(dragged)
		outcome.Survivor.Upgrade(r.terminalTier)
		log.Printf("[MergeResolver] %s: %s absorbed item#%d", outcome.Kind, outcome.Survivor, dragged.ID)
	}
}

// Drop 解析并立即应用（Resolve + Apply）
func (r *MergeResolver) Drop(dragged *board.Item, dest board.SlotIndex, hasDest bool) MoveOutcome {
	outcome := r.Resolve(dragged, dest, hasDest)
	r.Apply(dragged, outcome)
	return outcome
}
