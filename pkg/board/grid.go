package board

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/mergeroom/pkg/utils"
)

// Grid 固定容量的棋盘
// 负责跟踪哪些槽位已被物品占用，并提供查询和更新方法
//
// 不变式：
//   - occupancy[i] != nil ⇒ occupancy[i].slot == i
//   - 同一个物品不会同时出现在两个槽位中
type Grid struct {
	positions     []utils.Point // 槽位中心坐标（由表现层布局提供，只读）
	occupancy     []*Item       // 槽位 -> 物品，nil 表示空
	snapThreshold float64       // 吸附距离阈值
	nextID        ItemID
	round         int // 每次 ClearAll 后递增，用于识别过期的延迟回调
}

// NewGrid 创建棋盘
// 参数:
//   - positions: 每个槽位的中心坐标，长度即槽位数 N
//   - snapThreshold: 吸附距离阈值（严格小于该距离才会命中）
//
// 返回:
//   - *Grid: 棋盘实例
func NewGrid(positions []utils.Point, snapThreshold float64) *Grid {
	if len(positions) == 0 {
		panic("board: grid must have at least one slot")
	}
	ps := make([]utils.Point, len(positions))
	copy(ps, positions)
	return &Grid{
		positions:     ps,
		occupancy:     make([]*Item, len(ps)),
		snapThreshold: snapThreshold,
		nextID:        1, // ID从1开始,0保留为无效ID
	}
}

// Len 返回槽位总数
func (g *Grid) Len() int {
	return len(g.occupancy)
}

// Round 返回当前轮次编号（每次 ClearAll 递增）
func (g *Grid) Round() int {
	return g.round
}

// SnapThreshold 返回吸附距离阈值
func (g *Grid) SnapThreshold() float64 {
	return g.snapThreshold
}

// Position 返回槽位中心坐标
func (g *Grid) Position(i SlotIndex) utils.Point {
	g.mustBeValid(i)
	return g.positions[i]
}

// NewItem 创建一个尚未放置的物品
func (g *Grid) NewItem(tier, kind int) *Item {
	it := &Item{
		ID:     g.nextID,
		Tier:   tier,
		Kind:   kind,
		slot:   NoSlot,
		origin: NoSlot,
		alive:  true,
	}
	g.nextID++
	return it
}

// NearestSlot 查找距离 p 最近的槽位
//
// 只有距离严格小于吸附阈值时才命中；距离相同时取索引最小的槽位
//
// 返回:
//   - SlotIndex: 槽位索引，未命中时为 NoSlot
//   - bool: 是否命中
func (g *Grid) NearestSlot(p utils.Point) (SlotIndex, bool) {
	nearest := NoSlot
	minDist := g.snapThreshold

	for i, pos := range g.positions {
		if d := p.Distance(pos); d < minDist {
			minDist = d
			nearest = SlotIndex(i)
		}
	}
	return nearest, nearest != NoSlot
}

// IsOccupied 检查指定槽位是否已被占用
func (g *Grid) IsOccupied(i SlotIndex) bool {
	g.mustBeValid(i)
	return g.occupancy[i] != nil
}

// Occupant 返回槽位上的物品
func (g *Grid) Occupant(i SlotIndex) (*Item, bool) {
	g.mustBeValid(i)
	it := g.occupancy[i]
	return it, it != nil
}

// Place 将物品放入槽位
//
// 会先清除物品原来的槽位记录；放回物品当前所在槽位是安全的空操作。
// 目标槽位被其他物品占用属于调用方错误，直接 panic。
func (g *Grid) Place(item *Item, i SlotIndex) {
	g.mustBeValid(i)
	if item == nil {
		panic("board: Place called with nil item")
	}
	if !item.alive {
		panic(fmt.Sprintf("board: cannot place destroyed %s", item))
	}
	if item.slot == i && g.occupancy[i] == item {
		return
	}
	if occ := g.occupancy[i]; occ != nil && occ != item {
		panic(fmt.Sprintf("board: slot %d already occupied by %s", i, occ))
	}

	if item.slot != NoSlot {
		g.occupancy[item.slot] = nil
	}
	g.occupancy[i] = item
	item.slot = i
	item.origin = i
}

// Vacate 清空指定槽位
// 原占用物品（如果有）会脱离棋盘，但不会被销毁
func (g *Grid) Vacate(i SlotIndex) {
	g.mustBeValid(i)
	if occ := g.occupancy[i]; occ != nil {
		occ.slot = NoSlot
	}
	g.occupancy[i] = nil
}

// Lift 拖拽开始时将物品从棋盘上提起
// 物品原槽位被清空，但 Origin 仍记录该槽位，用于弹回
func (g *Grid) Lift(item *Item) {
	if item == nil {
		panic("board: Lift called with nil item")
	}
	if slot, ok := item.Slot(); ok {
		g.Vacate(slot)
	}
}

// Remove 销毁物品并清空其槽位（如果仍在棋盘上）
func (g *Grid) Remove(item *Item) {
	if item == nil {
		panic("board: Remove called with nil item")
	}
	if slot, ok := item.Slot(); ok {
		g.Vacate(slot)
	}
	item.alive = false
}

// ClearAll 销毁所有物品并重置占用表
// 用于关卡/轮次结束，同时递增轮次编号使尚未触发的延迟回调失效
func (g *Grid) ClearAll() {
	removed := 0
	for i, occ := range g.occupancy {
		if occ != nil {
			occ.slot = NoSlot
			occ.alive = false
			g.occupancy[i] = nil
			removed++
		}
	}
	g.round++
	log.Printf("[Grid] ClearAll: removed %d items, round=%d", removed, g.round)
}

// FreeSlots 返回所有空槽位（升序）
func (g *Grid) FreeSlots() []SlotIndex {
	free := make([]SlotIndex, 0, len(g.occupancy))
	for i, occ := range g.occupancy {
		if occ == nil {
			free = append(free, SlotIndex(i))
		}
	}
	return free
}

// IsFull 棋盘是否已满
func (g *Grid) IsFull() bool {
	for _, occ := range g.occupancy {
		if occ == nil {
			return false
		}
	}
	return true
}

// FirstFreeSlot 返回索引最小的空槽位
func (g *Grid) FirstFreeSlot() (SlotIndex, bool) {
	for i, occ := range g.occupancy {
		if occ == nil {
			return SlotIndex(i), true
		}
	}
	return NoSlot, false
}

// RandomFreeSlot 在所有空槽位中随机选一个
// 随机源由调用方提供；棋盘已满时返回 false
func (g *Grid) RandomFreeSlot(rng *rand.Rand) (SlotIndex, bool) {
	free := g.FreeSlots()
	if len(free) == 0 {
		return NoSlot, false
	}
	return free[rng.Intn(len(free))], true
}

// Items 按槽位顺序返回棋盘上的所有物品
func (g *Grid) Items() []*Item {
	items := make([]*Item, 0, len(g.occupancy))
	for _, occ := range g.occupancy {
		if occ != nil {
			items = append(items, occ)
		}
	}
	return items
}

// mustBeValid 槽位越界是调用方错误
func (g *Grid) mustBeValid(i SlotIndex) {
	if i < 0 || int(i) >= len(g.occupancy) {
		panic(fmt.Sprintf("board: slot index %d out of range [0, %d)", i, len(g.occupancy)))
	}
}
