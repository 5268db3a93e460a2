// Package board 实现合成棋盘的核心数据：物品、格子占用表以及只读查询
//
// 架构说明：
//   - Grid 独占占用表，是唯一可以修改物品 slot 字段的地方
//   - 物品的 Tier 只能通过 Upgrade 修改（由合成解析器调用）
//   - 所有操作都在游戏主循环中同步执行，不需要加锁
package board

import "fmt"

// ItemID 物品的唯一标识符
// 由 Grid 分配，从 1 开始，0 保留为无效ID
type ItemID uint64

// SlotIndex 槽位索引，范围 [0, N)
type SlotIndex int

// NoSlot 表示"没有槽位"（物品正在被拖拽，或查询未命中）
const NoSlot SlotIndex = -1

// Item 可放置在棋盘上的物品
//
// 不变式：slot != NoSlot 时，Grid.occupancy[slot] 指向且仅指向该物品
type Item struct {
	ID   ItemID // 唯一ID
	Tier int    // 当前等级 (>= 0)
	Kind int    // 合成链/故事步骤编号（原 prefabIndex）

	slot   SlotIndex // 当前所在槽位，拖拽中为 NoSlot
	origin SlotIndex // 最近一次所在的槽位，用于拖拽失败时弹回
	alive  bool      // 是否仍存在（被合成掉或完成后为 false）
}

// Slot 返回物品当前所在槽位
// 返回:
//   - SlotIndex: 槽位索引
//   - bool: false 表示物品已脱离棋盘（拖拽中或已销毁）
func (it *Item) Slot() (SlotIndex, bool) {
	return it.slot, it.slot != NoSlot
}

// Origin 返回物品最近一次所在的槽位
func (it *Item) Origin() SlotIndex {
	return it.origin
}

// Home 返回物品"所属"的槽位：已放置时为当前槽位，拖拽中为起始槽位
func (it *Item) Home() SlotIndex {
	if it.slot != NoSlot {
		return it.slot
	}
	return it.origin
}

// Alive 物品是否仍存在
func (it *Item) Alive() bool {
	return it.alive
}

// CanMergeWith 判断两个物品能否合成
// 规则：Kind 与 Tier 完全相同（不允许跨级合成）
func (it *Item) CanMergeWith(other *Item) bool {
	if other == nil || other == it {
		return false
	}
	return it.Kind == other.Kind && it.Tier == other.Tier
}

// Upgrade 将物品升一级
//
// 参数：
//   - terminalTier: 终极等级（默认配置为 3，即 0..3 四个外观阶段）
//
// 返回：
//   - bool: true 表示升级后到达终极等级（该合成链完成）
func (it *Item) Upgrade(terminalTier int) bool {
	it.Tier++
	return it.Tier >= terminalTier
}

// String 便于日志输出
func (it *Item) String() string {
	return fmt.Sprintf("item#%d(kind=%d,tier=%d,slot=%d)", it.ID, it.Kind, it.Tier, it.slot)
}
