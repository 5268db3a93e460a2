package board

import "math/rand"

// Spawn 在空槽位生成一个物品
//
// rng 不为 nil 时随机选择空槽位，否则选择索引最小的空槽位。
// 棋盘已满时静默跳过（不是错误）。
//
// 返回:
//   - *Item: 新物品，棋盘已满时为 nil
//   - SlotIndex: 放置的槽位
//   - bool: 是否生成成功
func (g *Grid) Spawn(tier, kind int, rng *rand.Rand) (*Item, SlotIndex, bool) {
	var (
		slot SlotIndex
		ok   bool
	)
	if rng != nil {
		slot, ok = g.RandomFreeSlot(rng)
	} else {
		slot, ok = g.FirstFreeSlot()
	}
	if !ok {
		return nil, NoSlot, false
	}

	item := g.NewItem(tier, kind)
	g.Place(item, slot)
	return item, slot, true
}

// JunkMode 杂物生成方式
type JunkMode int

const (
	// JunkRandom 每个杂物的种类随机选择
	JunkRandom JunkMode = iota
	// JunkRotation 按候选列表轮换，轮次间接续
	JunkRotation
)

// JunkPolicy 开局杂物生成策略
type JunkPolicy struct {
	Count int      // 每轮生成数量
	Mode  JunkMode // 种类选择方式
	Kinds []int    // 候选种类
	Tier  int      // 杂物等级
}

// PickKinds 按策略选出本轮要生成的杂物种类
//
// 参数：
//   - rng: 随机源（JunkRandom 模式必需）
//   - cursor: 轮换游标（JunkRotation 模式下从该位置继续）
//
// 返回：
//   - []int: 本轮的杂物种类
//   - int: 更新后的轮换游标
func (p JunkPolicy) PickKinds(rng *rand.Rand, cursor int) ([]int, int) {
	if p.Count <= 0 || len(p.Kinds) == 0 {
		return nil, cursor
	}

	kinds := make([]int, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		switch p.Mode {
		case JunkRotation:
			kinds = append(kinds, p.Kinds[cursor%len(p.Kinds)])
			cursor++
		default:
			kinds = append(kinds, p.Kinds[rng.Intn(len(p.Kinds))])
		}
	}
	return kinds, cursor
}
