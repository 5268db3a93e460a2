package board

// FirstMergeablePair 查找第一对可合成的物品（用于空闲提示）
//
// 按槽位索引升序扫描，返回找到的第一对 (a < b)。只读查询，不修改棋盘。
//
// 参数：
//   - allow: 可选过滤函数，返回 false 的种类不参与提示；nil 表示全部允许
func FirstMergeablePair(g *Grid, allow func(kind int) bool) (a, b SlotIndex, ok bool) {
	n := g.Len()
	for i := 0; i < n; i++ {
		first := g.occupancy[i]
		if first == nil {
			continue
		}
		if allow != nil && !allow(first.Kind) {
			continue
		}
		for j := i + 1; j < n; j++ {
			if first.CanMergeWith(g.occupancy[j]) {
				return SlotIndex(i), SlotIndex(j), true
			}
		}
	}
	return NoSlot, NoSlot, false
}
