package board

import (
	"math/rand"
	"testing"

	"github.com/gonewx/mergeroom/pkg/utils"
)

// newLineGrid 创建 n 个槽位排成一行的棋盘，槽位间距 200
func newLineGrid(n int, threshold float64) *Grid {
	positions := make([]utils.Point, n)
	for i := range positions {
		positions[i] = utils.Point{X: float64(i) * 200, Y: 0}
	}
	return NewGrid(positions, threshold)
}

// assertBijection 验证占用表与物品 slot 字段一一对应
func assertBijection(t *testing.T, g *Grid) {
	t.Helper()
	seen := make(map[*Item]SlotIndex)
	for i, occ := range g.occupancy {
		if occ == nil {
			continue
		}
		if occ.slot != SlotIndex(i) {
			t.Errorf("occupancy[%d] = %s, but item.slot = %d", i, occ, occ.slot)
		}
		if prev, dup := seen[occ]; dup {
			t.Errorf("%s occupies both slot %d and slot %d", occ, prev, i)
		}
		seen[occ] = SlotIndex(i)
	}
}

// TestGrid_NearestSlot 测试最近槽位查询
func TestGrid_NearestSlot(t *testing.T) {
	g := newLineGrid(4, 100)

	tests := []struct {
		name     string
		point    utils.Point
		wantSlot SlotIndex
		wantOK   bool
	}{
		{"正好在槽位中心", utils.Point{X: 200, Y: 0}, 1, true},
		{"阈值内偏移", utils.Point{X: 430, Y: 50}, 2, true},
		{"两槽位中点（超出阈值）", utils.Point{X: 100, Y: 0}, NoSlot, false},
		{"远离所有槽位", utils.Point{X: 2000, Y: 2000}, NoSlot, false},
		{"恰好等于阈值不命中", utils.Point{X: 600, Y: 100}, NoSlot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := g.NearestSlot(tt.point)
			if ok != tt.wantOK || slot != tt.wantSlot {
				t.Errorf("NearestSlot(%+v) = (%d, %v), want (%d, %v)", tt.point, slot, ok, tt.wantSlot, tt.wantOK)
			}
		})
	}
}

// TestGrid_NearestSlotTieBreak 距离相同时取索引最小的槽位
func TestGrid_NearestSlotTieBreak(t *testing.T) {
	g := NewGrid([]utils.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, 150)

	slot, ok := g.NearestSlot(utils.Point{X: 50, Y: 0})
	if !ok || slot != 0 {
		t.Errorf("Expected tie to resolve to slot 0, got (%d, %v)", slot, ok)
	}
}

// TestGrid_PlaceAndVacate 测试放置和清空
func TestGrid_PlaceAndVacate(t *testing.T) {
	g := newLineGrid(4, 100)
	item := g.NewItem(0, 0)

	g.Place(item, 2)
	if !g.IsOccupied(2) {
		t.Fatal("Slot 2 should be occupied after Place")
	}
	if slot, ok := item.Slot(); !ok || slot != 2 {
		t.Errorf("item.Slot() = (%d, %v), want (2, true)", slot, ok)
	}

	// 移动到另一个槽位，原槽位应被清空
	g.Place(item, 3)
	if g.IsOccupied(2) {
		t.Error("Slot 2 should be free after moving item to slot 3")
	}
	assertBijection(t, g)

	// 放回当前槽位是空操作
	g.Place(item, 3)
	if occ, _ := g.Occupant(3); occ != item {
		t.Error("Self-place should keep item in slot 3")
	}

	g.Vacate(3)
	if g.IsOccupied(3) {
		t.Error("Slot 3 should be free after Vacate")
	}
	if _, ok := item.Slot(); ok {
		t.Error("Vacated item should be detached")
	}
}

// TestGrid_PlaceVacateRoundTrip place 后 vacate，其他槽位不受影响
func TestGrid_PlaceVacateRoundTrip(t *testing.T) {
	g := newLineGrid(5, 100)
	a := g.NewItem(0, 0)
	b := g.NewItem(1, 2)
	g.Place(a, 0)
	g.Place(b, 4)

	before := make([]*Item, g.Len())
	copy(before, g.occupancy)

	c := g.NewItem(0, 1)
	g.Place(c, 2)
	g.Vacate(2)

	for i := range before {
		if g.occupancy[i] != before[i] {
			t.Errorf("slot %d changed: before=%v after=%v", i, before[i], g.occupancy[i])
		}
	}
	assertBijection(t, g)
}

// TestGrid_PlaceOccupiedPanics 放到被其他物品占用的槽位是调用方错误
func TestGrid_PlaceOccupiedPanics(t *testing.T) {
	g := newLineGrid(2, 100)
	g.Place(g.NewItem(0, 0), 0)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when placing onto an occupied slot")
		}
	}()
	g.Place(g.NewItem(0, 0), 0)
}

// TestGrid_OutOfRangePanics 越界索引直接 panic
func TestGrid_OutOfRangePanics(t *testing.T) {
	g := newLineGrid(2, 100)

	tests := []struct {
		name string
		fn   func()
	}{
		{"IsOccupied 负索引", func() { g.IsOccupied(-1) }},
		{"IsOccupied 越界", func() { g.IsOccupied(2) }},
		{"Vacate 越界", func() { g.Vacate(5) }},
		{"Place 越界", func() { g.Place(g.NewItem(0, 0), 9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// TestGrid_LiftKeepsOrigin 提起物品后原槽位清空，Origin 保留
func TestGrid_LiftKeepsOrigin(t *testing.T) {
	g := newLineGrid(3, 100)
	item := g.NewItem(0, 0)
	g.Place(item, 1)

	g.Lift(item)
	if g.IsOccupied(1) {
		t.Error("Slot 1 should be free while item is lifted")
	}
	if _, ok := item.Slot(); ok {
		t.Error("Lifted item should have no slot")
	}
	if item.Origin() != 1 || item.Home() != 1 {
		t.Errorf("Origin/Home = %d/%d, want 1/1", item.Origin(), item.Home())
	}

	// 弹回原位
	g.Place(item, item.Origin())
	if occ, _ := g.Occupant(1); occ != item {
		t.Error("Item should be back in slot 1")
	}
}

// TestGrid_ClearAll 清空所有物品并递增轮次
func TestGrid_ClearAll(t *testing.T) {
	g := newLineGrid(3, 100)
	a := g.NewItem(0, 0)
	b := g.NewItem(0, 1)
	g.Place(a, 0)
	g.Place(b, 2)

	round := g.Round()
	g.ClearAll()

	if len(g.Items()) != 0 {
		t.Errorf("Expected empty grid, got %d items", len(g.Items()))
	}
	if a.Alive() || b.Alive() {
		t.Error("All occupants should be destroyed by ClearAll")
	}
	if g.Round() != round+1 {
		t.Errorf("Round = %d, want %d", g.Round(), round+1)
	}
}

// TestGrid_FreeSlotQueries 测试空槽位查询
func TestGrid_FreeSlotQueries(t *testing.T) {
	g := newLineGrid(4, 100)
	g.Place(g.NewItem(0, 0), 0)
	g.Place(g.NewItem(0, 0), 2)

	if slot, ok := g.FirstFreeSlot(); !ok || slot != 1 {
		t.Errorf("FirstFreeSlot = (%d, %v), want (1, true)", slot, ok)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		slot, ok := g.RandomFreeSlot(rng)
		if !ok || (slot != 1 && slot != 3) {
			t.Fatalf("RandomFreeSlot returned occupied or invalid slot %d", slot)
		}
	}

	g.Place(g.NewItem(0, 0), 1)
	g.Place(g.NewItem(0, 0), 3)
	if !g.IsFull() {
		t.Error("Grid should be full")
	}
	if _, ok := g.FirstFreeSlot(); ok {
		t.Error("FirstFreeSlot should fail on a full grid")
	}
	if _, ok := g.RandomFreeSlot(rng); ok {
		t.Error("RandomFreeSlot should fail on a full grid")
	}
}

// TestGrid_SpawnOnFullGrid 棋盘已满时生成被静默跳过，占用表不变
func TestGrid_SpawnOnFullGrid(t *testing.T) {
	g := newLineGrid(4, 100)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 4; i++ {
		if _, _, ok := g.Spawn(0, 0, rng); !ok {
			t.Fatalf("Spawn %d failed on a non-full grid", i)
		}
	}

	before := make([]*Item, g.Len())
	copy(before, g.occupancy)

	item, slot, ok := g.Spawn(0, 1, rng)
	if ok || item != nil || slot != NoSlot {
		t.Errorf("Spawn on full grid = (%v, %d, %v), want (nil, NoSlot, false)", item, slot, ok)
	}
	for i := range before {
		if g.occupancy[i] != before[i] {
			t.Errorf("slot %d changed after failed spawn", i)
		}
	}
}

// TestGrid_SpawnFirstFreeWithoutRng 未提供随机源时使用第一个空槽位
func TestGrid_SpawnFirstFreeWithoutRng(t *testing.T) {
	g := newLineGrid(3, 100)
	g.Place(g.NewItem(0, 0), 0)

	item, slot, ok := g.Spawn(1, 2, nil)
	if !ok || slot != 1 {
		t.Fatalf("Spawn = (%d, %v), want (1, true)", slot, ok)
	}
	if item.Tier != 1 || item.Kind != 2 {
		t.Errorf("Spawned item = %s, want tier=1 kind=2", item)
	}
	assertBijection(t, g)
}

// TestGrid_ItemIDsUnique 物品ID唯一且从 1 开始
func TestGrid_ItemIDsUnique(t *testing.T) {
	g := newLineGrid(1, 100)
	a := g.NewItem(0, 0)
	b := g.NewItem(0, 0)
	if a.ID != 1 || b.ID != 2 {
		t.Errorf("IDs = %d, %d; want 1, 2", a.ID, b.ID)
	}
}
