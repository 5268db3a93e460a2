package board

import (
	"math/rand"
	"reflect"
	"testing"
)

// TestFirstMergeablePair 测试提示查询
func TestFirstMergeablePair(t *testing.T) {
	g := newLineGrid(6, 100)
	g.Place(g.NewItem(0, 0), 0)
	g.Place(g.NewItem(1, 0), 1)
	g.Place(g.NewItem(0, 1), 2)
	g.Place(g.NewItem(1, 0), 4)
	g.Place(g.NewItem(0, 0), 5)

	a, b, ok := FirstMergeablePair(g, nil)
	if !ok || a != 0 || b != 5 {
		t.Errorf("FirstMergeablePair = (%d, %d, %v), want (0, 5, true)", a, b, ok)
	}

	// 过滤掉 kind 0 后没有可合成的对
	_, _, ok = FirstMergeablePair(g, func(kind int) bool { return kind != 0 })
	if ok {
		t.Error("Expected no pair when kind 0 is filtered out")
	}

	// 查询不修改棋盘
	if len(g.Items()) != 5 {
		t.Errorf("Hint query changed the grid: %d items", len(g.Items()))
	}
}

// TestFirstMergeablePairEmpty 空棋盘没有提示
func TestFirstMergeablePairEmpty(t *testing.T) {
	g := newLineGrid(3, 100)
	if _, _, ok := FirstMergeablePair(g, nil); ok {
		t.Error("Expected no pair on empty grid")
	}
}

// TestJunkPolicy_Rotation 轮换模式按顺序选择并在轮次间接续
func TestJunkPolicy_Rotation(t *testing.T) {
	p := JunkPolicy{Count: 3, Mode: JunkRotation, Kinds: []int{4, 5}}

	kinds, cursor := p.PickKinds(nil, 0)
	if !reflect.DeepEqual(kinds, []int{4, 5, 4}) || cursor != 3 {
		t.Errorf("first round = %v (cursor %d)", kinds, cursor)
	}

	kinds, cursor = p.PickKinds(nil, cursor)
	if !reflect.DeepEqual(kinds, []int{5, 4, 5}) || cursor != 6 {
		t.Errorf("second round = %v (cursor %d)", kinds, cursor)
	}
}

// TestJunkPolicy_Random 随机模式只选候选列表中的种类
func TestJunkPolicy_Random(t *testing.T) {
	p := JunkPolicy{Count: 10, Mode: JunkRandom, Kinds: []int{7, 8, 9}}
	rng := rand.New(rand.NewSource(3))

	kinds, cursor := p.PickKinds(rng, 2)
	if len(kinds) != 10 {
		t.Fatalf("Expected 10 kinds, got %d", len(kinds))
	}
	if cursor != 2 {
		t.Errorf("Random mode should not move cursor, got %d", cursor)
	}
	for _, k := range kinds {
		if k < 7 || k > 9 {
			t.Errorf("Unexpected kind %d", k)
		}
	}
}

// TestJunkPolicy_Disabled 数量为 0 或无候选时不生成
func TestJunkPolicy_Disabled(t *testing.T) {
	if kinds, _ := (JunkPolicy{Count: 0, Kinds: []int{1}}).PickKinds(nil, 0); kinds != nil {
		t.Errorf("Expected nil, got %v", kinds)
	}
	if kinds, _ := (JunkPolicy{Count: 2}).PickKinds(nil, 0); kinds != nil {
		t.Errorf("Expected nil, got %v", kinds)
	}
}

// TestItem_UpgradeAndMergeRule 测试升级与合成规则
func TestItem_UpgradeAndMergeRule(t *testing.T) {
	g := newLineGrid(1, 100)
	a := g.NewItem(2, 1)
	b := g.NewItem(2, 1)
	c := g.NewItem(1, 1)
	d := g.NewItem(2, 0)

	if !a.CanMergeWith(b) {
		t.Error("Same kind and tier should merge")
	}
	if a.CanMergeWith(c) || a.CanMergeWith(d) || a.CanMergeWith(a) || a.CanMergeWith(nil) {
		t.Error("Mismatched, self or nil should not merge")
	}

	if completed := c.Upgrade(3); completed || c.Tier != 2 {
		t.Errorf("Upgrade 1->2 = (%v, tier %d)", completed, c.Tier)
	}
	if completed := a.Upgrade(3); !completed || a.Tier != 3 {
		t.Errorf("Upgrade 2->3 = (%v, tier %d), want completion", completed, a.Tier)
	}
}
