package orderbook

import "testing"

func TestRBTreeInsertFindDelete(t *testing.T) {
	tree := NewRBTree()
	pl1 := tree.UpsertLevel(100)
	if pl1 == nil {
		t.Fatal("UpsertLevel failed")
	}
	if pl2 := tree.FindLevel(100); pl2 != pl1 {
		t.Error("FindLevel did not return same PriceLevel")
	}

	tree.UpsertLevel(200)
	if tree.MinLevel().Price != 100 {
		t.Error("expected min=100")
	}
	if tree.MaxLevel().Price != 200 {
		t.Error("expected max=200")
	}

	if !tree.DeleteLevel(100) {
		t.Error("DeleteLevel failed")
	}
	if tree.FindLevel(100) != nil {
		t.Error("expected level 100 to be gone")
	}
}

func TestDeleteNonExistentLevel(t *testing.T) {
	tree := NewRBTree()
	if tree.DeleteLevel(123) {
		t.Error("expected false when deleting non-existent level")
	}
}

func TestEmptyTreeMinMax(t *testing.T) {
	tree := NewRBTree()
	if tree.MinLevel() != nil || tree.MaxLevel() != nil {
		t.Error("expected nil for min/max on empty tree")
	}
}

func TestUpsertDuplicateLevel(t *testing.T) {
	tree := NewRBTree()
	pl1 := tree.UpsertLevel(150)
	pl2 := tree.UpsertLevel(150)
	if pl1 != pl2 {
		t.Error("Upsert should return the same node for duplicate level")
	}
}

func TestIterationOrder(t *testing.T) {
	tree := NewRBTree()
	for _, p := range []int64{500, 100, 300, 200, 400} {
		tree.UpsertLevel(p)
	}

	var asc []int64
	tree.ForEachAscending(func(lvl *PriceLevel) bool {
		asc = append(asc, lvl.Price)
		return true
	})
	want := []int64{100, 200, 300, 400, 500}
	for i, p := range want {
		if asc[i] != p {
			t.Fatalf("ascending[%d] = %d, want %d", i, asc[i], p)
		}
	}

	var desc []int64
	tree.ForEachDescending(func(lvl *PriceLevel) bool {
		desc = append(desc, lvl.Price)
		return true
	})
	for i, p := range want {
		if desc[len(desc)-1-i] != p {
			t.Fatalf("descending out of order at %d", i)
		}
	}
}

func TestIterationEarlyStop(t *testing.T) {
	tree := NewRBTree()
	for _, p := range []int64{10, 20, 30} {
		tree.UpsertLevel(p)
	}
	n := 0
	tree.ForEachAscending(func(lvl *PriceLevel) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("expected iteration to stop after 1 level, got %d", n)
	}
}

func TestManyLevels(t *testing.T) {
	tree := NewRBTree()
	for p := int64(1); p <= 1000; p++ {
		tree.UpsertLevel(p)
	}
	for p := int64(2); p <= 1000; p += 2 {
		if !tree.DeleteLevel(p) {
			t.Fatalf("delete %d failed", p)
		}
	}
	var got []int64
	tree.ForEachAscending(func(lvl *PriceLevel) bool {
		got = append(got, lvl.Price)
		return true
	})
	if len(got) != 500 {
		t.Fatalf("expected 500 levels, got %d", len(got))
	}
	for i, p := range got {
		if p != int64(2*i+1) {
			t.Fatalf("got[%d] = %d, want %d", i, p, 2*i+1)
		}
	}
}
