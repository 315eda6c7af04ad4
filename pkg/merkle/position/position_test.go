package position

import "testing"

func TestFromIndex(t *testing.T) {
	if FromIndex(0).Index() != 0 {
		t.Fatal("index 0")
	}
	if FromIndex(1).Index() != 1 {
		t.Fatal("index 1")
	}
}

func TestFromLeafIndex(t *testing.T) {
	cases := []struct {
		leaf uint64
		want uint64
	}{
		{0, 0},
		{1, 2},
		{5, 10},
	}
	for _, c := range cases {
		if got := FromLeafIndex(c.leaf).Index(); got != c.want {
			t.Fatalf("FromLeafIndex(%d) = %d, want %d", c.leaf, got, c.want)
		}
	}
}

func TestHeight(t *testing.T) {
	cases := []struct {
		index uint64
		want  uint32
	}{
		{0, 0}, {2, 0}, {4, 0},
		{1, 1}, {5, 1}, {9, 1},
		{3, 2}, {11, 2}, {19, 2},
	}
	for _, c := range cases {
		if got := FromIndex(c.index).Height(); got != c.want {
			t.Fatalf("Height(%d) = %d, want %d", c.index, got, c.want)
		}
	}
}

func TestSibling(t *testing.T) {
	cases := []struct{ index, want uint64 }{
		{0, 2}, {2, 0},
		{1, 5}, {5, 1},
		{3, 11}, {11, 3},
	}
	for _, c := range cases {
		if got := FromIndex(c.index).Sibling().Index(); got != c.want {
			t.Fatalf("Sibling(%d) = %d, want %d", c.index, got, c.want)
		}
	}
}

func TestParent(t *testing.T) {
	cases := []struct{ index, want uint64 }{
		{0, 1}, {2, 1},
		{1, 3}, {5, 3},
		{3, 7}, {11, 7},
	}
	for _, c := range cases {
		if got := FromIndex(c.index).Parent().Index(); got != c.want {
			t.Fatalf("Parent(%d) = %d, want %d", c.index, got, c.want)
		}
	}
}

func TestUncle(t *testing.T) {
	cases := []struct{ index, want uint64 }{
		{0, 5}, {2, 5}, {4, 1}, {6, 1},
		{1, 11}, {5, 11}, {9, 3}, {13, 3},
	}
	for _, c := range cases {
		if got := FromIndex(c.index).Uncle().Index(); got != c.want {
			t.Fatalf("Uncle(%d) = %d, want %d", c.index, got, c.want)
		}
	}
}

func TestP1Invariants(t *testing.T) {
	for leaf := uint64(0); leaf < 64; leaf++ {
		p := FromLeafIndex(leaf)
		if p.Height() != 0 {
			t.Fatalf("height(from_leaf(%d)) != 0", leaf)
		}
	}
	for i := uint64(0); i < 4096; i++ {
		p := FromIndex(i)
		if p.Sibling().Parent() != p.Parent() {
			t.Fatalf("parent(sibling(%d)) != parent(%d)", i, i)
		}
		if p.Sibling().Sibling() != p {
			t.Fatalf("sibling(sibling(%d)) != %d", i, i)
		}
		if p.Uncle() != p.Parent().Sibling() {
			t.Fatalf("uncle(%d) != sibling(parent(%d))", i, i)
		}
	}
}
