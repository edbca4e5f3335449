package algorithms

import (
	"errors"
	"math/rand"
	"testing"
)

func identity(v int) float64 { return float64(v) }

func checkTree(t *testing.T, tree Tree[int]) {
	t.Helper()
	if isRed(tree.root) {
		t.Fatal("root is red")
	}
	if _, ok := blackHeight(tree.root); !ok {
		t.Fatal("red black invariant violated")
	}
}

func TestTreeInsertKeepsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := NewTree(identity)
	for i := 0; i < 1000; i++ {
		tree = tree.Insert(rng.Intn(11))
		checkTree(t, tree)
	}
	if tree.Len() != 1000 {
		t.Fatalf("expected 1000 elements, got %d", tree.Len())
	}
}

func TestTreeInsertSorted(t *testing.T) {
	for _, tc := range []struct {
		name string
		gen  func(i int) int
	}{
		{"ascending", func(i int) int { return i }},
		{"descending", func(i int) int { return 500 - i }},
		{"constant", func(int) int { return 7 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tree := NewTree(identity)
			for i := 0; i < 500; i++ {
				tree = tree.Insert(tc.gen(i))
				checkTree(t, tree)
			}
		})
	}
}

func TestTreePopMinOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := NewTree(identity)
	want := 1000
	for i := 0; i < want; i++ {
		tree = tree.Insert(rng.Intn(100) - 50)
	}

	prev := -1 << 31
	count := 0
	for !tree.IsEmpty() {
		min, err := tree.Min()
		if err != nil {
			t.Fatalf("Min failed: %v", err)
		}
		v, rest, err := tree.PopMin()
		if err != nil {
			t.Fatalf("PopMin failed: %v", err)
		}
		if v != min {
			t.Fatalf("PopMin returned %d, minimum is %d", v, min)
		}
		if v < prev {
			t.Fatalf("extracted %d after %d", v, prev)
		}
		prev = v
		tree = rest
		checkTree(t, tree)
		count++
	}
	if count != want {
		t.Fatalf("extracted %d elements, inserted %d", count, want)
	}
	if tree.Len() != 0 {
		t.Fatalf("expected empty tree, Len() = %d", tree.Len())
	}
}

func TestTreeInterleaved(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := NewTree(identity)
	var shadow []int
	for i := 0; i < 2000; i++ {
		if len(shadow) > 0 && rng.Intn(3) == 0 {
			v, rest, err := tree.PopMin()
			if err != nil {
				t.Fatalf("PopMin failed: %v", err)
			}
			best := 0
			for j := range shadow {
				if shadow[j] < shadow[best] {
					best = j
				}
			}
			if v != shadow[best] {
				t.Fatalf("PopMin returned %d, minimum is %d", v, shadow[best])
			}
			shadow = append(shadow[:best], shadow[best+1:]...)
			tree = rest
		} else {
			v := rng.Intn(1000)
			tree = tree.Insert(v)
			shadow = append(shadow, v)
		}
		checkTree(t, tree)
		if tree.Len() != len(shadow) {
			t.Fatalf("Len() = %d, want %d", tree.Len(), len(shadow))
		}
	}
}

func TestTreePersistent(t *testing.T) {
	base := NewTree(identity).Insert(3).Insert(1).Insert(2)
	grown := base.Insert(0)

	if base.Len() != 3 {
		t.Fatalf("insert modified the original tree: Len() = %d", base.Len())
	}
	if m, _ := base.Min(); m != 1 {
		t.Fatalf("original tree minimum changed to %d", m)
	}

	v, rest, err := grown.PopMin()
	if err != nil || v != 0 {
		t.Fatalf("PopMin = %d, %v; want 0", v, err)
	}
	if m, _ := grown.Min(); m != 0 {
		t.Fatalf("PopMin modified the original tree, minimum is %d", m)
	}
	if m, _ := rest.Min(); m != 1 {
		t.Fatalf("remaining minimum is %d, want 1", m)
	}
}

func TestTreeEmpty(t *testing.T) {
	tree := NewTree(identity)
	if _, _, err := tree.PopMin(); !errors.Is(err, ErrEmptyTree) {
		t.Fatalf("expected ErrEmptyTree, got %v", err)
	}
	if _, err := tree.Min(); !errors.Is(err, ErrEmptyTree) {
		t.Fatalf("expected ErrEmptyTree, got %v", err)
	}
}
