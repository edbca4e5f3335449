package algorithms

import "errors"

// ErrEmptyTree is returned when the minimum of an empty tree is requested.
var ErrEmptyTree = errors.New("red black tree is empty")

type color uint8

const (
	black color = iota
	red
)

// rbNode is never modified after construction. A nil child is the
// black empty leaf.
type rbNode[T any] struct {
	value T
	color color
	left  *rbNode[T]
	right *rbNode[T]
}

// Tree - persistent red black tree ordered by a key function.
// Insert and PopMin return a new tree and leave the receiver usable.
// Elements with equal keys may coexist.
type Tree[T any] struct {
	root *rbNode[T]
	key  func(T) float64
	size int
}

// NewTree - empty tree ordered by key
func NewTree[T any](key func(T) float64) Tree[T] {
	return Tree[T]{key: key}
}

func (t Tree[T]) Len() int      { return t.size }
func (t Tree[T]) IsEmpty() bool { return t.root == nil }

// Insert - new tree containing v
func (t Tree[T]) Insert(v T) Tree[T] {
	return Tree[T]{
		root: blacken(t.ins(t.root, v)),
		key:  t.key,
		size: t.size + 1,
	}
}

func (t Tree[T]) ins(n *rbNode[T], v T) *rbNode[T] {
	if n == nil {
		return node(red, nil, v, nil)
	}
	if t.key(v) <= t.key(n.value) {
		if n.color == black {
			return balance(t.ins(n.left, v), n.value, n.right)
		}
		return node(red, t.ins(n.left, v), n.value, n.right)
	}
	if n.color == black {
		return balance(n.left, n.value, t.ins(n.right, v))
	}
	return node(red, n.left, n.value, t.ins(n.right, v))
}

// Min - smallest element without removing it
func (t Tree[T]) Min() (T, error) {
	var zero T
	if t.root == nil {
		return zero, ErrEmptyTree
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return n.value, nil
}

// PopMin - smallest element and the tree without it
func (t Tree[T]) PopMin() (T, Tree[T], error) {
	if t.root == nil {
		var zero T
		return zero, t, ErrEmptyTree
	}
	v, rest := delMin(t.root)
	return v, Tree[T]{root: blacken(rest), key: t.key, size: t.size - 1}, nil
}

// delMin removes the leftmost element. Removing from a black subtree
// yields a subtree one black level shorter, which balanceLeft repairs.
func delMin[T any](n *rbNode[T]) (T, *rbNode[T]) {
	if n.left == nil {
		return n.value, n.right
	}
	v, left := delMin(n.left)
	if n.left.color == black {
		return v, balanceLeft(left, n.value, n.right)
	}
	return v, node(red, left, n.value, n.right)
}

func balanceLeft[T any](l *rbNode[T], v T, r *rbNode[T]) *rbNode[T] {
	switch {
	case isRed(l):
		return node(red, blacken(l), v, r)
	case r != nil && r.color == black:
		return balance(l, v, redden(r))
	case isRed(r) && r.left != nil && r.left.color == black:
		return node(red,
			node(black, l, v, r.left.left),
			r.left.value,
			balance(r.left.right, r.value, redden(r.right)))
	}
	panic("redblack: malformed tree")
}

// balance rebuilds a black node whose children may carry a red-red
// violation.
func balance[T any](l *rbNode[T], v T, r *rbNode[T]) *rbNode[T] {
	switch {
	case isRed(l) && isRed(r):
		return node(red, blacken(l), v, blacken(r))
	case isRed(l) && isRed(l.left):
		return node(red, blacken(l.left), l.value, node(black, l.right, v, r))
	case isRed(l) && isRed(l.right):
		return node(red,
			node(black, l.left, l.value, l.right.left),
			l.right.value,
			node(black, l.right.right, v, r))
	case isRed(r) && isRed(r.right):
		return node(red, node(black, l, v, r.left), r.value, blacken(r.right))
	case isRed(r) && isRed(r.left):
		return node(red,
			node(black, l, v, r.left.left),
			r.left.value,
			node(black, r.left.right, r.value, r.right))
	}
	return node(black, l, v, r)
}

func node[T any](c color, l *rbNode[T], v T, r *rbNode[T]) *rbNode[T] {
	return &rbNode[T]{value: v, color: c, left: l, right: r}
}

func isRed[T any](n *rbNode[T]) bool {
	return n != nil && n.color == red
}

func blacken[T any](n *rbNode[T]) *rbNode[T] {
	if n == nil || n.color == black {
		return n
	}
	return node(black, n.left, n.value, n.right)
}

func redden[T any](n *rbNode[T]) *rbNode[T] {
	if n == nil {
		panic("redblack: cannot colour an empty leaf red")
	}
	return node(red, n.left, n.value, n.right)
}

// blackHeight returns the number of black nodes on every path from n to
// a leaf (counting the leaf) and false if the colour invariants do not
// hold below n.
func blackHeight[T any](n *rbNode[T]) (int, bool) {
	if n == nil {
		return 1, true
	}
	if n.color == red && (isRed(n.left) || isRed(n.right)) {
		return 0, false
	}
	l, ok := blackHeight(n.left)
	if !ok {
		return 0, false
	}
	r, ok := blackHeight(n.right)
	if !ok || l != r {
		return 0, false
	}
	if n.color == black {
		l++
	}
	return l, true
}
