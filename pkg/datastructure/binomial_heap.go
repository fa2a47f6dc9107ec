package datastructure

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	ErrEmptyQueue      = errors.New("priority queue is empty")
	ErrInvalidDecrease = errors.New("new value must be less or equal than the current value")
	ErrInvalidHandle   = errors.New("handle does not refer to a queued element")
)

// Handle identifies an element inserted into a BinomialHeap. it stays valid until the element is extracted,
// no matter how the trees are restructured in between.
type Handle int32

const nilIndex int32 = -1

type binomialNode[T any] struct {
	value    T
	handle   Handle
	parent   int32
	children []int32 // ranks 0..rank-1, in increasing order
}

func (n *binomialNode[T]) rank() int {
	return len(n.children)
}

/*
BinomialHeap. min priority queue as a forest of binomial trees with at most one tree per rank.

tree nodes live in an arena (nodes) and link to each other by index. a Handle is an index into handles,
and handles[h] is the arena index of the node that currently holds the element of h.
decreaseKey moves (value, handle) pairs up the tree instead of moving nodes, so only the handles table
needs to be patched.

insert: O(log n) worst case, O(1) amortized
peekMin: O(1)
extractMin: O(log n)
decreaseKey: O(log n)
*/
type BinomialHeap[T any] struct {
	nodes   []binomialNode[T]
	free    []int32
	handles []int32
	trees   []int32 // roots, strictly increasing rank
	minimum int32
	size    int
	compare func(a, b T) int
}

// NewBinomialHeap creates an empty heap ordered by compare (negative if a < b, zero if equal, positive if a > b).
func NewBinomialHeap[T any](compare func(a, b T) int) *BinomialHeap[T] {
	return &BinomialHeap[T]{
		nodes:   make([]binomialNode[T], 0),
		handles: make([]int32, 0),
		trees:   make([]int32, 0),
		minimum: nilIndex,
		compare: compare,
	}
}

func NewOrderedBinomialHeap[T cmp.Ordered]() *BinomialHeap[T] {
	return NewBinomialHeap[T](cmp.Compare[T])
}

func (h *BinomialHeap[T]) Size() int {
	return h.size
}

func (h *BinomialHeap[T]) IsEmpty() bool {
	return h.size == 0
}

// Insert adds value as a new rank-0 tree and merges it into the forest.
func (h *BinomialHeap[T]) Insert(value T) Handle {
	handle := Handle(len(h.handles))
	idx := h.newNode(value, handle)
	h.handles = append(h.handles, idx)

	h.merge([]int32{idx}, nilIndex)
	h.size++
	return handle
}

func (h *BinomialHeap[T]) newNode(value T, handle Handle) int32 {
	node := binomialNode[T]{
		value:  value,
		handle: handle,
		parent: nilIndex,
	}
	if n := len(h.free); n > 0 {
		idx := h.free[n-1]
		h.free = h.free[:n-1]
		h.nodes[idx] = node
		return idx
	}
	h.nodes = append(h.nodes, node)
	return int32(len(h.nodes) - 1)
}

// PeekMin returns the minimum value without removing it.
func (h *BinomialHeap[T]) PeekMin() (T, error) {
	if h.minimum == nilIndex {
		var zero T
		return zero, ErrEmptyQueue
	}
	return h.nodes[h.minimum].value, nil
}

// ExtractMin removes and returns the minimum value. the children of the minimum root already form a
// rank ordered forest and are merged back into the remaining trees.
func (h *BinomialHeap[T]) ExtractMin() (T, error) {
	if h.minimum == nilIndex {
		var zero T
		return zero, ErrEmptyQueue
	}

	minRoot := h.minimum
	node := &h.nodes[minRoot]
	value := node.value

	children := node.children
	for _, child := range children {
		h.nodes[child].parent = nilIndex
	}

	h.merge(children, minRoot)

	h.handles[node.handle] = nilIndex
	h.nodes[minRoot] = binomialNode[T]{parent: nilIndex, handle: -1}
	h.free = append(h.free, minRoot)
	h.size--

	return value, nil
}

// Value returns the current value of the element identified by handle.
func (h *BinomialHeap[T]) Value(handle Handle) (T, bool) {
	if !h.isLive(handle) {
		var zero T
		return zero, false
	}
	return h.nodes[h.handles[handle]].value, true
}

func (h *BinomialHeap[T]) isLive(handle Handle) bool {
	return handle >= 0 && int(handle) < len(h.handles) && h.handles[handle] != nilIndex
}

/*
DecreaseKey. replace the value of handle with newValue, newValue must not be greater than the current value.

the node holding handle exchanges its (value, handle) pair with its parent for as long as the parent value is
larger. children, parent links and ranks stay where they are.
*/
func (h *BinomialHeap[T]) DecreaseKey(handle Handle, newValue T) error {
	if !h.isLive(handle) {
		return fmt.Errorf("decrease key of handle %d: %w", handle, ErrInvalidHandle)
	}
	curr := h.handles[handle]
	if h.compare(newValue, h.nodes[curr].value) > 0 {
		return ErrInvalidDecrease
	}
	h.nodes[curr].value = newValue

	for {
		parent := h.nodes[curr].parent
		if parent == nilIndex {
			// reached a root. the root index itself never changes, only the cached minimum can.
			if h.compare(h.nodes[curr].value, h.nodes[h.minimum].value) < 0 {
				h.minimum = curr
			}
			return nil
		}
		if h.compare(h.nodes[parent].value, h.nodes[curr].value) <= 0 {
			return nil
		}

		h.swapElements(curr, parent)
		curr = parent
	}
}

func (h *BinomialHeap[T]) swapElements(a, b int32) {
	na, nb := &h.nodes[a], &h.nodes[b]
	na.value, nb.value = nb.value, na.value
	na.handle, nb.handle = nb.handle, na.handle
	h.handles[na.handle] = a
	h.handles[nb.handle] = b
}

// link makes the root with the larger value the last child of the other root. both must have the same rank.
func (h *BinomialHeap[T]) link(a, b int32) int32 {
	if h.compare(h.nodes[b].value, h.nodes[a].value) < 0 {
		a, b = b, a
	}
	h.nodes[a].children = append(h.nodes[a].children, b)
	h.nodes[b].parent = a
	return a
}

/*
merge. add the rank sorted trees in heads to the forest, like adding two binary numbers where bit r is the tree
of rank r. skip is a root of the current forest that must be left out (the extracted minimum) or nilIndex.

at every rank there are at most three trees: one from the forest, one from heads and the carry. one of them
stays at this rank and the other two are linked into the carry of the next rank.
*/
func (h *BinomialHeap[T]) merge(heads []int32, skip int32) {
	merged := make([]int32, 0, len(h.trees)+len(heads))
	minimum := nilIndex
	carry := nilIndex

	treeIdx, headIdx := 0, 0
	for {
		for treeIdx < len(h.trees) && h.trees[treeIdx] == skip {
			treeIdx++
		}

		hasTree := treeIdx < len(h.trees)
		hasHead := headIdx < len(heads)
		if !hasTree && !hasHead && carry == nilIndex {
			break
		}

		// next rank to settle. ranks with no tree in either forest are skipped.
		rank := -1
		if carry != nilIndex {
			rank = h.nodes[carry].rank()
		}
		if hasTree && (rank == -1 || h.nodes[h.trees[treeIdx]].rank() < rank) {
			rank = h.nodes[h.trees[treeIdx]].rank()
		}
		if hasHead && (rank == -1 || h.nodes[heads[headIdx]].rank() < rank) {
			rank = h.nodes[heads[headIdx]].rank()
		}

		same := make([]int32, 0, 3)
		if hasTree && h.nodes[h.trees[treeIdx]].rank() == rank {
			same = append(same, h.trees[treeIdx])
			treeIdx++
		}
		if hasHead && h.nodes[heads[headIdx]].rank() == rank {
			same = append(same, heads[headIdx])
			headIdx++
		}
		if carry != nilIndex {
			same = append(same, carry)
		}

		var out int32
		switch len(same) {
		case 1:
			out, carry = same[0], nilIndex
		case 2:
			out, carry = nilIndex, h.link(same[0], same[1])
		default:
			out, carry = same[2], h.link(same[0], same[1])
		}

		if out != nilIndex {
			if minimum == nilIndex || h.compare(h.nodes[out].value, h.nodes[minimum].value) < 0 {
				minimum = out
			}
			merged = append(merged, out)
		}
	}

	h.trees = merged
	h.minimum = minimum
}

// validate checks the binomial heap invariants. only used by tests.
func (h *BinomialHeap[T]) validate() error {
	count := 0
	lastRank := -1
	for _, root := range h.trees {
		if h.nodes[root].parent != nilIndex {
			return fmt.Errorf("root %d has a parent", root)
		}
		r := h.nodes[root].rank()
		if r <= lastRank {
			return fmt.Errorf("root ranks not strictly increasing: %d after %d", r, lastRank)
		}
		lastRank = r
		if h.compare(h.nodes[root].value, h.nodes[h.minimum].value) < 0 {
			return fmt.Errorf("cached minimum is not minimal")
		}
		n, err := h.validateTree(root)
		if err != nil {
			return err
		}
		if n != 1<<r {
			return fmt.Errorf("tree of rank %d has %d nodes", r, n)
		}
		count += n
	}
	if count != h.size {
		return fmt.Errorf("size %d but %d nodes in forest", h.size, count)
	}
	if h.size == 0 && h.minimum != nilIndex {
		return fmt.Errorf("empty heap with a minimum")
	}
	for handle, idx := range h.handles {
		if idx != nilIndex && h.nodes[idx].handle != Handle(handle) {
			return fmt.Errorf("handle %d points to node %d holding handle %d", handle, idx, h.nodes[idx].handle)
		}
	}
	return nil
}

func (h *BinomialHeap[T]) validateTree(idx int32) (int, error) {
	node := &h.nodes[idx]
	count := 1
	for i, child := range node.children {
		if h.nodes[child].parent != idx {
			return 0, fmt.Errorf("node %d: child %d has parent %d", idx, child, h.nodes[child].parent)
		}
		if h.nodes[child].rank() != i {
			return 0, fmt.Errorf("node %d: child %d at position %d has rank %d", idx, child, i, h.nodes[child].rank())
		}
		if h.compare(h.nodes[child].value, node.value) < 0 {
			return 0, fmt.Errorf("node %d: heap order violated by child %d", idx, child)
		}
		n, err := h.validateTree(child)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}
