package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
)

var (
	errNoSuchNode   = errors.New("no such node")
	errNodeUsed     = errors.New("node already used")
	errNodeTooSmall = errors.New("footprint exceeds node")
)

// none marks an absent child.
const none = -1

// node is one region of the free-rectangle tree. A node owns at most two
// children, created when it is consumed and never reparented.
type node struct {
	model.Rect
	Used  bool
	Right int // strip right of the placed footprint
	Down  int // strip below the placed footprint
}

// freeTree is the set of still-cuttable regions of one sheet, stored as an
// arena indexed by node number. Node 0 is the sheet's usable rectangle.
type freeTree struct {
	nodes []node
	cuts  []model.Cut
}

func newFreeTree(root model.Rect) *freeTree {
	return &freeTree{
		nodes: []node{{Rect: root, Right: none, Down: none}},
	}
}

// freeLeaves returns every unused node reachable from the root exactly once,
// in depth-first pre-order: node, right subtree, down subtree.
func (t *freeTree) freeLeaves() []int {
	var leaves []int
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[idx]
		if !n.Used {
			leaves = append(leaves, idx)
			continue
		}
		if n.Down != none {
			stack = append(stack, n.Down)
		}
		if n.Right != none {
			stack = append(stack, n.Right)
		}
	}
	return leaves
}

// freeRects returns the rectangles of all free leaves.
func (t *freeTree) freeRects() []model.Rect {
	leaves := t.freeLeaves()
	rects := make([]model.Rect, len(leaves))
	for i, idx := range leaves {
		rects[i] = t.nodes[idx].Rect
	}
	return rects
}

// bestFit returns the free leaf that admits a fw x fh footprint with the least
// leftover area. Ties keep the first leaf in traversal order.
func (t *freeTree) bestFit(fw, fh float64) (int, bool) {
	best := none
	bestWaste := 0.0
	need := fw * fh
	for _, idx := range t.freeLeaves() {
		r := t.nodes[idx].Rect
		if fw > r.Width+model.Epsilon || fh > r.Height+model.Epsilon {
			continue
		}
		waste := r.Area() - need
		if best == none || waste < bestWaste {
			best = idx
			bestWaste = waste
		}
	}
	return best, best != none
}

// consumeAndSplit marks a node used by a fw x fh footprint anchored at its
// top-left corner and tiles the leftover L-shape with up to two children.
// When the leftover width is at least the leftover height the right child
// spans the full node height, otherwise the down child spans the full width.
func (t *freeTree) consumeAndSplit(idx int, fw, fh float64) error {
	if idx < 0 || idx >= len(t.nodes) {
		return fmt.Errorf("node %d: %w", idx, errNoSuchNode)
	}
	n := t.nodes[idx]
	if n.Used {
		return fmt.Errorf("node %d: %w", idx, errNodeUsed)
	}
	if fw > n.Width+model.Epsilon || fh > n.Height+model.Epsilon {
		return fmt.Errorf("node %d (%gx%g) cannot hold %gx%g: %w",
			idx, n.Width, n.Height, fw, fh, errNodeTooSmall)
	}

	rw := max(n.Width-fw, 0)
	rh := max(n.Height-fh, 0)

	n.Used = true
	if rw >= rh {
		if rw > model.Epsilon {
			n.Right = t.add(model.Rect{X: n.X + fw, Y: n.Y, Width: rw, Height: n.Height})
			t.cut(model.CutVertical, n.X+fw, n.Y, n.Height, idx)
		}
		if rh > model.Epsilon {
			n.Down = t.add(model.Rect{X: n.X, Y: n.Y + fh, Width: fw, Height: rh})
			t.cut(model.CutHorizontal, n.X, n.Y+fh, fw, idx)
		}
	} else {
		if rh > model.Epsilon {
			n.Down = t.add(model.Rect{X: n.X, Y: n.Y + fh, Width: n.Width, Height: rh})
			t.cut(model.CutHorizontal, n.X, n.Y+fh, n.Width, idx)
		}
		if rw > model.Epsilon {
			n.Right = t.add(model.Rect{X: n.X + fw, Y: n.Y, Width: rw, Height: fh})
			t.cut(model.CutVertical, n.X+fw, n.Y, fh, idx)
		}
	}
	t.nodes[idx] = n
	return nil
}

// mustConsume is consumeAndSplit for a leaf chosen by bestFit, which always
// admits the footprint. A failure is a bug in the tree and panics.
func (t *freeTree) mustConsume(idx int, fw, fh float64) {
	if err := t.consumeAndSplit(idx, fw, fh); err != nil {
		panic(fmt.Sprintf("engine: split of best-fit leaf failed: %v", err))
	}
}

func (t *freeTree) add(r model.Rect) int {
	t.nodes = append(t.nodes, node{Rect: r, Right: none, Down: none})
	return len(t.nodes) - 1
}

func (t *freeTree) cut(o model.CutOrientation, x, y, length float64, idx int) {
	t.cuts = append(t.cuts, model.Cut{Orientation: o, X: x, Y: y, Length: length, Node: idx})
}
