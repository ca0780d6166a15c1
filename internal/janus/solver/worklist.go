package solver

import (
	"sync"

	"github.com/gdionne/janus/internal/janus/coord"
	"github.com/gdionne/janus/internal/janus/fullcube"
)

// Solution is a sequence of twists (0..17) applied from the search's
// starting cube state.
type Solution []uint8

// workItem is one frontier node handed off to a worker once the root
// expansion reaches threadDepth.
type workItem struct {
	index     coord.CubeIndex
	depth     coord.CubeDepth
	fullCube  fullcube.FullCube
	remaining uint8
	work      Solution
}

// workList is a FIFO queue of frontier search nodes. The main thread fills
// it single-threaded before any worker starts, so push needs no lock in
// principle; it takes one anyway since nothing here is hot enough to matter
// and a single lock covers both push and pop uniformly.
type workList struct {
	mu    sync.Mutex
	items []workItem
}

func (w *workList) clear() {
	w.mu.Lock()
	w.items = w.items[:0]
	w.mu.Unlock()
}

func (w *workList) push(item workItem) {
	w.mu.Lock()
	w.items = append(w.items, item)
	w.mu.Unlock()
}

func (w *workList) pop() (workItem, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.items) == 0 {
		return workItem{}, false
	}
	item := w.items[0]
	w.items = w.items[1:]
	return item, true
}
