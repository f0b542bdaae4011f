package app

import (
	"sync"

	"sketchpad/internal/object"
)

// History is a bounded undo/redo stack of object-list snapshots. Each
// snapshot is an independent deep copy; callers own the clones they get
// back.
type History struct {
	mu        sync.Mutex
	snapshots [][]*object.Object
	index     int
	limit     int
}

// NewHistory creates a history keeping at most limit snapshots.
func NewHistory(limit int) *History {
	if limit < 2 {
		limit = 2
	}
	return &History{index: -1, limit: limit}
}

// Push records a new snapshot, discarding any redo tail. The oldest
// snapshot is dropped once the limit is reached.
func (h *History) Push(snapshot []*object.Object) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshots = h.snapshots[:h.index+1]
	h.snapshots = append(h.snapshots, snapshot)
	if len(h.snapshots) > h.limit {
		h.snapshots = h.snapshots[1:]
	}
	h.index = len(h.snapshots) - 1
}

// Undo steps back one snapshot. The second return is false when already at
// the oldest state.
func (h *History) Undo() ([]*object.Object, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index <= 0 {
		return nil, false
	}
	h.index--
	return h.snapshots[h.index], true
}

// Redo steps forward one snapshot after an undo.
func (h *History) Redo() ([]*object.Object, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.snapshots)-1 {
		return nil, false
	}
	h.index++
	return h.snapshots[h.index], true
}

// CanUndo reports whether a previous snapshot exists.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanRedo reports whether an undone snapshot can be restored.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.snapshots)-1
}
