package document

import (
	"time"

	"github.com/retouchlab/retouch/internal/adjust"
	"github.com/retouchlab/retouch/internal/raster"
)

// DefaultHistoryCapacity bounds the undo ring when no explicit capacity
// is configured.
const DefaultHistoryCapacity = 50

// historyEntry is one baked checkpoint: a deep-copied pixel buffer and
// the adjustment state that produced it. Restoring an entry restores
// both together, keeping sliders and pixels consistent.
type historyEntry struct {
	buf *raster.Buffer
	adj adjust.Adjustments
	at  time.Time
}

// History is a bounded linear undo stack with a cursor marking the
// current position. A push from a non-tail cursor discards everything
// after the cursor; redo branches are never preserved. Entries are
// deep-copied on push and on retrieval, so callers may mutate freely.
type History struct {
	entries  []historyEntry
	cursor   int // index of the current entry, -1 when empty
	capacity int
}

// NewHistory creates an empty history. A capacity below 1 falls back to
// DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{cursor: -1, capacity: capacity}
}

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the current entry, -1 when empty.
func (h *History) Cursor() int { return h.cursor }

// CanUndo reports whether a step back is available.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a step forward is available.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Push appends a checkpoint after the cursor, discarding any redo-able
// entries beyond it. When the ring is full the oldest entry is evicted
// and the cursor shifts down by one.
func (h *History) Push(buf *raster.Buffer, adj adjust.Adjustments) {
	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, historyEntry{
		buf: buf.Clone(),
		adj: adj,
		at:  time.Now(),
	})
	h.cursor++

	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
		h.cursor--
	}
}

// Undo steps the cursor back and returns a copy of that entry. The
// boolean is false at the boundary (cursor at 0 or history empty), in
// which case nothing changes.
func (h *History) Undo() (*raster.Buffer, adjust.Adjustments, bool) {
	if !h.CanUndo() {
		return nil, adjust.Adjustments{}, false
	}
	h.cursor--
	e := h.entries[h.cursor]
	return e.buf.Clone(), e.adj, true
}

// Redo steps the cursor forward and returns a copy of that entry. The
// boolean is false at the tail, in which case nothing changes.
func (h *History) Redo() (*raster.Buffer, adjust.Adjustments, bool) {
	if !h.CanRedo() {
		return nil, adjust.Adjustments{}, false
	}
	h.cursor++
	e := h.entries[h.cursor]
	return e.buf.Clone(), e.adj, true
}

// Clear discards all entries and resets the cursor.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = -1
}
