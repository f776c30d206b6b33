package document

import (
	"errors"
	"image"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/retouchlab/retouch/internal/adjust"
	"github.com/retouchlab/retouch/internal/histogram"
	"github.com/retouchlab/retouch/internal/operator"
	"github.com/retouchlab/retouch/internal/raster"
)

var (
	// ErrNoImage is returned when an operation needs a loaded original
	// and none exists yet.
	ErrNoImage = errors.New("no image loaded")

	// ErrEmptyBuffer is returned when a caller hands over a nil or
	// zero-area pixel buffer.
	ErrEmptyBuffer = errors.New("empty pixel buffer")
)

// Document is one editing session: the immutable original, the current
// composed buffer, the live adjustment state and the undo history.
//
// Methods are not safe for concurrent use; the surrounding layer must
// funnel all writes through one goroutine (or one mutex), mirroring a
// single UI event loop. The busy flag exists only to drop a
// recomposition that arrives while one is already in flight.
type Document struct {
	original *raster.Buffer
	current  *raster.Buffer
	adj      adjust.Adjustments
	history  *History
	busy     atomic.Bool
	log      *zap.SugaredLogger
}

// Option configures a Document.
type Option func(*Document)

// WithHistoryCapacity bounds the undo ring.
func WithHistoryCapacity(n int) Option {
	return func(d *Document) { d.history = NewHistory(n) }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(d *Document) { d.log = log }
}

// New creates an empty document. An original must be loaded before any
// other operation succeeds.
func New(opts ...Option) *Document {
	d := &Document{
		history: NewHistory(DefaultHistoryCapacity),
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Loaded reports whether an original has been loaded.
func (d *Document) Loaded() bool { return d.original != nil }

// LoadOriginal replaces the original, resets the adjustment state to
// neutral, clears the history and seeds it with the neutral buffer.
// On failure the previous session state is untouched.
func (d *Document) LoadOriginal(buf *raster.Buffer) error {
	if buf == nil || buf.W < 1 || buf.H < 1 || len(buf.Pix) != 4*buf.W*buf.H {
		return ErrEmptyBuffer
	}

	d.original = buf.Clone()
	d.current = buf.Clone()
	d.adj = adjust.Neutral()
	d.history.Clear()
	d.history.Push(d.current, d.adj)

	d.log.Infow("original loaded",
		"width", buf.W, "height", buf.H, "fingerprint", buf.Fingerprint())
	return nil
}

// Set mutates exactly the adjustment field(s) belonging to p without
// recomposing. Callers that batch slider events apply several Sets and
// one Recompose.
func (d *Document) Set(p adjust.Param) error {
	if !d.Loaded() {
		return ErrNoImage
	}
	d.adj.Apply(p)
	return nil
}

// Recompose re-derives the current buffer from the original and the
// full adjustment state. A call that arrives while a composition is in
// flight is dropped and returns false; this is the expected outcome of
// a burst of UI events, not an error.
func (d *Document) Recompose() bool {
	if !d.Loaded() {
		return false
	}
	if !d.busy.CompareAndSwap(false, true) {
		d.log.Debugw("recompose dropped, composition in flight")
		return false
	}
	defer d.busy.Store(false)

	d.current = adjust.Compose(d.original, d.adj)
	return true
}

// SetParameter applies one parameter change and synchronously
// recomposes — the convenience path for non-interactive callers.
func (d *Document) SetParameter(p adjust.Param) error {
	if err := d.Set(p); err != nil {
		return err
	}
	d.Recompose()
	return nil
}

// Adjustments returns a copy of the current adjustment state.
func (d *Document) Adjustments() adjust.Adjustments { return d.adj }

// Current returns a deep copy of the latest composed buffer.
func (d *Document) Current() (*raster.Buffer, error) {
	if !d.Loaded() {
		return nil, ErrNoImage
	}
	return d.current.Clone(), nil
}

// Original returns a deep copy of the pristine source buffer.
func (d *Document) Original() (*raster.Buffer, error) {
	if !d.Loaded() {
		return nil, ErrNoImage
	}
	return d.original.Clone(), nil
}

// Bake commits the current buffer and adjustment state to the history
// as a new undo checkpoint.
func (d *Document) Bake() error {
	if !d.Loaded() {
		return ErrNoImage
	}
	d.history.Push(d.current, d.adj)
	d.log.Debugw("baked", "entries", d.history.Len(), "cursor", d.history.Cursor())
	return nil
}

// Reset restores the neutral adjustment state, recomposes, clears the
// history and re-seeds it with the neutral buffer.
func (d *Document) Reset() error {
	if !d.Loaded() {
		return ErrNoImage
	}
	d.adj = adjust.Neutral()
	d.current = d.original.Clone()
	d.history.Clear()
	d.history.Push(d.current, d.adj)
	return nil
}

// Undo steps back one history entry, restoring both the pixels and the
// adjustment state recorded with them. Returns false (and changes
// nothing) at the boundary.
func (d *Document) Undo() bool {
	buf, adjState, ok := d.history.Undo()
	if !ok {
		return false
	}
	d.current = buf
	d.adj = adjState
	return true
}

// Redo steps forward one history entry; the counterpart of Undo.
func (d *Document) Redo() bool {
	buf, adjState, ok := d.history.Redo()
	if !ok {
		return false
	}
	d.current = buf
	d.adj = adjState
	return true
}

// CanUndo reports whether Undo would succeed.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// Histogram computes per-channel statistics over the current buffer.
func (d *Document) Histogram() (*histogram.Stats, error) {
	if !d.Loaded() {
		return nil, ErrNoImage
	}
	return histogram.Compute(d.current), nil
}

// Geometry operators bake into the source: unlike the continuously
// adjustable parameters they transform the original itself, then
// recompose and restart the history at the new canvas size so that
// original, current and every history entry always agree on
// dimensions.

// Rotate90 rotates the canvas 90° counter-clockwise.
func (d *Document) Rotate90() error {
	return d.replaceOriginal(operator.Rotate90)
}

// Rotate180 rotates the canvas 180°.
func (d *Document) Rotate180() error {
	return d.replaceOriginal(operator.Rotate180)
}

// Rotate270 rotates the canvas 270° counter-clockwise.
func (d *Document) Rotate270() error {
	return d.replaceOriginal(operator.Rotate270)
}

// FlipH mirrors the canvas horizontally.
func (d *Document) FlipH() error {
	return d.replaceOriginal(operator.FlipH)
}

// FlipV mirrors the canvas vertically.
func (d *Document) FlipV() error {
	return d.replaceOriginal(operator.FlipV)
}

// Crop replaces the canvas with a region of it. The rectangle is
// clamped to the canvas and expanded to at least one pixel.
func (d *Document) Crop(rect image.Rectangle) error {
	return d.replaceOriginal(func(src *raster.Buffer) *raster.Buffer {
		return operator.Crop(src, rect)
	})
}

func (d *Document) replaceOriginal(op func(*raster.Buffer) *raster.Buffer) error {
	if !d.Loaded() {
		return ErrNoImage
	}

	d.original = op(d.original)
	d.current = adjust.Compose(d.original, d.adj)
	d.history.Clear()
	d.history.Push(d.current, d.adj)

	d.log.Infow("geometry baked into source",
		"width", d.original.W, "height", d.original.H)
	return nil
}
