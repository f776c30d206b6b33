// Package document owns the editing session: the immutable original,
// the derived current buffer, the adjustment state and the undo
// history.
//
// A Document is an explicit object created and owned by the caller;
// there is no ambient process-wide state, so multiple independent
// documents coexist and unit tests need no setup or teardown. The
// document expects a single logical writer (the UI event loop); a
// recomposition requested while one is in flight is dropped, not
// queued.
package document
