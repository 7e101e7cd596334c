package journal

import (
	"github.com/lixenwraith/broadphase/engine"
)

// PriorityRecorder runs after every system that writes colliders
const PriorityRecorder = 40

// Recorder is a system that journals the collider changes of each tick
// Empty ticks are counted but not written
type Recorder struct {
	w      *Writer
	source engine.ColliderChanges
	frame  uint64
	err    error
}

// NewRecorder writes the header immediately; the caller owns flushing and closing
func NewRecorder(w *Writer, source engine.ColliderChanges, h Header) (*Recorder, error) {
	if err := w.WriteHeader(h); err != nil {
		return nil, err
	}
	return &Recorder{w: w, source: source}, nil
}

func (r *Recorder) Priority() int { return PriorityRecorder }

// Update records the pending changes; after the first failure it stops recording
func (r *Recorder) Update() {
	r.frame++
	if r.err != nil {
		return
	}
	if !hasChanges(r.source) {
		return
	}
	if err := r.w.WriteTick(r.frame, r.source); err != nil {
		r.err = err
		engine.Logger().Error("journal write failed", "frame", r.frame, "error", err)
	}
}

// Frame returns the number of ticks seen
func (r *Recorder) Frame() uint64 { return r.frame }

// Err returns the first write error
func (r *Recorder) Err() error { return r.err }

// Flush flushes the writer and reports the first error seen
func (r *Recorder) Flush() error {
	if r.err != nil {
		return r.err
	}
	return r.w.Flush()
}

func hasChanges(c engine.ColliderChanges) bool {
	for range c.Added() {
		return true
	}
	for range c.Changed() {
		return true
	}
	for range c.Removed() {
		return true
	}
	return false
}
