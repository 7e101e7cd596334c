package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/engine"
)

// Header describes the recorded session
type Header struct {
	Version int
	Scale   float64 // Grid scale the session ran with
	Created time.Time
}

// Entry is one collider shape reported in a tick
type Entry struct {
	Entity core.Entity
	Shape  collision.Shape
}

// Tick is one recorded synchronization pass; it replays as engine.ColliderChanges
type Tick struct {
	Frame     uint64
	Additions []Entry
	Changes   []Entry
	Removals  []core.Entity
}

func (t Tick) Added() iter.Seq2[core.Entity, collision.Shape]   { return entrySeq(t.Additions) }
func (t Tick) Changed() iter.Seq2[core.Entity, collision.Shape] { return entrySeq(t.Changes) }

func (t Tick) Removed() iter.Seq[core.Entity] {
	return func(yield func(core.Entity) bool) {
		for _, e := range t.Removals {
			if !yield(e) {
				return
			}
		}
	}
}

// Empty reports whether the tick carries no changes
func (t Tick) Empty() bool {
	return len(t.Additions) == 0 && len(t.Changes) == 0 && len(t.Removals) == 0
}

// Apply mirrors the tick onto a shape table
func (t Tick) Apply(shapes map[core.Entity]collision.Shape) {
	for _, en := range t.Additions {
		shapes[en.Entity] = en.Shape
	}
	for _, en := range t.Changes {
		shapes[en.Entity] = en.Shape
	}
	for _, e := range t.Removals {
		delete(shapes, e)
	}
}

func entrySeq(list []Entry) iter.Seq2[core.Entity, collision.Shape] {
	return func(yield func(core.Entity, collision.Shape) bool) {
		for _, en := range list {
			if !yield(en.Entity, en.Shape) {
				return
			}
		}
	}
}

// Writer appends frames to a journal stream
type Writer struct {
	w   *bufio.Writer
	seq uint32
}

// NewWriter buffers frames onto w; call Flush before closing w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the session header; must be the first frame
func (w *Writer) WriteHeader(h Header) error {
	dto := headerDTO{Version: h.Version, Scale: h.Scale}
	if dto.Version == 0 {
		dto.Version = Version
	}
	if !h.Created.IsZero() {
		dto.Created = h.Created.UnixNano()
	}
	return w.write(FrameHeader, dto)
}

// WriteTick drains changes into one tick frame
func (w *Writer) WriteTick(frameNum uint64, changes engine.ColliderChanges) error {
	dto := tickDTO{Frame: frameNum}
	for e, s := range changes.Added() {
		dto.Added = append(dto.Added, entryDTO{Entity: uint64(e), Shape: toShapeDTO(s)})
	}
	for e, s := range changes.Changed() {
		dto.Changed = append(dto.Changed, entryDTO{Entity: uint64(e), Shape: toShapeDTO(s)})
	}
	for e := range changes.Removed() {
		dto.Removed = append(dto.Removed, uint64(e))
	}
	return w.write(FrameTick, dto)
}

// Flush writes buffered frames to the underlying writer
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) write(t FrameType, v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("journal: encode %v: %w", t, err)
	}
	f := frame{Type: t, Flags: FlagNone, Seq: w.seq, Payload: payload}
	if err := f.encode(w.w); err != nil {
		return err
	}
	w.seq++
	return nil
}

// Reader decodes frames from a journal stream
type Reader struct {
	r       *bufio.Reader
	nextSeq uint32
	header  bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadHeader reads the session header; must be called before Next
func (r *Reader) ReadHeader() (Header, error) {
	f, err := r.read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Header{}, ErrMissingHeader
		}
		return Header{}, err
	}
	if f.Type != FrameHeader {
		return Header{}, ErrMissingHeader
	}

	var dto headerDTO
	if err := msgpack.Unmarshal(f.Payload, &dto); err != nil {
		return Header{}, fmt.Errorf("journal: decode header: %w", err)
	}
	r.header = true
	return dto.toHeader(), nil
}

// Next returns the following tick, or io.EOF at the end of the stream
func (r *Reader) Next() (Tick, error) {
	if !r.header {
		return Tick{}, ErrMissingHeader
	}
	f, err := r.read()
	if err != nil {
		return Tick{}, err
	}
	if f.Type != FrameTick {
		return Tick{}, fmt.Errorf("%w: %v after header", ErrUnknownFrame, f.Type)
	}

	var dto tickDTO
	if err := msgpack.Unmarshal(f.Payload, &dto); err != nil {
		return Tick{}, fmt.Errorf("journal: decode tick %d: %w", f.Seq, err)
	}

	tick := Tick{Frame: dto.Frame}
	if tick.Additions, err = toEntries(dto.Added); err != nil {
		return Tick{}, fmt.Errorf("journal: tick %d: %w", dto.Frame, err)
	}
	if tick.Changes, err = toEntries(dto.Changed); err != nil {
		return Tick{}, fmt.Errorf("journal: tick %d: %w", dto.Frame, err)
	}
	if len(dto.Removed) > 0 {
		tick.Removals = make([]core.Entity, len(dto.Removed))
		for i, e := range dto.Removed {
			tick.Removals[i] = core.Entity(e)
		}
	}
	return tick, nil
}

func (r *Reader) read() (frame, error) {
	f, err := decodeFrame(r.r)
	if err != nil {
		return frame{}, err
	}
	if f.Seq != r.nextSeq {
		return frame{}, fmt.Errorf("%w: got %d, want %d", ErrSequence, f.Seq, r.nextSeq)
	}
	r.nextSeq++
	return f, nil
}

// Replay feeds every tick of a journal into lookup and returns the tick count
// The lookup scale should match Header.Scale for identical cell ranges
func Replay(src io.Reader, lookup *engine.ColliderLookup) (int, error) {
	r := NewReader(src)
	h, err := r.ReadHeader()
	if err != nil {
		return 0, err
	}
	if h.Scale != lookup.Grid().Scale() {
		engine.Logger().Warn("journal scale differs from lookup", "journal", h.Scale, "lookup", lookup.Grid().Scale())
	}

	n := 0
	for {
		tick, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		lookup.Sync(tick)
		n++
	}
}
