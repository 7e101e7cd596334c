package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// FrameType identifies the payload of a journal frame
type FrameType uint8

const (
	FrameHeader FrameType = 0x01 // Journal metadata, always first
	FrameTick   FrameType = 0x02 // One synchronization pass of collider changes
)

func (t FrameType) String() string {
	switch t {
	case FrameHeader:
		return "header"
	case FrameTick:
		return "tick"
	default:
		return fmt.Sprintf("FrameType(0x%02x)", uint8(t))
	}
}

// HeaderSize is the fixed frame prefix: [Type:1][Flags:1][Seq:4][Len:4]
const HeaderSize = 10

// MaxPayload bounds a single frame payload
const MaxPayload = 16 << 20

// Frame flags
const (
	FlagNone uint8 = 0x00
)

var (
	ErrFrameTooLarge = errors.New("journal: frame payload exceeds maximum size")
	ErrUnknownFrame  = errors.New("journal: unknown frame type")
	ErrMissingHeader = errors.New("journal: first frame is not a header")
	ErrSequence      = errors.New("journal: frame sequence out of order")
)

// frame is one length-prefixed record
type frame struct {
	Type    FrameType
	Flags   uint8
	Seq     uint32
	Payload []byte
}

// encode writes the prefix and payload
func (f *frame) encode(w io.Writer) error {
	if len(f.Payload) > MaxPayload {
		return ErrFrameTooLarge
	}

	var header [HeaderSize]byte
	header[0] = byte(f.Type)
	header[1] = f.Flags
	binary.BigEndian.PutUint32(header[2:6], f.Seq)
	binary.BigEndian.PutUint32(header[6:10], uint32(len(f.Payload)))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(f.Payload) > 0 {
		if _, err := w.Write(f.Payload); err != nil {
			return err
		}
	}
	return nil
}

// decodeFrame reads one frame
// Returns io.EOF only at a clean frame boundary, io.ErrUnexpectedEOF on truncation
func decodeFrame(r io.Reader) (frame, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return frame{}, err
	}

	f := frame{
		Type:  FrameType(header[0]),
		Flags: header[1],
		Seq:   binary.BigEndian.Uint32(header[2:6]),
	}
	switch f.Type {
	case FrameHeader, FrameTick:
	default:
		return frame{}, fmt.Errorf("%w: %v", ErrUnknownFrame, f.Type)
	}

	n := binary.BigEndian.Uint32(header[6:10])
	if n > MaxPayload {
		return frame{}, ErrFrameTooLarge
	}
	if n > 0 {
		f.Payload = make([]byte, n)
		if _, err := io.ReadFull(r, f.Payload); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return frame{}, err
		}
	}
	return f, nil
}
