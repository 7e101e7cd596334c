package journal

import (
	"fmt"
	"time"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/vmath"
)

// Version is the journal format revision written into the header
const Version = 1

// headerDTO is the msgpack payload of FrameHeader
type headerDTO struct {
	Version int     `msgpack:"v"`
	Scale   float64 `msgpack:"scale"`
	Created int64   `msgpack:"created"` // Unix nanoseconds
}

type shapeDTO struct {
	Kind   string     `msgpack:"k"`
	Origin [2]float64 `msgpack:"o"`
	HBound [2]float64 `msgpack:"h"`
}

type entryDTO struct {
	Entity uint64   `msgpack:"e"`
	Shape  shapeDTO `msgpack:"s"`
}

// tickDTO is the msgpack payload of FrameTick
type tickDTO struct {
	Frame   uint64     `msgpack:"f"`
	Added   []entryDTO `msgpack:"a,omitempty"`
	Changed []entryDTO `msgpack:"c,omitempty"`
	Removed []uint64   `msgpack:"r,omitempty"`
}

func toShapeDTO(s collision.Shape) shapeDTO {
	return shapeDTO{
		Kind:   s.Kind.String(),
		Origin: [2]float64{s.Origin.X, s.Origin.Y},
		HBound: [2]float64{s.HBound.X, s.HBound.Y},
	}
}

func (d shapeDTO) toShape() (collision.Shape, error) {
	kind, err := collision.ParseShapeKind(d.Kind)
	if err != nil {
		return collision.Shape{}, err
	}
	if d.HBound[0] < 0 || d.HBound[1] < 0 {
		return collision.Shape{}, fmt.Errorf("negative half-extent %v", d.HBound)
	}
	return collision.Shape{
		Origin: vmath.V2(d.Origin[0], d.Origin[1]),
		HBound: vmath.V2(d.HBound[0], d.HBound[1]),
		Kind:   kind,
	}, nil
}

func toEntries(list []entryDTO) ([]Entry, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]Entry, len(list))
	for i, d := range list {
		shape, err := d.Shape.toShape()
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", d.Entity, err)
		}
		out[i] = Entry{Entity: core.Entity(d.Entity), Shape: shape}
	}
	return out, nil
}

func (d headerDTO) toHeader() Header {
	return Header{Version: d.Version, Scale: d.Scale, Created: time.Unix(0, d.Created)}
}
