package render

import (
	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/vmath"
)

// ellipseSegments is the outline resolution for ellipses
const ellipseSegments = 32

// Body is one collider as seen by the renderers
type Body struct {
	Entity core.Entity
	Shape  collision.Shape
	Flash  float64 // Remaining contact highlight in [0, 1]
}

// Collect gathers every collider of the world in entity order
func Collect(w *engine.World) []Body {
	entities := w.Query().With(w.Colliders).Execute()
	bodies := make([]Body, 0, len(entities))
	for _, e := range entities {
		col, _ := w.Colliders.GetComponent(e)
		b := Body{Entity: e, Shape: col.Shape}
		if f, ok := w.Flashes.GetComponent(e); ok && f.Duration > 0 {
			b.Flash = min(1, max(0, float64(f.Remaining)/float64(f.Duration)))
		}
		bodies = append(bodies, b)
	}
	return bodies
}

// Outline returns the polygon of a shape in world units
func Outline(s collision.Shape) []vmath.Vec2 {
	switch {
	case s.Kind == collision.KindRectangle:
		pts := s.BoundPoints()
		return pts[:]
	case s.Kind.IsTriangle():
		pts := s.SlopePoints()
		return pts[:]
	default:
		out := make([]vmath.Vec2, 0, ellipseSegments)
		for p := range s.EllipsePoints(ellipseSegments) {
			out = append(out, p)
		}
		return out
	}
}

func (b Body) color() RGB {
	var base RGB
	switch {
	case b.Shape.Kind == collision.KindRectangle:
		base = RgbRectangle
	case b.Shape.Kind.IsTriangle():
		base = RgbTriangle
	default:
		base = RgbEllipse
	}
	return Lerp(base, RgbFlash, b.Flash)
}

func (b Body) glyph() rune {
	switch {
	case b.Shape.Kind == collision.KindRectangle:
		return '#'
	case b.Shape.Kind.IsTriangle():
		return '^'
	case b.Shape.HBound == vmath.V2Zero:
		return '.'
	default:
		return 'o'
	}
}
