package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/vmath"
)

// ErrEmptySnapshot is returned when the options produce a zero-sized image
var ErrEmptySnapshot = errors.New("snapshot has no pixels")

// SnapshotOptions controls image rasterisation
type SnapshotOptions struct {
	PixelsPerUnit float64
	Width         float64 // Arena width in world units
	Height        float64
	Grid          bool // Shade occupied cells
	Labels        bool // Draw entity ids
}

// Snapshot rasterises the arena: occupied cells, filled shapes and optional labels
func Snapshot(grid *engine.CacheGrid, bodies []Body, opts SnapshotOptions) (*image.RGBA, error) {
	ppu := opts.PixelsPerUnit
	w := int(math.Ceil(opts.Width * ppu))
	h := int(math.Ceil(opts.Height * ppu))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %vx%v at %v px/unit", ErrEmptySnapshot, opts.Width, opts.Height, ppu)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(RgbBackground.RGBA()), image.Point{}, draw.Src)

	if opts.Grid && grid != nil {
		drawCells(img, grid, ppu)
	}

	z := vector.NewRasterizer(w, h)
	for _, b := range bodies {
		fillBody(img, z, b, ppu)
	}

	if opts.Labels {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(RgbLabel.RGBA()), Face: basicfont.Face7x13}
		for _, b := range bodies {
			d.Dot = fixed.P(int(b.Shape.Origin.X*ppu)+2, int(b.Shape.Origin.Y*ppu)-2)
			d.DrawString(strconv.FormatUint(uint64(b.Entity), 10))
		}
	}
	return img, nil
}

// drawCells fills each occupied grid cell with an inset border
func drawCells(img *image.RGBA, grid *engine.CacheGrid, ppu float64) {
	cellPx := ppu / grid.Scale()
	grid.EachCell(func(x, y int, set engine.EntitySet) bool {
		r := image.Rect(
			int(math.Floor(float64(x)*cellPx)), int(math.Floor(float64(y)*cellPx)),
			int(math.Ceil(float64(x+1)*cellPx)), int(math.Ceil(float64(y+1)*cellPx)),
		).Intersect(img.Bounds())
		if r.Empty() {
			return true
		}
		draw.Draw(img, r, image.NewUniform(RgbGridLine.RGBA()), image.Point{}, draw.Src)
		if inner := r.Inset(1); !inner.Empty() {
			draw.Draw(img, inner, image.NewUniform(cellShade(len(set)).RGBA()), image.Point{}, draw.Src)
		}
		return true
	})
}

// fillBody rasterises the shape outline; degenerate shapes become a 3x3 dot
func fillBody(img *image.RGBA, z *vector.Rasterizer, b Body, ppu float64) {
	src := image.NewUniform(b.color().RGBA())
	pts := Outline(b.Shape)

	if b.Shape.HBound.X*ppu < 1 && b.Shape.HBound.Y*ppu < 1 {
		cx, cy := int(b.Shape.Origin.X*ppu), int(b.Shape.Origin.Y*ppu)
		draw.Draw(img, image.Rect(cx-1, cy-1, cx+2, cy+2).Intersect(img.Bounds()), src, image.Point{}, draw.Over)
		return
	}

	z.Reset(img.Bounds().Dx(), img.Bounds().Dy())
	z.DrawOp = draw.Over
	p := vmath.V2Scale(pts[0], ppu)
	z.MoveTo(float32(p.X), float32(p.Y))
	for _, v := range pts[1:] {
		p = vmath.V2Scale(v, ppu)
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(img, img.Bounds(), src, image.Point{})
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
