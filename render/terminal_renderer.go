package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/physics"
	"github.com/lixenwraith/broadphase/vmath"
)

// Frame is everything drawn in one terminal refresh
type Frame struct {
	Grid   *engine.CacheGrid
	Bodies []Body
	Width  float64 // Arena width in world units
	Height float64
	Status string
}

// TerminalRenderer draws the arena into a tcell screen; the last row is the status bar
type TerminalRenderer struct {
	screen   tcell.Screen
	ShowGrid bool

	occupied map[[2]int]int
}

// NewTerminalRenderer creates a renderer over screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen:   screen,
		ShowGrid: true,
		occupied: make(map[[2]int]int),
	}
}

// RenderFrame clears the screen and draws grid overlay, bodies and status
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.screen.Clear()
	defer r.screen.Show()

	cols, rows := r.screen.Size()
	arenaRows := rows - 1
	if cols <= 0 || arenaRows <= 0 || f.Width <= 0 || f.Height <= 0 {
		return
	}
	unit := vmath.V2(f.Width/float64(cols), f.Height/float64(arenaRows))

	r.drawBackground(f, cols, arenaRows, unit)
	for _, b := range f.Bodies {
		r.drawBody(b, cols, arenaRows, unit)
	}
	r.drawStatus(f.Status, cols, rows-1)
}

// drawBackground shades each screen cell by the grid cell under its centre
func (r *TerminalRenderer) drawBackground(f Frame, cols, rows int, unit vmath.Vec2) {
	clear(r.occupied)
	var scale float64
	if r.ShowGrid && f.Grid != nil {
		scale = f.Grid.Scale()
		f.Grid.EachCell(func(x, y int, set engine.EntitySet) bool {
			r.occupied[[2]int{x, y}] = len(set)
			return true
		})
	}

	for row := range rows {
		for col := range cols {
			bg := RgbBackground
			if scale > 0 {
				p := cellCentre(col, row, unit)
				key := [2]int{int(math.Floor(p.X * scale)), int(math.Floor(p.Y * scale))}
				bg = cellShade(r.occupied[key])
			}
			r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(bg.Tcell()))
		}
	}
}

// drawBody samples every screen cell under the body AABB against the exact shape
// Shapes too small to cover a cell centre are drawn at their origin cell
func (r *TerminalRenderer) drawBody(b Body, cols, rows int, unit vmath.Vec2) {
	x, y := b.Shape.ProjectAligned()
	c0, c1 := clampSpan(x.Near()/unit.X, x.Far()/unit.X, cols)
	r0, r1 := clampSpan(y.Near()/unit.Y, y.Far()/unit.Y, rows)

	fg := b.color().Tcell()
	glyph := b.glyph()
	drawn := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !physics.ContainsPoint(b.Shape, cellCentre(col, row, unit)) {
				continue
			}
			r.setGlyph(col, row, glyph, fg)
			drawn = true
		}
	}

	if !drawn {
		col := int(math.Floor(b.Shape.Origin.X / unit.X))
		row := int(math.Floor(b.Shape.Origin.Y / unit.Y))
		if col >= 0 && col < cols && row >= 0 && row < rows {
			r.setGlyph(col, row, glyph, fg)
		}
	}
}

// setGlyph keeps the cell background so the grid overlay shows through
func (r *TerminalRenderer) setGlyph(col, row int, glyph rune, fg tcell.Color) {
	_, _, style, _ := r.screen.GetContent(col, row)
	r.screen.SetContent(col, row, glyph, nil, style.Foreground(fg))
}

func (r *TerminalRenderer) drawStatus(text string, cols, row int) {
	style := tcell.StyleDefault.Foreground(RgbStatusBar.Tcell()).Background(RgbStatusBg.Tcell())
	runes := []rune(text)
	for col := range cols {
		ch := ' '
		if col < len(runes) {
			ch = runes[col]
		}
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

func cellCentre(col, row int, unit vmath.Vec2) vmath.Vec2 {
	return vmath.V2((float64(col)+0.5)*unit.X, (float64(row)+0.5)*unit.Y)
}

// clampSpan converts a continuous span in cell units to inclusive indices within [0, n)
func clampSpan(near, far float64, n int) (int, int) {
	if math.IsNaN(near) || math.IsNaN(far) || math.IsInf(near, 0) || math.IsInf(far, 0) {
		return 0, -1
	}
	return max(0, int(math.Floor(near))), min(n-1, int(math.Floor(far)))
}
