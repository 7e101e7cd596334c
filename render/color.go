package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, shared by the terminal and image renderers
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RgbBackground = RGB{26, 27, 38}    // Tokyo Night background
	RgbGridLow    = RGB{40, 44, 70}    // Cell holding one entity
	RgbGridHigh   = RGB{90, 60, 110}   // Cell holding several entities
	RgbGridLine   = RGB{48, 50, 66}    // Snapshot cell borders
	RgbEllipse    = RGB{100, 150, 255} // Normal Blue
	RgbRectangle  = RGB{0, 200, 0}     // Normal Green
	RgbTriangle   = RGB{255, 165, 0}   // Orange
	RgbFlash      = RGB{255, 80, 80}   // Contact highlight
	RgbStatusBar  = RGB{255, 255, 255} // White
	RgbStatusBg   = RGB{60, 60, 80}
	RgbLabel      = RGB{200, 200, 200}
)

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Tcell converts to a terminal color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// RGBA converts to an opaque image color
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// cellShade returns the grid overlay color for a cell holding n entities
func cellShade(n int) RGB {
	if n <= 0 {
		return RgbBackground
	}
	return Lerp(RgbGridLow, RgbGridHigh, float64(n-1)/3)
}
