package core

import "math"

// Surface is a fixed-size 2D drawing region measured in world units.
// The game draws through it without knowing whether the pixels end up in a
// terminal, a browser canvas or a native window.
type Surface interface {
	// Size returns the viewport dimensions in world units.
	Size() (w, h float64)
	// Clear erases everything drawn so far.
	Clear()
	// FillCircle draws a filled circle centered at (cx, cy).
	FillCircle(cx, cy, r float64, c Color)
	// FillRect draws a filled rectangle with top-left corner (x, y).
	FillRect(x, y, w, h float64, c Color)
	// Text draws s with its baseline at y, like a canvas fillText.
	Text(x, y, size float64, s string, c Color)
}

// Glyphs used when projecting shapes onto the character grid.
const (
	FillGlyph   = '█'
	CircleGlyph = '●'
)

// Canvas projects a world-unit viewport onto a character Screen.
// World coordinates are scaled independently on each axis so the whole
// viewport always fits the terminal.
type Canvas struct {
	screen *Screen
	worldW float64
	worldH float64
}

// NewCanvas creates a Canvas drawing into screen.
func NewCanvas(screen *Screen, worldW, worldH float64) *Canvas {
	return &Canvas{screen: screen, worldW: worldW, worldH: worldH}
}

// Screen returns the underlying character buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Size returns the world viewport size.
func (c *Canvas) Size() (float64, float64) {
	return c.worldW, c.worldH
}

// Clear clears the underlying screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

func (c *Canvas) scale() (sx, sy float64) {
	return float64(c.screen.Width()) / c.worldW, float64(c.screen.Height()) / c.worldH
}

// span converts a world interval into a half-open cell interval.
// Non-empty intervals always cover at least one cell.
func span(start, length, scale float64) (int, int) {
	from := int(math.Round(start * scale))
	to := int(math.Round((start + length) * scale))
	if to == from && length > 0 {
		to = from + 1
	}
	return from, to
}

// FillRect fills every cell covered by the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	sx, sy := c.scale()
	x0, x1 := span(x, w, sx)
	y0, y1 := span(y, h, sy)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			c.screen.SetColored(cx, cy, FillGlyph, col)
		}
	}
}

// FillCircle fills the cells whose centers lie inside the circle.
// A circle smaller than a cell still marks the cell holding its center.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	sx, sy := c.scale()
	x0 := int(math.Floor((cx - r) * sx))
	x1 := int(math.Ceil((cx + r) * sx))
	y0 := int(math.Floor((cy - r) * sy))
	y1 := int(math.Ceil((cy + r) * sy))

	drawn := false
	for gy := y0; gy < y1; gy++ {
		for gx := x0; gx < x1; gx++ {
			wx := (float64(gx) + 0.5) / sx
			wy := (float64(gy) + 0.5) / sy
			dx, dy := wx-cx, wy-cy
			if dx*dx+dy*dy <= r*r {
				c.screen.SetColored(gx, gy, CircleGlyph, col)
				drawn = true
			}
		}
	}
	if !drawn {
		c.screen.SetColored(int(math.Floor(cx*sx)), int(math.Floor(cy*sy)), CircleGlyph, col)
	}
}

// Text writes s on the row that holds the top of the glyphs.
func (c *Canvas) Text(x, y, size float64, s string, col Color) {
	sx, sy := c.scale()
	row := Clamp(int((y-size)*sy), 0, max(c.screen.Height()-1, 0))
	col0 := int(math.Round(x * sx))
	c.screen.DrawTextColored(col0, row, s, col)
}

// OpKind identifies a recorded drawing primitive.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpCircle OpKind = "circle"
	OpRect   OpKind = "rect"
	OpText   OpKind = "text"
)

// DrawOp is one recorded drawing call.
type DrawOp struct {
	Kind  OpKind
	X, Y  float64
	W, H  float64 // Rect only
	R     float64 // Circle only
	Size  float64 // Text only
	Text  string
	Color Color
}

// DrawList is a Surface that records drawing calls so they can be sent to a
// remote canvas or replayed onto another Surface later.
type DrawList struct {
	w, h float64
	ops  []DrawOp
}

// NewDrawList creates an empty recording surface of the given size.
func NewDrawList(w, h float64) *DrawList {
	return &DrawList{w: w, h: h, ops: make([]DrawOp, 0, 16)}
}

// Size returns the viewport size.
func (d *DrawList) Size() (float64, float64) {
	return d.w, d.h
}

// Clear drops every recorded op and records a clear.
func (d *DrawList) Clear() {
	d.ops = append(d.ops[:0], DrawOp{Kind: OpClear})
}

// FillCircle records a filled circle.
func (d *DrawList) FillCircle(cx, cy, r float64, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpCircle, X: cx, Y: cy, R: r, Color: c})
}

// FillRect records a filled rectangle.
func (d *DrawList) FillRect(x, y, w, h float64, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpRect, X: x, Y: y, W: w, H: h, Color: c})
}

// Text records a text draw.
func (d *DrawList) Text(x, y, size float64, s string, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpText, X: x, Y: y, Size: size, Text: s, Color: c})
}

// Ops returns the recorded ops. The slice is reused by the next Clear.
func (d *DrawList) Ops() []DrawOp {
	return d.ops
}

// Replay issues every recorded op against dst in order.
func (d *DrawList) Replay(dst Surface) {
	for _, op := range d.ops {
		switch op.Kind {
		case OpClear:
			dst.Clear()
		case OpCircle:
			dst.FillCircle(op.X, op.Y, op.R, op.Color)
		case OpRect:
			dst.FillRect(op.X, op.Y, op.W, op.H, op.Color)
		case OpText:
			dst.Text(op.X, op.Y, op.Size, op.Text, op.Color)
		}
	}
}
