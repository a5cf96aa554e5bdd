package canvas

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Background is the sky color behind the playfield.
var Background = color.RGBA{0x70, 0xc5, 0xce, 0xff}

// textScale shrinks requested text sizes; PressStart2P glyphs are much wider
// than the sans-serif sizes the game lays out for.
const textScale = 0.7

// loadFace parses the embedded arcade font.
func loadFace() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
}

// imageSurface draws onto an ebiten image in world units.
type imageSurface struct {
	img  *ebiten.Image
	face *text.GoTextFaceSource
}

func (s imageSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s imageSurface) Clear() {
	s.img.Fill(Background)
}

func (s imageSurface) FillCircle(cx, cy, r float64, c core.Color) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c.ToRGBA(), true)
}

func (s imageSurface) FillRect(x, y, w, h float64, c core.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c.ToRGBA(), false)
}

// Text draws s with its baseline at y.
func (s imageSurface) Text(x, y, size float64, str string, c core.Color) {
	size *= textScale
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-size)
	op.ColorScale.ScaleWithColor(c.ToRGBA())
	text.Draw(s.img, str, &text.GoTextFace{
		Source: s.face,
		Size:   size,
	}, op)
}
