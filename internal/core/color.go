package core

import (
	"fmt"
	"image/color"
)

// Color represents a foreground color for a drawn shape or screen cell.
// Terminal hosts map it to ANSI codes, canvas hosts to RGB.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

var palette = map[Color]color.RGBA{
	ColorDefault:      {0x00, 0x00, 0x00, 0xff},
	ColorRed:          {0xcc, 0x00, 0x00, 0xff},
	ColorGreen:        {0x00, 0xaa, 0x00, 0xff},
	ColorYellow:       {0xff, 0xff, 0x00, 0xff},
	ColorBlue:         {0x33, 0x66, 0xcc, 0xff},
	ColorWhite:        {0xff, 0xff, 0xff, 0xff},
	ColorBrightGreen:  {0x33, 0xdd, 0x33, 0xff},
	ColorBrightYellow: {0xff, 0xff, 0x66, 0xff},
	ColorGray:         {0x88, 0x88, 0x88, 0xff},
}

// ToRGBA returns the canvas color for c. Unknown colors render black.
func (c Color) ToRGBA() color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[ColorDefault]
}

// Hex returns the color as a CSS hex string, e.g. "#00aa00".
func (c Color) Hex() string {
	rgba := c.ToRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
