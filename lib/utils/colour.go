package utils

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourRe = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// Colour is a normalised RGBA colour as GL wants it.
type Colour struct {
	R, G, B, A float32
}

func (c Colour) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A))
}

func ColourValidate(c string) bool {
	return colourRe.MatchString(c)
}

// ColourParse reads a #RRGGBBAA hex string. Invalid input gives
// transparent black.
func ColourParse(s string) (c Colour) {
	if !ColourValidate(s) {
		return
	}
	var r, g, b, a uint8
	fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	return Colour{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func toByte(f float32) uint8 {
	f = mgl32.Clamp(f, 0, 1)
	return uint8(f*255 + 0.5)
}
