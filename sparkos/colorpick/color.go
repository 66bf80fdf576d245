package colorpick

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ChannelMax is the largest value a 2-bit channel can hold.
const ChannelMax = 3

// Channel identifies one of the editable color channels.
type Channel uint8

const (
	Red Channel = iota
	Green
	Blue
)

const channelCount = 3

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Color is a packed ARGB2222 value laid out as aarrggbb.
type Color uint8

// NewColor packs three 2-bit channels with an opaque alpha.
func NewColor(r, g, b uint8) Color {
	return Color(ChannelMax<<6 | (r&ChannelMax)<<4 | (g&ChannelMax)<<2 | b&ChannelMax)
}

func (c Color) A() uint8 { return uint8(c>>6) & ChannelMax }
func (c Color) R() uint8 { return uint8(c>>4) & ChannelMax }
func (c Color) G() uint8 { return uint8(c>>2) & ChannelMax }
func (c Color) B() uint8 { return uint8(c) & ChannelMax }

// RGBA expands every 2-bit channel to 8 bits (0x00, 0x55, 0xAA, 0xFF).
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: expand(c.R()), G: expand(c.G()), B: expand(c.B()), A: expand(c.A())}
}

// Label is the binary form shown on screen: "0b" followed by the eight bits of the packed value.
func (c Color) Label() string {
	return fmt.Sprintf("0b%08b", uint8(c))
}

// Hex returns the expanded color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R()) / ChannelMax,
		G: float64(c.G()) / ChannelMax,
		B: float64(c.B()) / ChannelMax,
	}.Hex()
}

func expand(v uint8) uint8 {
	return v * 0x55
}
