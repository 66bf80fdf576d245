package colorpick

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Geometry places the label layer and one selection indicator per channel.
type Geometry struct {
	Label      Rect
	Indicators [channelCount]Rect
}

const (
	watchWidth = 144

	indicatorX0 = 62
	indicatorY  = 20
	indicatorW  = 18
	indicatorH  = 4
)

// watchGeometry returns the fixed 144-pixel watch layout, shifted to stay centred on wider
// screens. Framebuffer tasks derive a font-aligned Geometry instead; tests pin the picker's
// indicator placement against this one.
func watchGeometry(width int) Geometry {
	dx := 0
	if width > watchWidth {
		dx = (width - watchWidth) / 2
	}

	g := Geometry{Label: Rect{X: 0, Y: -6, W: width, H: 30}}
	for i := range g.Indicators {
		g.Indicators[i] = Rect{
			X: dx + indicatorX0 + i*indicatorW,
			Y: indicatorY,
			W: indicatorW,
			H: indicatorH,
		}
	}
	return g
}
