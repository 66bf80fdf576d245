package colorbrowser

import (
	"image/color"

	"colorbrowser/hal"
	"colorbrowser/sparkos/colorpick"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var (
	labelBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	labelForeground = color.RGBA{A: 0xFF}
)

// fontSpec holds the metrics the label layout needs. Labels only use digits and 'b', so
// descenders are ignored.
type fontSpec struct {
	font   tinyfont.Fonter
	ascent int
	pad    int
	mark   int
}

// largeFontMinWidth is the narrowest framebuffer that gets the 12pt font.
const largeFontMinWidth = 200

func fontFor(width int) fontSpec {
	if width >= largeFontMinWidth {
		return fontSpec{font: &freemono.Regular12pt7b, ascent: 15, pad: 4, mark: 4}
	}
	return fontSpec{font: &tinyfont.TomThumb, ascent: 5, pad: 2, mark: 2}
}

// textLayout is where the label text goes inside the label band.
type textLayout struct {
	x        int
	baseline int
}

// labelTemplate has the width of every label: monospaced digits make the layout
// independent of the color.
const labelTemplate = "0b11000000"

// layout centres the label and puts each channel's indicator under its two digits.
func layout(fs fontSpec, width int) (colorpick.Geometry, textLayout) {
	_, total := tinyfont.LineWidth(fs.font, labelTemplate)
	x0 := (width - int(total)) / 2
	if x0 < 0 {
		x0 = 0
	}
	baseline := fs.pad + fs.ascent
	markY := baseline + 2

	g := colorpick.Geometry{
		Label: colorpick.Rect{X: 0, Y: 0, W: width, H: markY + fs.mark + fs.pad},
	}
	for i := range g.Indicators {
		first := 4 + 2*i
		_, start := tinyfont.LineWidth(fs.font, labelTemplate[:first])
		_, end := tinyfont.LineWidth(fs.font, labelTemplate[:first+2])
		g.Indicators[i] = colorpick.Rect{
			X: x0 + int(start),
			Y: markY,
			W: int(end) - int(start),
			H: fs.mark,
		}
	}
	return g, textLayout{x: x0, baseline: baseline}
}

// render runs the pipeline: swatch, label layer, selection indicator, present.
func (t *Task) render() {
	if t.picker == nil || t.fb == nil {
		return
	}
	d := &fbDisplayer{fb: t.fb}
	bounds := colorpick.Rect{W: t.fb.Width(), H: t.fb.Height()}

	t.picker.PaintCanvas(d, bounds)

	st := t.picker.State()
	d.FillRect(t.picker.Geometry().Label, labelBackground)
	tinyfont.WriteLine(d, t.font.font, int16(t.text.x), int16(t.text.baseline), st.Label, labelForeground)

	t.picker.PaintSelection(d)
	_ = t.fb.Present()
}

// fbDisplayer draws into an RGB565 framebuffer for tinyfont and the picker paint procedures.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var (
	_ drivers.Displayer = (*fbDisplayer)(nil)
	_ colorpick.Canvas  = (*fbDisplayer)(nil)
)

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

func (d *fbDisplayer) Display() error { return nil }

func (d *fbDisplayer) FillRect(r colorpick.Rect, c color.RGBA) {
	_ = d.FillRectangle(int16(r.X), int16(r.Y), int16(r.W), int16(r.H), c)
}

func (d *fbDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
