// Package colorpick is the color browser controller: three 2-bit channels, one of them
// selected for editing, and the display state derived from them.
package colorpick

import "image/color"

// Button is one of the three physical buttons the picker reacts to.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonSelect
	ButtonDown
)

func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonSelect:
		return "select"
	case ButtonDown:
		return "down"
	default:
		return "unknown"
	}
}

// ClickHandler runs to completion on a single button press.
type ClickHandler func()

// Host is the UI runtime the picker lives in.
//
// The picker only registers click handlers and asks for repaints; the host owns the event
// loop and calls PaintCanvas/PaintSelection from its rendering pipeline.
type Host interface {
	Subscribe(b Button, h ClickHandler)
	MarkDirty()
}

// Canvas is the drawing surface handed to the paint procedures.
type Canvas interface {
	FillRect(r Rect, c color.RGBA)
}

// SelectionColor is the fill of the selection indicator.
var SelectionColor = color.RGBA{A: 0xFF}

// DisplayState is everything the screen shows, derived from the channel values and selection.
type DisplayState struct {
	Fill      Color
	Label     string
	Indicator Rect
}

// Picker holds the channel values and the selected channel.
type Picker struct {
	host Host
	geom Geometry

	values   [channelCount]uint8
	selected Channel

	state DisplayState
}

// New creates a picker at black with red selected, registers its click handlers on host and
// performs the first redraw.
func New(host Host, geom Geometry) *Picker {
	p := &Picker{host: host, geom: geom}
	if host != nil {
		host.Subscribe(ButtonUp, p.IncrementChannel)
		host.Subscribe(ButtonDown, p.DecrementChannel)
		host.Subscribe(ButtonSelect, p.AdvanceSelection)
	}
	p.Redraw()
	return p
}

// IncrementChannel raises the selected channel by one, saturating at ChannelMax.
func (p *Picker) IncrementChannel() {
	if p.values[p.selected] < ChannelMax {
		p.values[p.selected]++
	}
	p.Redraw()
}

// DecrementChannel lowers the selected channel by one, saturating at zero.
func (p *Picker) DecrementChannel() {
	if p.values[p.selected] > 0 {
		p.values[p.selected]--
	}
	p.Redraw()
}

// AdvanceSelection moves to the next channel, wrapping from blue back to red.
func (p *Picker) AdvanceSelection() {
	p.selected = (p.selected + 1) % channelCount
	p.Redraw()
}

// Redraw recomputes the display state and asks the host for a repaint.
func (p *Picker) Redraw() {
	fill := NewColor(p.values[Red], p.values[Green], p.values[Blue])
	p.state = DisplayState{
		Fill:      fill,
		Label:     fill.Label(),
		Indicator: p.geom.Indicators[p.selected],
	}
	if p.host != nil {
		p.host.MarkDirty()
	}
}

// PaintCanvas fills bounds with the current color.
func (p *Picker) PaintCanvas(c Canvas, bounds Rect) {
	c.FillRect(bounds, p.state.Fill.RGBA())
}

// PaintSelection draws the indicator under the selected channel.
func (p *Picker) PaintSelection(c Canvas) {
	c.FillRect(p.state.Indicator, SelectionColor)
}

func (p *Picker) State() DisplayState { return p.state }
func (p *Picker) Selected() Channel   { return p.selected }
func (p *Picker) Geometry() Geometry  { return p.geom }

// Values returns the red, green and blue channel values.
func (p *Picker) Values() (r, g, b uint8) {
	return p.values[Red], p.values[Green], p.values[Blue]
}
