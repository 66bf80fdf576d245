package colorpick

import (
	"image/color"
	"testing"
)

type recordingHost struct {
	handlers map[Button]ClickHandler
	subs     int
	dirty    int
}

func newRecordingHost() *recordingHost {
	return &recordingHost{handlers: make(map[Button]ClickHandler)}
}

func (h *recordingHost) Subscribe(b Button, fn ClickHandler) {
	h.subs++
	h.handlers[b] = fn
}

func (h *recordingHost) MarkDirty() { h.dirty++ }

func (h *recordingHost) click(t *testing.T, b Button) {
	t.Helper()
	fn := h.handlers[b]
	if fn == nil {
		t.Fatalf("no handler for %s", b)
	}
	fn()
}

type fill struct {
	r Rect
	c color.RGBA
}

type recordingCanvas struct {
	fills []fill
}

func (c *recordingCanvas) FillRect(r Rect, col color.RGBA) {
	c.fills = append(c.fills, fill{r: r, c: col})
}

func newPicker(t *testing.T) (*Picker, *recordingHost) {
	t.Helper()
	h := newRecordingHost()
	p := New(h, watchGeometry(watchWidth))
	return p, h
}

func TestNewRegistersHandlersAndDraws(t *testing.T) {
	p, h := newPicker(t)

	if h.subs != 3 {
		t.Fatalf("expected 3 subscriptions, got %d", h.subs)
	}
	for _, b := range []Button{ButtonUp, ButtonDown, ButtonSelect} {
		if h.handlers[b] == nil {
			t.Fatalf("expected handler for %s", b)
		}
	}
	if h.dirty != 1 {
		t.Fatalf("expected initial repaint request, got %d", h.dirty)
	}

	st := p.State()
	if st.Label != "0b11000000" {
		t.Fatalf("expected black label, got %q", st.Label)
	}
	if st.Indicator != (Rect{X: 62, Y: 20, W: 18, H: 4}) {
		t.Fatalf("expected red indicator frame, got %+v", st.Indicator)
	}
	if p.Selected() != Red {
		t.Fatalf("expected red selected, got %s", p.Selected())
	}
}

func TestIncrementSaturates(t *testing.T) {
	for _, ch := range []Channel{Red, Green, Blue} {
		p, _ := newPicker(t)
		for p.Selected() != ch {
			p.AdvanceSelection()
		}
		for i := 0; i < 10; i++ {
			p.IncrementChannel()
			v := channelValue(p, ch)
			if v > ChannelMax {
				t.Fatalf("%s: value %d exceeds %d", ch, v, ChannelMax)
			}
			want := uint8(i + 1)
			if want > ChannelMax {
				want = ChannelMax
			}
			if v != want {
				t.Fatalf("%s: expected %d after %d increments, got %d", ch, want, i+1, v)
			}
		}
	}
}

func TestDecrementSaturates(t *testing.T) {
	p, _ := newPicker(t)
	for i := 0; i < 10; i++ {
		p.DecrementChannel()
		if r, _, _ := p.Values(); r != 0 {
			t.Fatalf("expected red to stay 0, got %d", r)
		}
	}

	p.IncrementChannel()
	p.IncrementChannel()
	for i := 0; i < 5; i++ {
		p.DecrementChannel()
	}
	if r, _, _ := p.Values(); r != 0 {
		t.Fatalf("expected red back at 0, got %d", r)
	}
}

func TestRandomSequencesStayInRange(t *testing.T) {
	p, h := newPicker(t)
	buttons := []Button{ButtonUp, ButtonDown, ButtonSelect}

	seed := uint32(0x9E3779B9)
	for i := 0; i < 2000; i++ {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		h.click(t, buttons[seed%3])

		r, g, b := p.Values()
		if r > ChannelMax || g > ChannelMax || b > ChannelMax {
			t.Fatalf("step %d: values out of range: %d %d %d", i, r, g, b)
		}
		if p.Selected() > Blue {
			t.Fatalf("step %d: selection out of range: %d", i, p.Selected())
		}
		if want := NewColor(r, g, b).Label(); p.State().Label != want {
			t.Fatalf("step %d: stale label %q, want %q", i, p.State().Label, want)
		}
		if want := p.Geometry().Indicators[p.Selected()]; p.State().Indicator != want {
			t.Fatalf("step %d: stale indicator %+v, want %+v", i, p.State().Indicator, want)
		}
	}
}

func TestAdvanceSelectionWraps(t *testing.T) {
	p, _ := newPicker(t)
	want := []Channel{Green, Blue, Red}
	for i, ch := range want {
		p.AdvanceSelection()
		if p.Selected() != ch {
			t.Fatalf("advance %d: expected %s, got %s", i+1, ch, p.Selected())
		}
	}
}

func TestScenarioRedTwoGreenClamped(t *testing.T) {
	p, h := newPicker(t)

	h.click(t, ButtonUp)
	h.click(t, ButtonUp)
	if r, _, _ := p.Values(); r != 2 {
		t.Fatalf("expected red=2, got %d", r)
	}

	h.click(t, ButtonSelect)
	if p.Selected() != Green {
		t.Fatalf("expected green selected, got %s", p.Selected())
	}

	h.click(t, ButtonUp)
	h.click(t, ButtonUp)
	h.click(t, ButtonUp)
	if _, g, _ := p.Values(); g != 3 {
		t.Fatalf("expected green=3, got %d", g)
	}

	h.click(t, ButtonUp)
	if _, g, _ := p.Values(); g != 3 {
		t.Fatalf("expected green clamped at 3, got %d", g)
	}

	if got := p.State().Label; got != "0b11101100" {
		t.Fatalf("expected label 0b11101100, got %q", got)
	}
	if got := p.State().Indicator; got != (Rect{X: 80, Y: 20, W: 18, H: 4}) {
		t.Fatalf("expected green indicator frame, got %+v", got)
	}
}

func TestDecrementBlueAtZeroIsNoop(t *testing.T) {
	p, h := newPicker(t)
	p.AdvanceSelection()
	p.AdvanceSelection()
	if p.Selected() != Blue {
		t.Fatalf("expected blue selected, got %s", p.Selected())
	}

	before := p.State()
	h.click(t, ButtonDown)
	if _, _, b := p.Values(); b != 0 {
		t.Fatalf("expected blue=0, got %d", b)
	}
	if p.State() != before {
		t.Fatalf("expected unchanged state, got %+v want %+v", p.State(), before)
	}
}

func TestEveryPressRequestsOneRepaint(t *testing.T) {
	p, h := newPicker(t)
	start := h.dirty

	p.IncrementChannel()
	p.DecrementChannel()
	p.DecrementChannel()
	p.AdvanceSelection()

	if got := h.dirty - start; got != 4 {
		t.Fatalf("expected 4 repaint requests, got %d", got)
	}
}

func TestRedrawIdempotent(t *testing.T) {
	p, h := newPicker(t)
	h.click(t, ButtonUp)
	h.click(t, ButtonSelect)

	bounds := Rect{W: watchWidth, H: 168}

	p.Redraw()
	first := p.State()
	c1 := &recordingCanvas{}
	p.PaintCanvas(c1, bounds)
	p.PaintSelection(c1)

	p.Redraw()
	second := p.State()
	c2 := &recordingCanvas{}
	p.PaintCanvas(c2, bounds)
	p.PaintSelection(c2)

	if first != second {
		t.Fatalf("expected identical state, got %+v then %+v", first, second)
	}
	if len(c1.fills) != len(c2.fills) {
		t.Fatalf("expected same fill count, got %d and %d", len(c1.fills), len(c2.fills))
	}
	for i := range c1.fills {
		if c1.fills[i] != c2.fills[i] {
			t.Fatalf("fill %d differs: %+v vs %+v", i, c1.fills[i], c2.fills[i])
		}
	}
}

func TestPaintProcedures(t *testing.T) {
	p, h := newPicker(t)
	h.click(t, ButtonUp)
	h.click(t, ButtonUp)
	h.click(t, ButtonUp)

	c := &recordingCanvas{}
	bounds := Rect{W: 144, H: 168}
	p.PaintCanvas(c, bounds)
	p.PaintSelection(c)

	if len(c.fills) != 2 {
		t.Fatalf("expected 2 fills, got %d", len(c.fills))
	}
	if c.fills[0].r != bounds {
		t.Fatalf("expected canvas to cover %+v, got %+v", bounds, c.fills[0].r)
	}
	if want := (color.RGBA{R: 0xFF, A: 0xFF}); c.fills[0].c != want {
		t.Fatalf("expected %+v, got %+v", want, c.fills[0].c)
	}
	if c.fills[1].r != p.State().Indicator || c.fills[1].c != SelectionColor {
		t.Fatalf("unexpected selection fill %+v", c.fills[1])
	}
}

func TestNilHost(t *testing.T) {
	p := New(nil, watchGeometry(watchWidth))
	p.IncrementChannel()
	if r, _, _ := p.Values(); r != 1 {
		t.Fatalf("expected red=1, got %d", r)
	}
}

func channelValue(p *Picker, ch Channel) uint8 {
	r, g, b := p.Values()
	switch ch {
	case Red:
		return r
	case Green:
		return g
	default:
		return b
	}
}
