// Package colorbrowser runs the color picker as a kernel task on a framebuffer and keyboard.
package colorbrowser

import (
	"fmt"

	"colorbrowser/hal"
	"colorbrowser/sparkos/client/logger"
	"colorbrowser/sparkos/colorpick"
	"colorbrowser/sparkos/kernel"
	"colorbrowser/sparkos/proto"
)

// Retry budgets, in kernel ticks, for messages sent on the way out.
const (
	exitLogRetries     = 8
	exitPublishRetries = 16
)

type Task struct {
	disp hal.Display
	in   hal.Input

	logCap kernel.Capability
	pubCap kernel.Capability

	fb   hal.Framebuffer
	font fontSpec
	text textLayout

	picker   *colorpick.Picker
	handlers [3]colorpick.ClickHandler
	dirty    bool

	// pending is the newest color state the publish queue had no room for.
	pending    proto.ColorState
	hasPending bool

	done chan struct{}
}

// New creates the task. pubCap may be the zero capability when nothing follows the color.
func New(disp hal.Display, in hal.Input, logCap, pubCap kernel.Capability) *Task {
	return &Task{
		disp:   disp,
		in:     in,
		logCap: logCap,
		pubCap: pubCap,
		done:   make(chan struct{}),
	}
}

// Done is closed once Run returns.
func (t *Task) Done() <-chan struct{} { return t.done }

// Subscribe stores the click handler for b. A later call replaces the earlier one.
func (t *Task) Subscribe(b colorpick.Button, h colorpick.ClickHandler) {
	if int(b) >= len(t.handlers) {
		return
	}
	t.handlers[b] = h
}

func (t *Task) MarkDirty() { t.dirty = true }

func (t *Task) Run(ctx *kernel.Context) {
	defer close(t.done)

	if t.disp == nil || t.in == nil {
		return
	}
	kbd := t.in.Keyboard()
	if kbd == nil {
		return
	}
	events := kbd.Events()
	if events == nil {
		return
	}
	if !t.load() {
		logger.Log(ctx, t.logCap, "colorbrowser: no usable framebuffer")
		return
	}
	t.flush(ctx)

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 1)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case <-tickCh:
			if t.hasPending {
				t.sendPending(ctx, 0)
			}

		case ev, ok := <-events:
			if !ok {
				t.unload()
				return
			}
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyUp:
				t.click(colorpick.ButtonUp)
			case hal.KeyDown:
				t.click(colorpick.ButtonDown)
			case hal.KeyEnter, hal.KeyRight:
				t.click(colorpick.ButtonSelect)
			case hal.KeyEscape, hal.KeyBackspace:
				t.exit(ctx)
				return
			default:
				continue
			}
			t.flush(ctx)
		}
	}
}

// exit unloads the window and gives the last color and the exit line a few ticks to get
// through full queues.
func (t *Task) exit(ctx *kernel.Context) {
	t.unload()
	if t.hasPending {
		t.sendPending(ctx, exitPublishRetries)
	}
	logger.LogRetry(ctx, t.logCap, "colorbrowser: exit", exitLogRetries)
}

// load resolves the framebuffer, lays the label out for its width and creates the picker.
func (t *Task) load() bool {
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 || t.fb.Buffer() == nil {
		return false
	}
	w := t.fb.Width()
	if w <= 0 || t.fb.Height() <= 0 {
		return false
	}

	t.font = fontFor(w)
	geom, text := layout(t.font, w)
	t.text = text
	t.picker = colorpick.New(t, geom)
	return true
}

func (t *Task) unload() {
	t.picker = nil
	t.handlers = [3]colorpick.ClickHandler{}
	t.dirty = false
	if t.fb != nil {
		t.fb.ClearRGB(0, 0, 0)
		_ = t.fb.Present()
	}
}

func (t *Task) click(b colorpick.Button) {
	if h := t.handlers[b]; h != nil {
		h()
	}
}

// flush repaints when a handler asked for it and reports the new color.
func (t *Task) flush(ctx *kernel.Context) {
	if !t.dirty || t.picker == nil {
		return
	}
	t.dirty = false
	t.render()
	t.report(ctx)
}

func (t *Task) report(ctx *kernel.Context) {
	st := t.picker.State()
	sel := t.picker.Selected()
	logger.Log(ctx, t.logCap, fmt.Sprintf("colorbrowser: %s %s sel=%s", st.Label, st.Fill.Hex(), sel))

	if !t.pubCap.Valid() {
		return
	}
	r, g, b := t.picker.Values()
	t.pending = proto.ColorState{R: r, G: g, B: b, Selected: uint8(sel)}
	t.hasPending = true
	t.sendPending(ctx, 0)
}

// sendPending offers the newest color state to the publish queue. A full queue keeps it
// pending for the next tick; other failures drop it.
func (t *Task) sendPending(ctx *kernel.Context, retries int) {
	payload := proto.ColorStatePayload(t.pending)
	res := ctx.SendToCapRetry(t.pubCap, uint16(proto.MsgColorState), payload, kernel.Capability{}, retries)
	switch res {
	case kernel.SendOK:
		t.hasPending = false
	case kernel.SendErrQueueFull:
		if retries > 0 {
			t.hasPending = false
			logger.Log(ctx, t.logCap, "colorbrowser: publish: "+res.String())
		}
	default:
		t.hasPending = false
		logger.Log(ctx, t.logCap, "colorbrowser: publish: "+res.String())
	}
}
