//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal host runner.
type TerminalConfig struct {
	Hz int
}

// RunTerminal runs the OS inside the terminal. The framebuffer is sized to the terminal at start,
// two pixel rows per text row, and drawn with upper half-block cells.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig, host HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return errors.New("terminal: zero size")
	}

	h, err := newHostHAL(cols, rows*2, host)
	if err != nil {
		return err
	}
	defer h.Close()
	step := newApp(h)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	r := newTermRenderer(screen, h.fb)
	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if code, ok := termKey(ev); ok {
					h.kbd.inject(KeyEvent{Code: code, Press: true})
					h.kbd.inject(KeyEvent{Code: code, Press: false})
				}
			case *tcell.EventResize:
				screen.Sync()
				r.invalidate()
			}
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
			}
			r.draw()
		}
	}
}

func termKey(ev *tcell.EventKey) (KeyCode, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return KeyUp, true
		case 'j':
			return KeyDown, true
		case ' ':
			return KeyEnter, true
		case 'q':
			return KeyEscape, true
		}
	}
	return KeyUnknown, false
}

type termRenderer struct {
	screen  tcell.Screen
	fb      *hostFramebuffer
	scratch []byte
	shown   int
}

func newTermRenderer(screen tcell.Screen, fb *hostFramebuffer) *termRenderer {
	return &termRenderer{
		screen:  screen,
		fb:      fb,
		scratch: make([]byte, len(fb.buf)),
	}
}

func (r *termRenderer) invalidate() { r.shown = -1 }

// draw repaints the terminal when a new frame has been presented. Nothing is drawn before the
// first Present.
func (r *termRenderer) draw() {
	n := r.fb.snapshotRGB565(r.scratch)
	if n == r.shown {
		return
	}
	r.shown = n

	stride := r.fb.stride
	for y := 0; y*2 < r.fb.height; y++ {
		for x := 0; x < r.fb.width; x++ {
			tr, tg, tb := pixelAt(r.scratch, stride, x, y*2)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb)))
			if y*2+1 < r.fb.height {
				br, bg, bb := pixelAt(r.scratch, stride, x, y*2+1)
				style = style.Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			}
			r.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	r.screen.Show()
}
