//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Host display size in pixels.
const (
	hostDisplayWidth  = 320
	hostDisplayHeight = 320
)

// HostConfig selects the optional devices of a host run.
type HostConfig struct {
	// Log receives log lines. Defaults to stdout.
	Log io.Writer
	// Buttons attaches GPIO push buttons (BCM numbering) when set.
	Buttons *ButtonPins
}

// ButtonPins are the BCM pin numbers of the three push buttons.
type ButtonPins struct {
	Up     int
	Select int
	Down   int
	Poll   time.Duration
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime

	closers []func()
}

func newHostHAL(width, height int, cfg HostConfig) (*hostHAL, error) {
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	h := &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(width, height),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
	if cfg.Buttons != nil {
		if err := h.attachButtons(*cfg.Buttons); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *hostHAL) attachButtons(pins ButtonPins) error {
	up, sel, down, closePins, err := openButtonPins(pins)
	if err != nil {
		return err
	}
	bk, err := NewButtonKeyboard(pins.Poll,
		ButtonBinding{Pin: up, Code: KeyUp},
		ButtonBinding{Pin: sel, Code: KeyEnter},
		ButtonBinding{Pin: down, Code: KeyDown},
	)
	if err != nil {
		closePins()
		return err
	}
	bk.Start()
	go func() {
		for {
			select {
			case <-bk.stop:
				return
			case ev := <-bk.Events():
				h.kbd.inject(ev)
			}
		}
	}()
	h.closers = append(h.closers, closePins, bk.Close)
	h.logger.WriteLineString(fmt.Sprintf("hal: buttons up=%s select=%s down=%s", up.Name(), sel.Name(), down.Name()))
	return nil
}

// Close releases attached devices in reverse order.
func (h *hostHAL) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		h.closers[i]()
	}
	h.closers = nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
