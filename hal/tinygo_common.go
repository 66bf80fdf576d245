//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct {
	kbd Keyboard
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin adapts an MCU pin to GPIOPin.
type machinePin struct {
	pin machine.Pin
}

func (p machinePin) Name() string { return fmt.Sprintf("GP%d", int(p.pin)) }

func (p machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode == GPIOModeOutput {
		p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		return nil
	}
	switch pull {
	case GPIOPullUp:
		p.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	case GPIOPullDown:
		p.pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	default:
		p.pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}

func (p machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p machinePin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}

type stubKeyboard struct{}

func (k *stubKeyboard) Events() <-chan KeyEvent { return nil }
