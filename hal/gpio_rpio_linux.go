//go:build !tinygo && linux

package hal

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpioPin is a BCM-numbered Raspberry Pi pin driven through /dev/gpiomem.
type rpioPin struct {
	pin rpio.Pin
}

func (p rpioPin) Name() string { return fmt.Sprintf("BCM%d", int(p.pin)) }

func (p rpioPin) Configure(mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		p.pin.Input()
	case GPIOModeOutput:
		p.pin.Output()
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.Name())
	}

	switch pull {
	case GPIOPullNone:
		p.pin.PullOff()
	case GPIOPullUp:
		p.pin.PullUp()
	case GPIOPullDown:
		p.pin.PullDown()
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.Name())
	}
	return nil
}

func (p rpioPin) Read() (bool, error) {
	return p.pin.Read() == rpio.High, nil
}

func (p rpioPin) Write(level bool) error {
	if level {
		p.pin.High()
	} else {
		p.pin.Low()
	}
	return nil
}

func openButtonPins(cfg ButtonPins) (up, sel, down GPIOPin, closeFn func(), err error) {
	if err := rpio.Open(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("gpio: open: %w", err)
	}
	closeFn = func() { _ = rpio.Close() }
	return rpioPin{pin: rpio.Pin(cfg.Up)}, rpioPin{pin: rpio.Pin(cfg.Select)}, rpioPin{pin: rpio.Pin(cfg.Down)}, closeFn, nil
}
