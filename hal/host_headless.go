//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Script is a key script (see ParseKeyScript) played back one key per tick.
	Script string
}

// RunHeadless runs the OS without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, host HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	script, err := ParseKeyScript(cfg.Script)
	if err != nil {
		return err
	}

	h, err := newHostHAL(hostDisplayWidth, hostDisplayHeight, host)
	if err != nil {
		return err
	}
	defer h.Close()
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if len(script) > 0 {
				if code := script[0]; code != KeyUnknown {
					h.kbd.inject(KeyEvent{Code: code, Press: true})
					h.kbd.inject(KeyEvent{Code: code, Press: false})
				}
				script = script[1:]
			}
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
