package hal

import (
	"fmt"
	"sync"
	"time"
)

// ButtonBinding maps an active-low push button to the key it reports.
type ButtonBinding struct {
	Pin  GPIOPin
	Code KeyCode
}

type buttonState struct {
	ButtonBinding

	pressed   bool
	candidate bool
	seen      int
}

// debounceSamples is how many equal consecutive samples make a level stable.
const debounceSamples = 2

// ButtonKeyboard turns polled GPIO push buttons into key events.
//
// Buttons are wired to ground with the internal pull-up enabled, so a low level means pressed.
type ButtonKeyboard struct {
	ch      chan KeyEvent
	buttons []buttonState
	poll    time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewButtonKeyboard configures every pin as a pulled-up input.
func NewButtonKeyboard(poll time.Duration, bindings ...ButtonBinding) (*ButtonKeyboard, error) {
	if poll <= 0 {
		poll = 10 * time.Millisecond
	}
	k := &ButtonKeyboard{
		ch:   make(chan KeyEvent, 16),
		poll: poll,
		stop: make(chan struct{}),
	}
	for _, b := range bindings {
		if b.Pin == nil {
			return nil, fmt.Errorf("buttons: %s: no pin", b.Code)
		}
		if err := b.Pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
			return nil, fmt.Errorf("buttons: %s: %w", b.Code, err)
		}
		k.buttons = append(k.buttons, buttonState{ButtonBinding: b})
	}
	return k, nil
}

func (k *ButtonKeyboard) Events() <-chan KeyEvent { return k.ch }

// Start polls the buttons until Close.
func (k *ButtonKeyboard) Start() {
	go func() {
		t := time.NewTicker(k.poll)
		defer t.Stop()
		for {
			select {
			case <-k.stop:
				return
			case <-t.C:
				k.sample()
			}
		}
	}()
}

func (k *ButtonKeyboard) Close() {
	k.stopOnce.Do(func() { close(k.stop) })
}

func (k *ButtonKeyboard) sample() {
	for i := range k.buttons {
		b := &k.buttons[i]
		level, err := b.Pin.Read()
		if err != nil {
			continue
		}
		down := !level
		if down != b.candidate {
			b.candidate = down
			b.seen = 1
			continue
		}
		if b.seen < debounceSamples {
			b.seen++
		}
		if b.seen < debounceSamples || b.pressed == down {
			continue
		}
		b.pressed = down
		select {
		case k.ch <- KeyEvent{Code: b.Code, Press: down}:
		default:
		}
	}
}
