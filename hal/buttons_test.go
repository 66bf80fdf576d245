package hal

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakePin struct {
	mu    sync.Mutex
	name  string
	mode  GPIOMode
	pull  GPIOPull
	level bool
	err   error
}

func newFakePin(name string) *fakePin {
	return &fakePin{name: name, level: true}
}

func (p *fakePin) Name() string { return p.name }

func (p *fakePin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.mode = mode
	p.pull = pull
	return nil
}

func (p *fakePin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *fakePin) Write(level bool) error {
	return errors.New("input only")
}

func (p *fakePin) drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

func expectNoEvent(t *testing.T, k *ButtonKeyboard) {
	t.Helper()
	select {
	case ev := <-k.Events():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func expectEvent(t *testing.T, k *ButtonKeyboard, want KeyEvent) {
	t.Helper()
	select {
	case ev := <-k.Events():
		if ev != want {
			t.Fatalf("expected %+v, got %+v", want, ev)
		}
	default:
		t.Fatalf("expected %+v, got nothing", want)
	}
}

func TestButtonKeyboardConfiguresPullUps(t *testing.T) {
	up := newFakePin("up")
	if _, err := NewButtonKeyboard(0, ButtonBinding{Pin: up, Code: KeyUp}); err != nil {
		t.Fatalf("NewButtonKeyboard: %v", err)
	}
	if up.mode != GPIOModeInput || up.pull != GPIOPullUp {
		t.Fatalf("expected pulled-up input, got mode=%d pull=%d", up.mode, up.pull)
	}

	bad := newFakePin("bad")
	bad.err = errors.New("no such pin")
	if _, err := NewButtonKeyboard(0, ButtonBinding{Pin: bad, Code: KeyDown}); err == nil {
		t.Fatal("expected configure error")
	}
	if _, err := NewButtonKeyboard(0, ButtonBinding{Code: KeyDown}); err == nil {
		t.Fatal("expected error for missing pin")
	}
}

func TestButtonKeyboardDebounces(t *testing.T) {
	up := newFakePin("up")
	sel := newFakePin("select")
	k, err := NewButtonKeyboard(time.Millisecond,
		ButtonBinding{Pin: up, Code: KeyUp},
		ButtonBinding{Pin: sel, Code: KeyEnter},
	)
	if err != nil {
		t.Fatalf("NewButtonKeyboard: %v", err)
	}

	k.sample()
	k.sample()
	expectNoEvent(t, k)

	// A single low sample is a bounce.
	up.drive(false)
	k.sample()
	up.drive(true)
	k.sample()
	k.sample()
	expectNoEvent(t, k)

	up.drive(false)
	k.sample()
	expectNoEvent(t, k)
	k.sample()
	expectEvent(t, k, KeyEvent{Code: KeyUp, Press: true})

	k.sample()
	k.sample()
	expectNoEvent(t, k)

	up.drive(true)
	k.sample()
	k.sample()
	expectEvent(t, k, KeyEvent{Code: KeyUp, Press: false})

	sel.drive(false)
	k.sample()
	k.sample()
	expectEvent(t, k, KeyEvent{Code: KeyEnter, Press: true})
}

func TestButtonKeyboardPolls(t *testing.T) {
	down := newFakePin("down")
	k, err := NewButtonKeyboard(time.Millisecond, ButtonBinding{Pin: down, Code: KeyDown})
	if err != nil {
		t.Fatalf("NewButtonKeyboard: %v", err)
	}
	k.Start()
	defer k.Close()

	down.drive(false)
	select {
	case ev := <-k.Events():
		if ev.Code != KeyDown || !ev.Press {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for button press")
	}
	k.Close()
}
