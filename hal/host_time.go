//go:build !tinygo

package hal

import "time"

// hostTickDur is the length of one kernel tick on host builds.
const hostTickDur = time.Millisecond

// hostTime converts wall-clock time between frames into kernel ticks.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / hostTickDur)
	if ticks == 0 {
		return
	}
	t.acc %= hostTickDur
	t.stepN(ticks)
}

// stepN publishes only the latest sequence number; consumers jump straight to it.
func (t *hostTime) stepN(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}
