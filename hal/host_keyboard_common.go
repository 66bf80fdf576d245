//go:build !tinygo

package hal

// inject queues ev as if it came from the device; it drops when the queue is full.
func (k *hostKeyboard) inject(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}
