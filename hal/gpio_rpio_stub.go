//go:build !tinygo && !linux

package hal

import "errors"

func openButtonPins(cfg ButtonPins) (up, sel, down GPIOPin, closeFn func(), err error) {
	_ = cfg
	return nil, nil, nil, nil, errors.New("gpio buttons require linux")
}
