// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termview

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotImplemented is returned for GPIO features the emulated latch line
// does not have.
var ErrNotImplemented = errors.New("termview: not implemented")

// Pin is the emulated chain latch line.
type Pin struct {
	dev  *Dev
	name string
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the GPIO pin.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the number of the GPIO pin.
func (pin *Pin) Number() int {
	return 0
}

// Deprecated: returns "Out"
func (pin *Pin) Function() string {
	return "Out"
}

// Out drives the latch line. A high level latches the shifted bytes and
// repaints the console.
func (pin *Pin) Out(l gpio.Level) error {
	return pin.dev.latch(bool(l))
}

// Not implemented.
func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *Pin) String() string {
	return pin.name
}

var _ gpio.PinOut = (*Pin)(nil)
