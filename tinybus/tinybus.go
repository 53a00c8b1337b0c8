// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinybus exposes a TinyGo I²C bus as a periph i2c.Bus, so that the
// display drivers of this module run on microcontrollers.
//
// Bus speed is configured on the machine bus itself, before wrapping it.
package tinybus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// ErrSpeed is returned by SetSpeed.
var ErrSpeed = errors.New("tinybus: speed is set by the machine bus configuration")

// Bus implements i2c.Bus on top of a TinyGo drivers.I2C.
type Bus struct {
	name string
	b    drivers.I2C
}

// New wraps b.
func New(name string, b drivers.I2C) *Bus {
	return &Bus{name: name, b: b}
}

func (b *Bus) String() string {
	return fmt.Sprintf("tinybus(%s)", b.name)
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if err := b.b.Tx(addr, w, r); err != nil {
		return fmt.Errorf("tinybus: %w", err)
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return ErrSpeed
}

var _ i2c.Bus = &Bus{}
