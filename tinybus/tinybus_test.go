// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinybus

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/oledtext/ssd1306"
	"github.com/GermanBionicSystems/oledtext/ssd1306/ssd1306test"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

// machineBus mimics machine.I2C.
type machineBus struct {
	c   *ssd1306test.Controller
	err error
}

func (m *machineBus) Tx(addr uint16, w, r []byte) error {
	if m.err != nil {
		return m.err
	}
	return m.c.Tx(addr, w, r)
}

func (m *machineBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return m.Tx(uint16(addr), []byte{r}, buf)
}

func (m *machineBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return m.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func TestBus(t *testing.T) {
	c := ssd1306test.New(&ssd1306test.Opts{W: 128, H: 64, Rotated: true})
	b := New("I2C0", &machineBus{c: c})
	if s := b.String(); s != "tinybus(I2C0)" {
		t.Fatalf("String() = %q", s)
	}
	if err := b.SetSpeed(400 * physic.KiloHertz); !errors.Is(err, ErrSpeed) {
		t.Fatalf("SetSpeed() = %v", err)
	}
	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewI2C(b, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.WriteColumns([]byte{0xFF}, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	img := c.Image()
	var got []bool
	for y := 0; y < 9; y++ {
		got = append(got, img.GrayAt(0, y).Y != 0)
	}
	want := []bool{true, true, true, true, true, true, true, true, false}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("column 0 difference (-got +want):\n%s", diff)
	}
}

func TestBusError(t *testing.T) {
	boom := errors.New("nack")
	b := New("I2C1", &machineBus{err: boom})
	if err := b.Tx(0x3C, []byte{0x00, 0xAF}, nil); !errors.Is(err, boom) {
		t.Fatalf("Tx() = %v", err)
	}
}
