// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package glyph magnifies 8 pixel tall font columns into multi-page columns
// for a page addressed display controller.
//
// A glyph column is one byte: 8 vertically stacked pixels. Magnifying it by
// an integer factor f replicates every pixel f times vertically, giving an
// 8*f pixel column that spans f pages of the controller's memory.
package glyph

import (
	"errors"
	"fmt"
)

// MaxFactor is the largest magnification a controller with 8 pages of 8
// pixels can hold in one column.
const MaxFactor = 8

var (
	// ErrCapacityExceeded is returned when the requested magnification does
	// not fit the scratch buffer.
	ErrCapacityExceeded = errors.New("glyph: magnification exceeds scratch capacity")
	// ErrInvalidFactor is returned for a magnification lower than 1.
	ErrInvalidFactor = errors.New("glyph: magnification must be at least 1")
)

// Scaler magnifies glyph columns into a scratch buffer it owns.
//
// A Scaler is not safe for concurrent use. The slice returned by Scale is
// only valid until the next call.
type Scaler struct {
	buf []byte
}

// NewScaler returns a Scaler able to magnify up to capacity times.
func NewScaler(capacity int) (*Scaler, error) {
	if capacity < 1 || capacity > MaxFactor {
		return nil, fmt.Errorf("glyph: invalid capacity %d, must be between 1 and %d", capacity, MaxFactor)
	}
	return &Scaler{buf: make([]byte, capacity)}, nil
}

// Capacity returns the largest factor the Scaler accepts.
func (s *Scaler) Capacity() int {
	return len(s.buf)
}

// Validate reports whether factor is usable with this Scaler.
func (s *Scaler) Validate(factor int) error {
	return check(factor, len(s.buf))
}

// Scale magnifies column by factor.
//
// The result holds factor bytes in the order they must be sent to the
// controller. See ScaleInto.
func (s *Scaler) Scale(column byte, factor int) ([]byte, error) {
	return ScaleInto(s.buf, column, factor)
}

// ScaleInto magnifies column by factor into dst and returns dst[:factor].
//
// The source bits are walked from the most significant to the least
// significant one; each is repeated factor times into an output bit stream
// which is packed 8 bits per byte, most significant bit first. The packed
// bytes are returned last stride first, which is the order the controller
// expects them in on a mirrored page axis.
//
// dst is cleared before use. It fails with ErrCapacityExceeded when dst is
// shorter than factor.
func ScaleInto(dst []byte, column byte, factor int) ([]byte, error) {
	if err := check(factor, len(dst)); err != nil {
		return nil, err
	}
	out := dst[:factor]
	for i := range out {
		out[i] = 0
	}
	bit := 0
	for src := 7; src >= 0; src-- {
		on := column&(1<<uint(src)) != 0
		for j := 0; j < factor; j++ {
			if on {
				out[factor-1-bit/8] |= 0x80 >> uint(bit%8)
			}
			bit++
		}
	}
	return out, nil
}

func check(factor, capacity int) error {
	if factor < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidFactor, factor)
	}
	if factor > capacity {
		return fmt.Errorf("%w: factor %d, capacity %d", ErrCapacityExceeded, factor, capacity)
	}
	return nil
}
