// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package glyph

import (
	"bytes"
	"errors"
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScale(t *testing.T) {
	for _, tc := range []struct {
		name   string
		column byte
		factor int
		want   []byte
	}{
		{"identity", 0xA5, 1, []byte{0xA5}},
		{"zero", 0x00, 3, []byte{0x00, 0x00, 0x00}},
		{"full", 0xFF, 2, []byte{0xFF, 0xFF}},
		{"top bit", 0x80, 2, []byte{0x00, 0xC0}},
		{"bottom bit", 0x01, 2, []byte{0x03, 0x00}},
		{"pattern", 0xA5, 2, []byte{0x33, 0xCC}},
		{"straddle", 0x81, 3, []byte{0x07, 0x00, 0xE0}},
		{"upper half", 0xF0, 4, []byte{0x00, 0x00, 0xFF, 0xFF}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewScaler(4)
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.Scale(tc.column, tc.factor)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Scale(%#02x, %d) difference (-got +want):\n%s", tc.column, tc.factor, diff)
			}
		})
	}
}

func TestScalePopCount(t *testing.T) {
	s, err := NewScaler(MaxFactor)
	if err != nil {
		t.Fatal(err)
	}
	for f := 1; f <= MaxFactor; f++ {
		for c := 0; c < 256; c++ {
			got, err := s.Scale(byte(c), f)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != f {
				t.Fatalf("Scale(%#02x, %d) returned %d bytes", c, f, len(got))
			}
			n := 0
			for _, b := range got {
				n += bits.OnesCount8(b)
			}
			if want := bits.OnesCount8(byte(c)) * f; n != want {
				t.Fatalf("Scale(%#02x, %d) has %d bits set, want %d", c, f, n, want)
			}
		}
	}
}

func TestScaleIdentity(t *testing.T) {
	s, _ := NewScaler(1)
	for c := 0; c < 256; c++ {
		got, err := s.Scale(byte(c), 1)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, []byte{byte(c)}) {
			t.Fatalf("Scale(%#02x, 1) = %#v", c, got)
		}
	}
}

// Pixels keep their top to bottom order: reading the wire bytes back to
// front, most significant bit first, gives each source bit factor times.
func TestScaleOrder(t *testing.T) {
	s, _ := NewScaler(MaxFactor)
	for f := 1; f <= MaxFactor; f++ {
		for c := 0; c < 256; c++ {
			got, _ := s.Scale(byte(c), f)
			for p := 0; p < 8*f; p++ {
				b := got[f-1-p/8]&(0x80>>uint(p%8)) != 0
				src := byte(c)&(0x80>>uint(p/f)) != 0
				if b != src {
					t.Fatalf("Scale(%#02x, %d): output bit %d = %t, want %t", c, f, p, b, src)
				}
			}
		}
	}
}

func TestScaleClearsScratch(t *testing.T) {
	s, _ := NewScaler(2)
	if _, err := s.Scale(0xFF, 2); err != nil {
		t.Fatal(err)
	}
	got, err := s.Scale(0x00, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0, 0}) {
		t.Fatalf("scratch carried over: %#v", got)
	}
}

func TestScaleCapacityExceeded(t *testing.T) {
	s, _ := NewScaler(2)
	if _, err := s.Scale(0xFF, 3); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Scale(0xFF, 3) = %v, want ErrCapacityExceeded", err)
	}
	if err := s.Validate(3); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Validate(3) = %v, want ErrCapacityExceeded", err)
	}
	dst := []byte{0xAA, 0xAA}
	if _, err := ScaleInto(dst[:1], 0xFF, 2); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("ScaleInto() = %v, want ErrCapacityExceeded", err)
	}
	if dst[1] != 0xAA {
		t.Fatal("ScaleInto wrote past its buffer")
	}
}

func TestScaleInvalidFactor(t *testing.T) {
	s, _ := NewScaler(2)
	for _, f := range []int{0, -1} {
		if _, err := s.Scale(0xFF, f); !errors.Is(err, ErrInvalidFactor) {
			t.Errorf("Scale(0xFF, %d) = %v, want ErrInvalidFactor", f, err)
		}
	}
}

func TestNewScaler(t *testing.T) {
	for _, c := range []int{0, -2, MaxFactor + 1} {
		if _, err := NewScaler(c); err == nil {
			t.Errorf("NewScaler(%d) should fail", c)
		}
	}
	s, err := NewScaler(MaxFactor)
	if err != nil {
		t.Fatal(err)
	}
	if s.Capacity() != MaxFactor {
		t.Fatalf("Capacity() = %d", s.Capacity())
	}
}
