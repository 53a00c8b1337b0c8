// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package font8x8

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBasic(t *testing.T) {
	for _, tc := range []struct {
		r    rune
		want Glyph
	}{
		{' ', Glyph{}},
		{'!', Glyph{0x00, 0x00, 0x60, 0xFA, 0xFA, 0x60, 0x00, 0x00}},
		{'_', Glyph{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}},
		{'-', Glyph{0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00}},
	} {
		if diff := cmp.Diff(Basic.Glyph(tc.r), tc.want); diff != "" {
			t.Errorf("Glyph(%q) difference (-got +want):\n%s", tc.r, diff)
		}
	}
}

func TestBasicCoverage(t *testing.T) {
	for r := rune(' '); r <= '~'; r++ {
		if !Basic.Has(r) {
			t.Fatalf("missing %q", r)
		}
	}
	if Basic.Has('\x7f') || Basic.Has('\x1f') {
		t.Fatal("unexpected rune in table")
	}
}

func TestFallback(t *testing.T) {
	want := Basic.Glyph('?')
	for _, r := range []rune{'é', '\n', 0x7f, -1} {
		if got := Basic.Glyph(r); got != want {
			t.Errorf("Glyph(%q) = %v, want '?'", r, got)
		}
	}
	tbl := FromRows('0', basicRange('0', '9'))
	if got := tbl.Glyph('a'); got != (Glyph{}) {
		t.Errorf("table without '?' should fall back to blank, got %v", got)
	}
}

// Every pixel of the row major source lands in the matching column bit.
func TestTranspose(t *testing.T) {
	for i, rows := range basicRows {
		g := Basic.Glyph(' ' + rune(i))
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				want := rows[y]&(1<<uint(x)) != 0
				got := g[x]&(0x80>>uint(y)) != 0
				if got != want {
					t.Fatalf("%q at (%d, %d) = %t, want %t", ' '+rune(i), x, y, got, want)
				}
			}
		}
	}
}

func TestFromFace(t *testing.T) {
	tbl, err := FromFace(basicfont.Face7x13, ' ', '~')
	if err != nil {
		t.Fatal(err)
	}
	if g := tbl.Glyph(' '); g != (Glyph{}) {
		t.Errorf("space is not blank: %v", g)
	}
	if g := tbl.Glyph('H'); g == (Glyph{}) {
		t.Error("'H' is blank")
	}
	if _, err := FromFace(basicfont.Face7x13, 'z', 'a'); err == nil {
		t.Error("inverted range should fail")
	}
}

func TestParseTTF(t *testing.T) {
	tbl, err := ParseTTF(goregular.TTF, 8)
	if err != nil {
		t.Fatal(err)
	}
	if g := tbl.Glyph(' '); g != (Glyph{}) {
		t.Errorf("space is not blank: %v", g)
	}
	if g := tbl.Glyph('H'); g == (Glyph{}) {
		t.Error("'H' is blank")
	}
	if _, err := ParseTTF([]byte("not a font"), 8); err == nil {
		t.Error("expected parse error")
	}
}

func basicRange(first, last rune) [][Height]byte {
	var out [][Height]byte
	for r := first; r <= last; r++ {
		out = append(out, basicRows[r-' '])
	}
	return out
}
