// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package font8x8 provides 8x8 pixel glyph tables in the column format used
// by page addressed monochrome controllers.
//
// A Glyph is 8 columns, left to right. Each column is one byte of 8 vertical
// pixels with the most significant bit at the top of the character cell.
package font8x8

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Size of a character cell in pixels.
const (
	Width  = 8
	Height = 8
)

// Glyph is one character, as 8 columns of 8 pixels.
type Glyph [Width]byte

// Table maps a contiguous range of runes to glyphs.
type Table struct {
	first    rune
	glyphs   []Glyph
	fallback Glyph
}

// Basic covers printable ASCII.
var Basic = FromRows(' ', basicRows)

// FromRows builds a Table from row major glyphs, where each byte is one pixel
// row, top row first, and bit 0 is the leftmost pixel. The first glyph maps
// to first.
func FromRows(first rune, rows [][Height]byte) *Table {
	t := &Table{first: first, glyphs: make([]Glyph, len(rows))}
	for i, g := range rows {
		t.glyphs[i] = transpose(g)
	}
	t.fallback = t.lookup('?')
	return t
}

// FromFace rasterizes the runes first to last of face into a Table.
//
// Each rune is drawn in an 8x8 cell with its baseline above the face's
// descent. Anything drawn outside of the cell is cropped; pixels are on when
// their coverage is at least half.
func FromFace(face font.Face, first, last rune) (*Table, error) {
	if last < first {
		return nil, fmt.Errorf("font8x8: invalid rune range %q-%q", first, last)
	}
	baseline := Height - face.Metrics().Descent.Ceil()
	if baseline < 1 {
		baseline = 1
	}
	cell := image.NewGray(image.Rect(0, 0, Width, Height))
	d := font.Drawer{Dst: cell, Src: image.White, Face: face}
	t := &Table{first: first, glyphs: make([]Glyph, last-first+1)}
	for r := first; r <= last; r++ {
		draw.Draw(cell, cell.Bounds(), image.Black, image.Point{}, draw.Src)
		d.Dot = fixed.P(0, baseline)
		d.DrawString(string(r))
		t.glyphs[r-first] = columns(cell)
	}
	t.fallback = t.lookup('?')
	return t, nil
}

// ParseTTF rasterizes printable ASCII from TrueType data rendered at size
// points at 72 DPI, so that size is also the height in pixels.
func ParseTTF(ttf []byte, size float64) (*Table, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("font8x8: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	return FromFace(face, ' ', '~')
}

// Glyph returns the glyph for r. Runes outside of the table are rendered as
// '?' when the table has it, blank otherwise.
func (t *Table) Glyph(r rune) Glyph {
	if i := int(r - t.first); r >= t.first && i < len(t.glyphs) {
		return t.glyphs[i]
	}
	return t.fallback
}

// Has reports whether r is in the table.
func (t *Table) Has(r rune) bool {
	return r >= t.first && int(r-t.first) < len(t.glyphs)
}

func (t *Table) lookup(r rune) Glyph {
	if t.Has(r) {
		return t.glyphs[r-t.first]
	}
	return Glyph{}
}

func transpose(rows [Height]byte) Glyph {
	var g Glyph
	for y, row := range rows {
		for x := 0; x < Width; x++ {
			if row&(1<<uint(x)) != 0 {
				g[x] |= 0x80 >> uint(y)
			}
		}
	}
	return g
}

func columns(cell *image.Gray) Glyph {
	var g Glyph
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if cell.GrayAt(x, y).Y >= 0x80 {
				g[x] |= 0x80 >> uint(y)
			}
		}
	}
	return g
}
