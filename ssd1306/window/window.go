// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package window translates text cursor rectangles into the column and page
// address window of a SSD1306 controller.
//
// Logical rows grow downward from the top of the display, one row per page
// of 8 pixels. The panel is wired with its page axis mirrored: logical row 0
// is the last native page. Columns are not mirrored.
package window

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for a rectangle outside of the controller's
// memory.
var ErrOutOfBounds = errors.New("window: rectangle out of bounds")

// Rect is a rectangle in logical text space. All bounds are inclusive.
type Rect struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
}

func (r Rect) String() string {
	return fmt.Sprintf("rows %d-%d, cols %d-%d", r.RowStart, r.RowEnd, r.ColStart, r.ColEnd)
}

// Window is an address window in controller space, as consumed by the
// column address (0x21) and page address (0x22) commands. All bounds are
// inclusive.
type Window struct {
	ColStart, ColEnd   byte
	PageStart, PageEnd byte
}

// Cols returns the number of columns selected.
func (w Window) Cols() int {
	return int(w.ColEnd) - int(w.ColStart) + 1
}

// Pages returns the number of pages selected.
func (w Window) Pages() int {
	return int(w.PageEnd) - int(w.PageStart) + 1
}

// Translator maps logical rectangles on a display of the given geometry.
type Translator struct {
	// Columns is the display width in pixels.
	Columns int
	// Pages is the display height in 8 pixel pages.
	Pages int
}

// Default is a 128x64 display.
var Default = Translator{Columns: 128, Pages: 8}

// RowToPage converts a logical row into the native page it is stored in.
func (t Translator) RowToPage(row int) int {
	return t.Pages - 1 - row
}

// PageToRow converts a native page into its logical row.
func (t Translator) PageToRow(page int) int {
	return t.Pages - 1 - page
}

// Translate returns the native window selecting exactly r.
//
// The mirrored page axis reverses the row order, so the last row becomes
// the first page. r is never clipped; anything outside of the display fails
// with ErrOutOfBounds.
func (t Translator) Translate(r Rect) (Window, error) {
	if err := t.Check(r); err != nil {
		return Window{}, err
	}
	return Window{
		ColStart:  byte(r.ColStart),
		ColEnd:    byte(r.ColEnd),
		PageStart: byte(t.RowToPage(r.RowEnd)),
		PageEnd:   byte(t.RowToPage(r.RowStart)),
	}, nil
}

// Check verifies that r is ordered and fits the display.
func (t Translator) Check(r Rect) error {
	if r.RowStart < 0 || r.RowStart > r.RowEnd || r.RowEnd >= t.Pages ||
		r.ColStart < 0 || r.ColStart > r.ColEnd || r.ColEnd >= t.Columns {
		return fmt.Errorf("%w: %s on %dx%d pages", ErrOutOfBounds, r, t.Columns, t.Pages)
	}
	return nil
}

// Translate translates r on the Default geometry.
func Translate(r Rect) (Window, error) {
	return Default.Translate(r)
}
