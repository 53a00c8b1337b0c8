// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package window

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranslate(t *testing.T) {
	for _, tc := range []struct {
		name string
		rect Rect
		want Window
	}{
		{"top row", Rect{0, 0, 0, 7}, Window{ColStart: 0, ColEnd: 7, PageStart: 7, PageEnd: 7}},
		{"bottom row", Rect{7, 7, 120, 127}, Window{ColStart: 120, ColEnd: 127, PageStart: 0, PageEnd: 0}},
		{"span", Rect{2, 4, 10, 11}, Window{ColStart: 10, ColEnd: 11, PageStart: 3, PageEnd: 5}},
		{"full", Rect{0, 7, 0, 127}, Window{ColStart: 0, ColEnd: 127, PageStart: 0, PageEnd: 7}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Translate(tc.rect)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Translate(%s) difference (-got +want):\n%s", tc.rect, diff)
			}
		})
	}
}

func TestTranslateSingleRow(t *testing.T) {
	for r := 0; r < 8; r++ {
		for _, cols := range [][2]int{{0, 0}, {5, 12}, {127, 127}} {
			w, err := Translate(Rect{RowStart: r, RowEnd: r, ColStart: cols[0], ColEnd: cols[1]})
			if err != nil {
				t.Fatal(err)
			}
			if int(w.PageStart) != 7-r || int(w.PageEnd) != 7-r {
				t.Errorf("row %d: pages %d-%d, want %d", r, w.PageStart, w.PageEnd, 7-r)
			}
			if int(w.ColStart) != cols[0] || int(w.ColEnd) != cols[1] {
				t.Errorf("row %d: cols %d-%d, want %d-%d", r, w.ColStart, w.ColEnd, cols[0], cols[1])
			}
		}
	}
}

func TestTranslateOutOfBounds(t *testing.T) {
	for _, r := range []Rect{
		{RowStart: 0, RowEnd: 9},
		{RowStart: 0, RowEnd: 8},
		{RowStart: -1, RowEnd: 0},
		{RowStart: 4, RowEnd: 3},
		{ColStart: 0, ColEnd: 128},
		{ColStart: -1, ColEnd: 3},
		{ColStart: 9, ColEnd: 8},
	} {
		if _, err := Translate(r); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Translate(%s) = %v, want ErrOutOfBounds", r, err)
		}
	}
}

func TestTranslatorShortPanel(t *testing.T) {
	tr := Translator{Columns: 128, Pages: 4}
	w, err := tr.Translate(Rect{RowStart: 0, RowEnd: 1, ColStart: 0, ColEnd: 1})
	if err != nil {
		t.Fatal(err)
	}
	if w.PageStart != 2 || w.PageEnd != 3 {
		t.Fatalf("pages %d-%d, want 2-3", w.PageStart, w.PageEnd)
	}
	if _, err := tr.Translate(Rect{RowStart: 4, RowEnd: 4}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("row 4 of a 4 page panel: %v", err)
	}
}

func TestRowToPage(t *testing.T) {
	for row := 0; row < Default.Pages; row++ {
		p := Default.RowToPage(row)
		if p != 7-row {
			t.Errorf("RowToPage(%d) = %d", row, p)
		}
		if got := Default.PageToRow(p); got != row {
			t.Errorf("PageToRow(%d) = %d, want %d", p, got, row)
		}
	}
}

func TestWindowSize(t *testing.T) {
	w := Window{ColStart: 3, ColEnd: 10, PageStart: 2, PageEnd: 4}
	if w.Cols() != 8 || w.Pages() != 3 {
		t.Fatalf("Cols()=%d Pages()=%d", w.Cols(), w.Pages())
	}
}
