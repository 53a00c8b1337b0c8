// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306test

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Terminal prints monochrome images to a console using ANSI color codes.
type Terminal struct {
	// Lit is the color of pixels that are on.
	Lit color.NRGBA

	w       io.Writer
	palette *ansi256.Palette
	buf     bytes.Buffer
}

// NewTerminal returns a Terminal writing to w, or to a color capable stdout
// when w is nil.
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Terminal{
		Lit:     color.NRGBA{0x40, 0xC0, 0xFF, 0xFF},
		w:       w,
		palette: ansi256.Default,
	}
}

// Render prints img, one console line per pixel row.
func (t *Terminal) Render(img image.Image) error {
	// This code is designed to minimize the amount of memory allocated per call.
	t.buf.Reset()
	off := color.NRGBA{A: 0xFF}
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		_, _ = t.buf.WriteString("\r\033[0m")
		for x := r.Min.X; x < r.Max.X; x++ {
			c := off
			if color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y >= 0x80 {
				c = t.Lit
			}
			_, _ = io.WriteString(&t.buf, t.palette.Block(c))
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}
