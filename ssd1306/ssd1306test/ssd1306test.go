// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306test implements an emulated SSD1306 controller on an I²C
// bus, to test display drivers and preview their output without hardware.
package ssd1306test

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Memory addressing modes, as set by command 0x20.
const (
	Horizontal byte = 0x00
	Vertical   byte = 0x01
	PageMode   byte = 0x02
)

// Opts configures the emulated panel.
type Opts struct {
	W, H int
	// Addr is the I²C address answered to; 0 means 0x3C.
	Addr uint16
	// Rotated models a panel mounted upside down, so Image() returns what a
	// viewer sees rather than the controller's scan order.
	Rotated bool
}

// Controller emulates the command decoder and graphic RAM of a SSD1306.
//
// It implements i2c.Bus. Transactions start with a control byte: 0x40 for
// a data stream, anything else for a command stream.
type Controller struct {
	mu sync.Mutex

	w, h    int
	addr    uint16
	rotated bool

	// See page 25 of the datasheet: one byte per column per page.
	ram []byte

	on         bool
	inverted   bool
	contrast   byte
	segRemap   bool
	comScanDec bool
	startLine  int
	mode       byte
	scrolling  bool

	colStart, colEnd   int
	pageStart, pageEnd int
	col, page          int

	// Ops logs every transaction written to the controller.
	Ops [][]byte
}

// New returns an emulated controller with cleared RAM and the power on reset
// state of the registers.
func New(opts *Opts) *Controller {
	addr := opts.Addr
	if addr == 0 {
		addr = 0x3C
	}
	pages := opts.H / 8
	return &Controller{
		w:        opts.W,
		h:        opts.H,
		addr:     addr,
		rotated:  opts.Rotated,
		ram:      make([]byte, opts.W*pages),
		contrast: 0x7F,
		mode:     PageMode,
		colEnd:   opts.W - 1,
		pageEnd:  pages - 1,
	}
}

func (c *Controller) String() string {
	return fmt.Sprintf("ssd1306test.Controller{%dx%d}", c.w, c.h)
}

// SetSpeed implements i2c.Bus.
func (c *Controller) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus.
//
// A read returns the status byte; bit 6 is set while the display is off.
func (c *Controller) Tx(addr uint16, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if addr != c.addr {
		return fmt.Errorf("ssd1306test: no device at address %#x", addr)
	}
	if len(r) != 0 {
		for i := range r {
			r[i] = 0
		}
		if !c.on {
			r[0] = 0x40
		}
	}
	if len(w) == 0 {
		return nil
	}
	c.Ops = append(c.Ops, append([]byte(nil), w...))
	if w[0]&0x40 != 0 {
		c.data(w[1:])
		return nil
	}
	return c.commands(w[1:])
}

// Image returns the panel content as seen by a viewer. Lit pixels are 0xFF.
func (c *Controller) Image() *image.Gray {
	c.mu.Lock()
	defer c.mu.Unlock()
	img := image.NewGray(image.Rect(0, 0, c.w, c.h))
	if !c.on {
		return img
	}
	for page := 0; page < c.h/8; page++ {
		for col := 0; col < c.w; col++ {
			b := c.ram[page*c.w+col]
			for bit := 0; bit < 8; bit++ {
				if (b&(1<<uint(bit)) != 0) == c.inverted {
					continue
				}
				com := (page*8 + bit - c.startLine + c.h) % c.h
				if c.comScanDec {
					com = c.h - 1 - com
				}
				seg := col
				if c.segRemap {
					seg = c.w - 1 - col
				}
				x, y := seg, com
				if c.rotated {
					x, y = c.w-1-x, c.h-1-y
				}
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// Pixel reports whether the pixel at x, y of Image() is lit.
func (c *Controller) Pixel(x, y int) bool {
	return c.Image().GrayAt(x, y).Y != 0
}

// RAM returns a copy of the graphic RAM, one byte per column per page,
// page 0 first.
func (c *Controller) RAM() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.ram...)
}

// Window returns the current column and page address windows.
func (c *Controller) Window() (colStart, colEnd, pageStart, pageEnd int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colStart, c.colEnd, c.pageStart, c.pageEnd
}

// State returns the display on, inverted and contrast registers.
func (c *Controller) State() (on, inverted bool, contrast byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on, c.inverted, c.contrast
}

// Mode returns the memory addressing mode.
func (c *Controller) Mode() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Scrolling reports whether scrolling is active.
func (c *Controller) Scrolling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrolling
}

// StartLine returns the display start line.
func (c *Controller) StartLine() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLine
}

func (c *Controller) data(b []byte) {
	for _, v := range b {
		c.ram[c.page*c.w+c.col] = v
		c.advance()
	}
}

// advance moves the RAM pointer as described on pages 34 and 35.
func (c *Controller) advance() {
	switch c.mode {
	case Horizontal:
		if c.col++; c.col > c.colEnd {
			c.col = c.colStart
			if c.page++; c.page > c.pageEnd {
				c.page = c.pageStart
			}
		}
	case Vertical:
		if c.page++; c.page > c.pageEnd {
			c.page = c.pageStart
			if c.col++; c.col > c.colEnd {
				c.col = c.colStart
			}
		}
	default:
		if c.col++; c.col > c.colEnd {
			c.col = c.colStart
		}
	}
}

func (c *Controller) commands(b []byte) error {
	for len(b) != 0 {
		op := b[0]
		n := argCount(op)
		if len(b) < 1+n {
			return fmt.Errorf("ssd1306test: command %#02x needs %d arguments, got %d", op, n, len(b)-1)
		}
		if err := c.command(op, b[1:1+n]); err != nil {
			return err
		}
		b = b[1+n:]
	}
	return nil
}

func (c *Controller) command(op byte, args []byte) error {
	switch {
	case op <= 0x0F:
		if col := c.col&0xF0 | int(op&0x0F); col < c.w {
			c.col = col
		}
	case op <= 0x1F:
		if col := c.col&0x0F | int(op&0x0F)<<4; col < c.w {
			c.col = col
		}
	case op == 0x20:
		if args[0]&3 == 3 {
			return fmt.Errorf("ssd1306test: invalid addressing mode %#02x", args[0])
		}
		c.mode = args[0] & 3
	case op == 0x21:
		s, e := int(args[0]), int(args[1])
		if s > e || e >= c.w {
			return fmt.Errorf("ssd1306test: invalid column range %d-%d", s, e)
		}
		c.colStart, c.colEnd, c.col = s, e, s
	case op == 0x22:
		s, e := int(args[0]), int(args[1])
		if s > e || e >= c.h/8 {
			return fmt.Errorf("ssd1306test: invalid page range %d-%d", s, e)
		}
		c.pageStart, c.pageEnd, c.page = s, e, s
	case op == 0x2E:
		c.scrolling = false
	case op == 0x2F:
		c.scrolling = true
	case op >= 0x40 && op <= 0x7F:
		c.startLine = int(op & 0x3F)
	case op == 0x81:
		c.contrast = args[0]
	case op == 0xA0 || op == 0xA1:
		c.segRemap = op == 0xA1
	case op == 0xA6 || op == 0xA7:
		c.inverted = op == 0xA7
	case op == 0xAE || op == 0xAF:
		c.on = op == 0xAF
	case op >= 0xB0 && op <= 0xB7:
		if p := int(op & 0x07); p < c.h/8 {
			c.page = p
		}
	case op == 0xC0 || op == 0xC8:
		c.comScanDec = op == 0xC8
	}
	return nil
}

func argCount(op byte) int {
	switch op {
	case 0x20, 0x81, 0x8D, 0xA8, 0xAD, 0xD3, 0xD5, 0xD9, 0xDA, 0xDB:
		return 1
	case 0x21, 0x22, 0xA3:
		return 2
	case 0x29, 0x2A:
		return 5
	case 0x26, 0x27:
		return 6
	}
	return 0
}

var _ i2c.Bus = &Controller{}
