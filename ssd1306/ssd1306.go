// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// The SSD1306 is an OLED controller with 128 columns by 8 pages of 8 pixels.
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/GermanBionicSystems/oledtext/ssd1306/font8x8"
	"github.com/GermanBionicSystems/oledtext/ssd1306/glyph"
	"github.com/GermanBionicSystems/oledtext/ssd1306/window"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	_CHARGEPUMP          = 0x8D
	_COLUMNADDR          = 0x21
	_COMSCANINC          = 0xC0
	_DEACTIVATE_SCROLL   = 0x2E
	_ACTIVATE_SCROLL     = 0x2F
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGEADDR            = 0x22
	_SEGREMAP            = 0xA0
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

// Vertical memory addressing mode; see page 34.
const _VERTICALADDRESSING = 0x01

// FrameRate determines scrolling speed.
type FrameRate byte

// Possible frame rates. The value determines the number of refreshes between
// movement. The lower value, the higher speed.
const (
	FrameRate2   FrameRate = 7
	FrameRate3   FrameRate = 4
	FrameRate4   FrameRate = 5
	FrameRate5   FrameRate = 0
	FrameRate25  FrameRate = 6
	FrameRate64  FrameRate = 1
	FrameRate128 FrameRate = 2
	FrameRate256 FrameRate = 3
)

// Orientation is used for scrolling.
type Orientation byte

// Possible orientations for scrolling.
const (
	Left    Orientation = 0x27
	Right   Orientation = 0x26
	UpRight Orientation = 0x29
	UpLeft  Orientation = 0x2A
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:        128,
	H:        64,
	Contrast: 0x7F,
	Addr:     0x3c,
	MaxScale: 4,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Sequential corresponds to the Sequential/Alternative COM pin configuration
	// in the OLED panel hardware. Try toggling this if half the rows appear to be
	// missing on your display. Particularly on 32 pixel height displays.
	Sequential bool
	// MirrorHorizontal corresponds to the SEG remap configuration in the OLED panel
	// hardware. Try toggling this if text is mirrored left to right.
	MirrorHorizontal bool
	// SwapTopBottom corresponds to the Left/Right remap COM pin configuration in
	// the OLED panel hardware. Try toggling this if the top and bottom halves of
	// your display are swapped.
	SwapTopBottom bool
	// Contrast set at initialization. 0 means DefaultOpts.Contrast; use
	// SetContrast() afterward to really set it to 0.
	Contrast byte
	// The I2C address of the display.
	Addr uint16
	// MaxScale is the largest text magnification accepted. 0 means
	// DefaultOpts.MaxScale, limited to the number of pages.
	MaxScale int
	// Font used by WriteString. nil means font8x8.Basic.
	Font *font8x8.Table
}

// NewSPI returns a Dev object that communicates over SPI to a SSD1306 display
// controller.
//
// The SSD1306 can operate at up to 3.3Mhz, which is much higher than I²C. This
// permits higher refresh rates.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCK to SPI_CLK, CS to SPI_CS.
//
// In 3-wire SPI mode, pass nil for 'dc'. In 4-wire SPI mode, pass a GPIO pin
// to use.
//
// The RES (reset) pin can be used outside of this driver but is not supported
// natively. In case of external reset via the RES pin, this device drive must
// be reinstantiated.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if dc == gpio.INVALID {
		return nil, fmt.Errorf("ssd1306: use nil for dc to use 3-wire mode, do not use gpio.INVALID")
	}
	bits := 8
	if dc == nil {
		// 3-wire SPI uses 9 bits per word.
		bits = 9
	} else if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	c, err := p.Connect(3300*physic.KiloHertz, spi.Mode0, bits)
	if err != nil {
		return nil, err
	}
	return newDev(c, opts, true, dc)
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1306 display
// controller.
//
// A nil opts means DefaultOpts.
func NewI2C(i i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	addr := opts.Addr
	if addr == 0x00 {
		addr = DefaultOpts.Addr
	}
	// Maximum clock speed is 1/2.5µs = 400KHz.
	return newDev(&i2c.Dev{Bus: i, Addr: addr}, opts, false, nil)
}

// Dev is an open handle to the display controller.
//
// The panel is expected to be wired with its page axis mirrored: logical row
// 0, the top text row, is stored in the last page. Text coordinates are
// expressed as a logical row (a page of 8 pixels, growing downward) and a
// pixel column (growing rightward).
//
// Dev is safe for concurrent use; every operation holds the bus for its
// whole duration.
type Dev struct {
	// Communication
	c   conn.Conn
	dc  gpio.PinOut
	spi bool

	// Display size controlled by the SSD1306.
	rect image.Rectangle
	tr   window.Translator
	font *font8x8.Table

	mu sync.Mutex
	// Scratch for scaled glyph columns, owned by the render in progress.
	scaler *glyph.Scaler
	// Mutable
	// Shadow of the GDDRAM as last written, one byte per column per page,
	// native page 0 first. See page 25 for the GDDRAM pages structure.
	buffer []byte
	// next and pix are lazy initialized on first Draw().
	next     *image.Gray
	pix      []byte
	scrolled bool
	halted   bool
}

func (d *Dev) String() string {
	if d.spi {
		return fmt.Sprintf("SSD1306.Dev{%s, %s, %s}", d.c, d.dc, d.rect.Max)
	}
	return fmt.Sprintf("SSD1306.Dev{%s, %s}", d.c, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// Pixels are lit when their gray level is at least half.
func (d *Dev) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
// Pixels outside of r keep what was last written, text included. Only the
// smallest rectangle of pages that changed since the last write is sent.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next == nil {
		d.next = image.NewGray(d.rect)
		d.pix = make([]byte, len(d.buffer))
	}
	d.unpack(d.next)
	draw.Src.Draw(d.next, r, src, sp)
	d.pack(d.pix, d.next)
	return d.drawInternal(d.pix)
}

// Write writes a buffer of pixels to the display.
//
// The format is the GDDRAM layout: one byte per column per page, native page
// 0 first. Because the page axis is mirrored, native page 0 is the bottom
// text row and the most significant bit of a byte is its top pixel.
func (d *Dev) Write(pixels []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(pixels) != len(d.buffer) {
		return 0, fmt.Errorf("ssd1306: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer), len(pixels))
	}
	if err := d.drawInternal(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// WriteString renders s at the logical row and pixel column col, each font
// pixel magnified scale times in both directions.
//
// The text occupies rows row to row+scale-1 and 8*scale columns per
// character. It is not clipped: if any part falls outside of the display,
// nothing is sent and the error wraps window.ErrOutOfBounds. A scale larger
// than Opts.MaxScale fails with glyph.ErrCapacityExceeded.
func (d *Dev) WriteString(s string, scale, row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeString([]rune(s), scale, row, col)
}

// WriteStringMultiLine renders s over as many lines as needed, starting at
// row and col.
//
// Each line holds as many characters as fit between col and the right edge,
// and the next line starts scale rows lower. When a line would not fit
// below, writing resumes at row 0.
func (d *Dev) WriteStringMultiLine(s string, scale, row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.scaler.Validate(scale); err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	perLine := (d.rect.Dx() - col) / (font8x8.Width * scale)
	if col < 0 || perLine < 1 {
		return fmt.Errorf("ssd1306: %w: no room for %dx text at column %d", window.ErrOutOfBounds, scale, col)
	}
	runes := []rune(s)
	for len(runes) != 0 {
		n := perLine
		if n > len(runes) {
			n = len(runes)
		}
		if err := d.writeString(runes[:n], scale, row, col); err != nil {
			return err
		}
		runes = runes[n:]
		if row += scale; row+scale > d.tr.Pages {
			row = 0
		}
	}
	return nil
}

// WriteColumns renders raw glyph columns, as if they were the columns of a
// font glyph: each byte is 8 vertical pixels, most significant bit at the
// top, magnified scale times.
func (d *Dev) WriteColumns(cols []byte, scale, row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeColumns(cols, scale, row, col)
}

// SetCursor selects r as the controller's address window. The next data
// bytes fill it one column at a time, top to bottom.
func (d *Dev) SetCursor(r window.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.tr.Translate(r)
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	return d.setWindow(w)
}

// ClearRect turns off every pixel of r.
func (d *Dev) ClearRect(r window.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clearRect(r)
}

// Clear turns off every pixel of the display.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clearRect(d.full())
}

// Scroll scrolls an horizontal band.
//
// Only one scrolling operation can happen at a time.
//
// Both startLine and endLine must be multiples of 8.
//
// Use -1 for endLine to extend to the bottom of the display.
func (d *Dev) Scroll(o Orientation, rate FrameRate, startLine, endLine int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.rect.Dy()
	if endLine == -1 {
		endLine = h
	}
	if startLine >= endLine {
		return fmt.Errorf("ssd1306: startLine (%d) must be lower than endLine (%d)", startLine, endLine)
	}
	if startLine&7 != 0 || startLine < 0 || startLine >= h {
		return fmt.Errorf("ssd1306: invalid startLine %d", startLine)
	}
	if endLine&7 != 0 || endLine < 0 || endLine > h {
		return fmt.Errorf("ssd1306: invalid endLine %d", endLine)
	}
	// Lines are counted from the top; the controller scrolls native pages.
	w, err := d.tr.Translate(window.Rect{RowStart: startLine / 8, RowEnd: endLine/8 - 1, ColEnd: d.rect.Dx() - 1})
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	d.scrolled = true
	if o == Left || o == Right {
		// page 28
		// <op>, dummy, <start page>, <rate>,  <end page>, <dummy>, <dummy>, <ENABLE>
		return d.sendCommand([]byte{byte(o), 0x00, w.PageStart, byte(rate), w.PageEnd, 0x00, 0xFF, _ACTIVATE_SCROLL})
	}
	// page 29
	// <op>, dummy, <start page>, <rate>,  <end page>, <offset>, <ENABLE>
	// page 30: 0xA3 permits to set rows for scroll area.
	return d.sendCommand([]byte{byte(o), 0x00, w.PageStart, byte(rate), w.PageEnd, 0x01, _ACTIVATE_SCROLL})
}

// StopScroll stops any scrolling previously set.
//
// The next Draw() repaints the whole display.
func (d *Dev) StopScroll() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand([]byte{_DEACTIVATE_SCROLL})
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand([]byte{_SETCONTRAST, level})
}

// SetDisplayStartLine causes the display to start from startLine, effectively
// scrolling the screen to that position.
//
// startLine must be between 0 and 63.
func (d *Dev) SetDisplayStartLine(startLine byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if startLine > 63 {
		return fmt.Errorf("ssd1306: invalid startLine %d", startLine)
	}
	return d.sendCommand([]byte{_SETSTARTLINE | startLine})
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.halted = false
	err := d.sendCommand([]byte{_DISPLAYOFF})
	if err == nil {
		d.halted = true
	}
	return err
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := []byte{_NORMALDISPLAY}
	if blackOnWhite {
		b[0] = _INVERTDISPLAY
	}
	return d.sendCommand(b)
}

// newDev is the common initialization code that is independent of the
// communication protocol (I²C or SPI) being used.
func newDev(c conn.Conn, opts *Opts, usingSPI bool, dc gpio.PinOut) (*Dev, error) {
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid height %d", opts.H)
	}
	nbPages := opts.H / 8
	maxScale := opts.MaxScale
	if maxScale == 0 {
		maxScale = DefaultOpts.MaxScale
		if maxScale > nbPages {
			maxScale = nbPages
		}
	}
	if maxScale > nbPages {
		return nil, fmt.Errorf("ssd1306: MaxScale %d does not fit %d pages", maxScale, nbPages)
	}
	scaler, err := glyph.NewScaler(maxScale)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	f := opts.Font
	if f == nil {
		f = font8x8.Basic
	}
	contrast := opts.Contrast
	if contrast == 0 {
		contrast = DefaultOpts.Contrast
	}
	d := &Dev{
		c:      c,
		spi:    usingSPI,
		dc:     dc,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		tr:     window.Translator{Columns: opts.W, Pages: nbPages},
		font:   f,
		scaler: scaler,
		buffer: make([]byte, nbPages*opts.W),
	}
	if err := d.sendCommand(getInitCmd(opts, contrast)); err != nil {
		return nil, err
	}
	// The GDDRAM content is undefined at power on; clearing it also makes the
	// shadow buffer exact.
	if err := d.clearRect(d.full()); err != nil {
		return nil, err
	}
	return d, nil
}

func getInitCmd(opts *Opts, contrast byte) []byte {
	// See page 40.
	segRemap := byte(_SETSEGMENTREMAP)
	if opts.MirrorHorizontal {
		segRemap = _SEGREMAP
	}
	// See page 40.
	hwLayout := byte(0x02)
	if !opts.Sequential {
		hwLayout |= 0x10
	}
	if opts.SwapTopBottom {
		hwLayout |= 0x20
	}

	// Initialize the device by fully resetting all values.
	// Page 64 has the full recommended flow.
	// Page 28 lists all the commands.
	return []byte{
		_DISPLAYOFF,                     // Display off
		_SETMULTIPLEX, byte(opts.H - 1), // Set multiplex ratio (number of lines to display)
		_SETDISPLAYOFFSET, 0x00, // Set display offset; 0
		_SETSTARTLINE,         // Start display start line; 0
		segRemap,              // Set segment remap; RESET is column 127.
		_COMSCANINC,           // Page 0 is scanned first, at the bottom of the panel.
		_SETCOMPINS, hwLayout, // Set COM pins hardware configuration; see page 40
		_SETCONTRAST, contrast, // Set contrast
		_DISPLAYALLON_RESUME,      // Set display to use GDDRAM content
		_NORMALDISPLAY,            // Set normal display (_INVERTDISPLAY for inverted 0=lit, 1=dark)
		_SETDISPLAYCLOCKDIV, 0x80, // Set osc frequency and divide ratio; power on reset value.
		_CHARGEPUMP, 0x14, // Enable charge pump regulator; page 62
		_SETPRECHARGE, 0x22, // Set pre-charge period
		_SETVCOMDETECT, 0x30, // Set Vcomh deselect level; page 32
		_DEACTIVATE_SCROLL,                // Deactivate scroll
		_MEMORYMODE, _VERTICALADDRESSING, // One column at a time, top to bottom
		_DISPLAYON, // Display on
	}
}

func (d *Dev) full() window.Rect {
	return window.Rect{RowEnd: d.tr.Pages - 1, ColEnd: d.rect.Dx() - 1}
}

func (d *Dev) writeString(s []rune, scale, row, col int) error {
	cols := make([]byte, 0, len(s)*font8x8.Width)
	for _, r := range s {
		g := d.font.Glyph(r)
		cols = append(cols, g[:]...)
	}
	return d.writeColumns(cols, scale, row, col)
}

func (d *Dev) writeColumns(cols []byte, scale, row, col int) error {
	if len(cols) == 0 {
		return nil
	}
	if err := d.scaler.Validate(scale); err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	span := window.Rect{RowStart: row, RowEnd: row + scale - 1, ColStart: col, ColEnd: col + len(cols)*scale - 1}
	if err := d.tr.Check(span); err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	for j, c := range cols {
		if err := d.drawColumn(c, scale, row, col+j*scale); err != nil {
			return err
		}
	}
	return nil
}

// drawColumn sends one glyph column magnified scale times at the logical
// row and pixel column x.
//
// The window must be set before each glyph column: vertical addressing only
// auto increments within the current window, so batching several columns
// under one window writes them to the wrong place.
func (d *Dev) drawColumn(column byte, scale, row, x int) error {
	scaled, err := d.scaler.Scale(column, scale)
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	w, err := d.tr.Translate(window.Rect{RowStart: row, RowEnd: row + scale - 1, ColStart: x, ColEnd: x + scale - 1})
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	if err := d.setWindow(w); err != nil {
		return err
	}
	for i := 0; i < scale; i++ {
		if err := d.sendData(scaled); err != nil {
			return err
		}
		d.store(x+i, int(w.PageStart), scaled)
	}
	return nil
}

func (d *Dev) clearRect(r window.Rect) error {
	w, err := d.tr.Translate(r)
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	if err := d.setWindow(w); err != nil {
		return err
	}
	zeros := make([]byte, w.Cols()*w.Pages())
	if err := d.sendData(zeros); err != nil {
		return err
	}
	for col := int(w.ColStart); col <= int(w.ColEnd); col++ {
		d.store(col, int(w.PageStart), zeros[:w.Pages()])
	}
	return nil
}

func (d *Dev) setWindow(w window.Window) error {
	return d.sendCommand([]byte{_COLUMNADDR, w.ColStart, w.ColEnd, _PAGEADDR, w.PageStart, w.PageEnd})
}

// store records in the shadow buffer data written to column col from page
// on.
func (d *Dev) store(col, page int, data []byte) {
	pageSize := d.rect.Dx()
	for i, b := range data {
		d.buffer[(page+i)*pageSize+col] = b
	}
}

// unpack fills img from the shadow buffer; it is the inverse of pack.
func (d *Dev) unpack(img *image.Gray) {
	pageSize := d.rect.Dx()
	for y := 0; y < d.rect.Dy(); y++ {
		offset := d.tr.RowToPage(y/8) * pageSize
		mask := byte(0x80) >> uint(y&7)
		row := img.Pix[y*img.Stride : y*img.Stride+pageSize]
		for x := range row {
			if d.buffer[offset+x]&mask != 0 {
				row[x] = 0xFF
			} else {
				row[x] = 0
			}
		}
	}
}

// pack converts img into the GDDRAM layout.
func (d *Dev) pack(dst []byte, img *image.Gray) {
	for i := range dst {
		dst[i] = 0
	}
	pageSize := d.rect.Dx()
	for y := 0; y < d.rect.Dy(); y++ {
		offset := d.tr.RowToPage(y/8) * pageSize
		mask := byte(0x80) >> uint(y&7)
		for x := 0; x < pageSize; x++ {
			if img.GrayAt(x, y).Y >= 0x80 {
				dst[offset+x] |= mask
			}
		}
	}
}

func (d *Dev) calculateSubset(next []byte) (int, int, int, int, bool) {
	w := d.rect.Dx()
	h := d.rect.Dy()
	startPage := 0
	endPage := h / 8
	startCol := 0
	endCol := w
	if d.scrolled {
		// Painting disable scrolling but if scrolling was enabled, this requires a
		// full screen redraw.
		d.scrolled = false
		return startPage, endPage, startCol, endCol, false
	}
	// Calculate the smallest square that need to be sent.
	pageSize := w

	// Bottom.
	for ; startPage < endPage; startPage++ {
		x := pageSize * startPage
		y := pageSize * (startPage + 1)
		if !bytes.Equal(d.buffer[x:y], next[x:y]) {
			break
		}
	}
	// Top.
	for ; endPage > startPage; endPage-- {
		x := pageSize * (endPage - 1)
		y := pageSize * endPage
		if !bytes.Equal(d.buffer[x:y], next[x:y]) {
			break
		}
	}
	if startPage == endPage {
		// Early exit, the image is exactly the same.
		return 0, 0, 0, 0, true
	}

	// Left.
	for ; startCol < endCol; startCol++ {
		if !d.columnEqual(next, startCol, startPage, endPage) {
			break
		}
	}
	// Right.
	for ; endCol > startCol; endCol-- {
		if !d.columnEqual(next, endCol-1, startPage, endPage) {
			break
		}
	}
	return startPage, endPage, startCol, endCol, false
}

func (d *Dev) columnEqual(next []byte, col, startPage, endPage int) bool {
	pageSize := d.rect.Dx()
	for i := startPage; i < endPage; i++ {
		if x := i*pageSize + col; d.buffer[x] != next[x] {
			return false
		}
	}
	return true
}

// drawInternal sends image data to the controller.
func (d *Dev) drawInternal(next []byte) error {
	startPage, endPage, startCol, endCol, skip := d.calculateSubset(next)
	if skip {
		return nil
	}
	copy(d.buffer, next)

	// The changed pages are expressed back as logical rows, the last page
	// being the top row.
	w, err := d.tr.Translate(window.Rect{
		RowStart: d.tr.PageToRow(endPage - 1),
		RowEnd:   d.tr.PageToRow(startPage),
		ColStart: startCol,
		ColEnd:   endCol - 1,
	})
	if err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	if err := d.setWindow(w); err != nil {
		return err
	}
	// Vertical addressing: all the pages of a column, then the next column.
	pageSize := d.rect.Dx()
	data := make([]byte, 0, w.Cols()*w.Pages())
	for col := startCol; col < endCol; col++ {
		for page := startPage; page < endPage; page++ {
			data = append(data, d.buffer[page*pageSize+col])
		}
	}
	return d.sendData(data)
}

func (d *Dev) sendData(c []byte) error {
	if d.halted {
		// Transparently enable the display.
		if err := d.sendCommand(nil); err != nil {
			return err
		}
	}
	if d.spi {
		// 4-wire SPI.
		if err := d.dc.Out(gpio.High); err != nil {
			return err
		}
		return d.c.Tx(c, nil)
	}
	return d.c.Tx(append([]byte{i2cData}, c...), nil)
}

func (d *Dev) sendCommand(c []byte) error {
	if d.halted {
		// Transparently enable the display.
		c = append([]byte{_DISPLAYON}, c...)
		d.halted = false
	}
	if d.spi {
		if d.dc == nil {
			// 3-wire SPI.
			return fmt.Errorf("ssd1306: 3-wire SPI mode is not yet implemented")
		}
		// 4-wire SPI.
		if err := d.dc.Out(gpio.Low); err != nil {
			return err
		}
		return d.c.Tx(c, nil)
	}
	return d.c.Tx(append([]byte{i2cCmd}, c...), nil)
}

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

var _ display.Drawer = &Dev{}
