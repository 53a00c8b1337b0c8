// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// oledtext writes scaled text to a SSD1306 OLED panel.
//
// Each argument after the flags is one script line; see script.go for the
// command set. Lines are also read from -script when set.
//
//	oledtext 'text 2 0 0 "Hello"' 'wrap 1 4 0 "from periph"'
//
// With -sim, no hardware is touched: the commands drive a simulated controller
// which is previewed on the console and optionally saved as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/GermanBionicSystems/oledtext/ssd1306"
	"github.com/GermanBionicSystems/oledtext/ssd1306/font8x8"
	"github.com/GermanBionicSystems/oledtext/ssd1306/ssd1306test"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/term"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	i2cName = flag.String("i2c", "", "I²C bus to use (empty for the first one)")
	addr    = flag.Uint("addr", 0x3C, "I²C address of the panel")
	spiName = flag.String("spi", "", "use this SPI port instead of I²C")
	dcName  = flag.String("dc", "", "D/C pin for 4-wire SPI")
	height  = flag.Int("h", 64, "panel height in pixels, 32 or 64")
	sim     = flag.Bool("sim", false, "drive a simulated panel instead of hardware")
	pngPath = flag.String("png", "", "with -sim, save the panel to this PNG file")
	zoom    = flag.Int("zoom", 4, "PNG pixels per panel pixel")
	ttfPath = flag.String("ttf", "", "TrueType font to use instead of the built-in 8x8 font")
	size    = flag.Float64("size", 8, "font size in points, with -ttf")
	script  = flag.String("script", "", "file containing script lines")
)

func main() {
	flag.Parse()
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}

func mainImpl() error {
	opts := ssd1306.DefaultOpts
	opts.H = *height
	opts.Addr = uint16(*addr)
	if opts.H == 32 {
		opts.Sequential = true
	}
	if *ttfPath != "" {
		b, err := os.ReadFile(*ttfPath)
		if err != nil {
			return err
		}
		if opts.Font, err = font8x8.ParseTTF(b, *size); err != nil {
			return err
		}
	}

	var (
		dev    *ssd1306.Dev
		ctrl   *ssd1306test.Controller
		closer io.Closer
		err    error
	)
	if *sim {
		ctrl = ssd1306test.New(&ssd1306test.Opts{W: opts.W, H: opts.H, Addr: opts.Addr, Rotated: true})
		dev, err = ssd1306.NewI2C(ctrl, &opts)
	} else {
		dev, closer, err = open(&opts)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	r := &runner{dev: dev}
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			return err
		}
		err = r.runAll(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	for _, line := range flag.Args() {
		if err := r.run(line); err != nil {
			return err
		}
	}

	if ctrl == nil {
		return nil
	}
	img := ctrl.Image()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if err := ssd1306test.NewTerminal(nil).Render(img); err != nil {
			return err
		}
	}
	if *pngPath != "" {
		return gg.SavePNG(*pngPath, enlarge(img, *zoom))
	}
	return nil
}

// open connects to a real panel.
func open(opts *ssd1306.Opts) (*ssd1306.Dev, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	if *spiName != "" {
		p, err := spireg.Open(*spiName)
		if err != nil {
			return nil, nil, err
		}
		var dc gpio.PinOut
		if *dcName != "" {
			pin := gpioreg.ByName(*dcName)
			if pin == nil {
				p.Close()
				return nil, nil, fmt.Errorf("gpio pin %s not found", *dcName)
			}
			dc = pin
		}
		dev, err := ssd1306.NewSPI(p, dc, opts)
		if err != nil {
			p.Close()
			return nil, nil, err
		}
		return dev, p, nil
	}
	b, err := i2creg.Open(*i2cName)
	if err != nil {
		return nil, nil, err
	}
	dev, err := ssd1306.NewI2C(b, opts)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return dev, b, nil
}

// enlarge scales img by z without smoothing so panel pixels stay square.
func enlarge(img image.Image, z int) image.Image {
	if z < 1 {
		z = 1
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*z, b.Dy()*z))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
