// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/oledtext/ssd1306"
	"github.com/GermanBionicSystems/oledtext/ssd1306/window"
	"github.com/fogleman/gg"
	"github.com/google/shlex"
)

var errUsage = errors.New("bad arguments")

// runner executes script lines against a display.
//
// Commands, one per line, with shell quoting and # comments:
//
//	text scale row col "string"
//	wrap scale row col "string"
//	bytes scale row col b...
//	clear [rowStart rowEnd colStart colEnd]
//	contrast level
//	invert on|off
//	logo
//	halt
type runner struct {
	dev *ssd1306.Dev
}

func (r *runner) runAll(in io.Reader) error {
	s := bufio.NewScanner(in)
	for n := 1; s.Scan(); n++ {
		if err := r.run(s.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return s.Err()
}

func (r *runner) run(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "text", "wrap":
		if len(args) < 4 {
			return fmt.Errorf("%s: %w", cmd, errUsage)
		}
		pos, err := ints(args[:3])
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		s := strings.Join(args[3:], " ")
		if cmd == "text" {
			return r.dev.WriteString(s, pos[0], pos[1], pos[2])
		}
		return r.dev.WriteStringMultiLine(s, pos[0], pos[1], pos[2])
	case "bytes":
		if len(args) < 4 {
			return fmt.Errorf("bytes: %w", errUsage)
		}
		pos, err := ints(args[:3])
		if err != nil {
			return fmt.Errorf("bytes: %w", err)
		}
		cols := make([]byte, 0, len(args)-3)
		for _, a := range args[3:] {
			v, err := strconv.ParseUint(a, 0, 8)
			if err != nil {
				return fmt.Errorf("bytes: %w", err)
			}
			cols = append(cols, byte(v))
		}
		return r.dev.WriteColumns(cols, pos[0], pos[1], pos[2])
	case "clear":
		switch len(args) {
		case 0:
			return r.dev.Clear()
		case 4:
			v, err := ints(args)
			if err != nil {
				return fmt.Errorf("clear: %w", err)
			}
			return r.dev.ClearRect(window.Rect{RowStart: v[0], RowEnd: v[1], ColStart: v[2], ColEnd: v[3]})
		default:
			return fmt.Errorf("clear: %w", errUsage)
		}
	case "contrast":
		if len(args) != 1 {
			return fmt.Errorf("contrast: %w", errUsage)
		}
		v, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return fmt.Errorf("contrast: %w", err)
		}
		return r.dev.SetContrast(byte(v))
	case "invert":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return fmt.Errorf("invert: %w", errUsage)
		}
		return r.dev.Invert(args[0] == "on")
	case "logo":
		if len(args) != 0 {
			return fmt.Errorf("logo: %w", errUsage)
		}
		img := logo(r.dev.Bounds())
		return r.dev.Draw(r.dev.Bounds(), img, image.Point{})
	case "halt":
		return r.dev.Halt()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// logo draws a framed banner the size of the panel.
func logo(b image.Rectangle) image.Image {
	w, h := float64(b.Dx()), float64(b.Dy())
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(2, 2, w-4, h-4, 6)
	dc.Stroke()
	dc.DrawStringAnchored("periph", w/2, h/2, 0.5, 0.5)
	return dc.Image()
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
