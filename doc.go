// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oledtext writes scaled 8x8 text to SSD1306 OLED panels.
//
// The driver lives in ssd1306, with its building blocks in subpackages:
// ssd1306/glyph magnifies font columns, ssd1306/window maps text rows to the
// controller's mirrored pages, ssd1306/font8x8 holds the fonts and
// ssd1306/ssd1306test simulates the controller. Package tinybus runs the
// driver on TinyGo boards and cmd/oledtext drives a panel from the shell.
package oledtext
