// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 renders scaled 8x8 text on a monochrome OLED display driven
// by a SSD1306 controller.
//
// The controller is configured in vertical addressing mode. Each glyph
// column is magnified by package glyph and positioned through the address
// window computed by package window, then streamed to the controller. The
// panel is expected to be wired with its page axis mirrored, so the top text
// row is the controller's last page.
//
// The driver also implements display.Drawer and does differential updates:
// it only sends modified pixels for the smallest rectangle, to economize bus
// bandwidth. This is especially important when using I²C as the bus default
// speed (often 100kHz) is slow enough to saturate the bus at less than 10
// frames per second.
//
// The device can be driven on either I²C or SPI with 4 wires. Changing
// between protocol is likely done through resistor soldering, for boards that
// support both.
//
// Some boards expose a RES / Reset pin. If present, it must be normally be
// High. When set to Low (Ground), it enables the reset circuitry. It can be
// used externally to this driver, if used, the driver must be reinstantiated.
//
// # Datasheets
//
// Product page:
//
// http://www.solomon-systech.com/en/product/display-ic/oled-driver-controller/ssd1306/
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
