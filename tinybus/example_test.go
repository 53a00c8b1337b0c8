// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinybus_test

import (
	"log"

	"github.com/GermanBionicSystems/oledtext/ssd1306"
	"github.com/GermanBionicSystems/oledtext/tinybus"
	"tinygo.org/x/drivers"
)

func Example() {
	// On a board, this is machine.I2C0 after machine.I2C0.Configure().
	var machineI2C drivers.I2C

	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewI2C(tinybus.New("I2C0", machineI2C), &opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.WriteString("Hello", 2, 0, 0); err != nil {
		log.Fatal(err)
	}
}
