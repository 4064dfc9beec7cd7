// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config describes the wiring of the display chain.
type config struct {
	// SPI is the periph SPI port name. Empty selects the first available
	// port.
	SPI string `yaml:"spi"`
	// Latch is the periph name of the latch/chip select pin.
	Latch string `yaml:"latch"`
	// Hz is the SPI frequency. Zero uses the driver default.
	Hz int `yaml:"hz"`
}

func defaultConfig() *config {
	return &config{Latch: "GPIO13"}
}

func loadConfig(path string) (*config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Hz < 0 {
		return nil, fmt.Errorf("%s: hz must not be negative", path)
	}
	if cfg.Latch == "" {
		return nil, fmt.Errorf("%s: a latch pin is required", path)
	}
	return cfg, nil
}

// override applies non-empty flag values on top of the file configuration.
func (c *config) override(spi, latch string, hz int) {
	if spi != "" {
		c.SPI = spi
	}
	if latch != "" {
		c.Latch = latch
	}
	if hz != 0 {
		c.Hz = hz
	}
}
