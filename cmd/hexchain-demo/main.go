// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// hexchain-demo drives a chain of shift register linked seven segment
// displays: it blinks all decimal points three times, then shows a rolling
// counter on the first digit pair.
//
// With -term the demo renders to the terminal instead of real hardware,
// which requires neither periph host support nor a wired up chain.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/hexchain"
	"github.com/GermanBionicSystems/hexchain/segimage"
	"github.com/GermanBionicSystems/hexchain/termview"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	configPath = flag.String("config", "", "YAML configuration file, overridden by the other flags")
	spiBus     = flag.String("spi", "", "SPI port name (empty for the first available)")
	latchName  = flag.String("latch", "", "latch/chip select pin name")
	hz         = flag.Int("hz", 0, "SPI frequency in Hz")
	term       = flag.Bool("term", false, "emulate the chain in the terminal instead of using hardware")
	snapshot   = flag.String("snapshot", "", "write a PNG of the final frame to this file on exit (-term only)")
	interval   = flag.Duration("interval", 500*time.Millisecond, "demo step interval")
)

func main() {
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	cfg.override(*spiBus, *latchName, *hz)

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config) error {
	var port spi.Port
	var latch gpio.PinOut
	var view *termview.Dev

	if *term {
		view = termview.New(&termview.Opts{Digits: hexchain.ChainLength})
		port = view
		latch = view.Latch()
		defer view.Halt()
	} else {
		var err error
		var closer func()
		if port, latch, closer, err = openHardware(cfg); err != nil {
			return err
		}
		defer closer()
	}

	opts := &hexchain.Opts{}
	if cfg.Hz > 0 {
		opts.Frequency = physic.Frequency(cfg.Hz) * physic.Hertz
	}
	dev, err := hexchain.New(port, latch, opts)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	// Blink all of the decimal points three times on startup.
	decimals := [hexchain.ChainLength]bool{}
	for i := range decimals {
		decimals[i] = true
	}
	for range 3 {
		dev.Set(hexchain.DecimalPoints(decimals))
		if err := dev.Show(); err != nil {
			return err
		}
		time.Sleep(*interval)

		dev.Set(hexchain.DecimalPoints([hexchain.ChainLength]bool{}))
		if err := dev.Show(); err != nil {
			return err
		}
		time.Sleep(*interval)
	}

	// Rolling counter on the first digit pair.
	dev.Set(hexchain.AllOn())
	var bytes [hexchain.DataLength]byte
	tick := time.NewTicker(*interval)
	defer tick.Stop()
	for {
		dev.Set(hexchain.Values(bytes))
		if err := dev.Show(); err != nil {
			return err
		}
		bytes[0]++

		select {
		case <-stop:
			if *snapshot != "" && view != nil {
				return writeSnapshot(*snapshot, view.Frame())
			}
			return dev.Halt()
		case <-tick.C:
		}
	}
}

func openHardware(cfg *config) (spi.Port, gpio.PinOut, func(), error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, nil, err
	}
	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, nil, nil, err
	}
	latch := gpioreg.ByName(cfg.Latch)
	if latch == nil {
		port.Close()
		return nil, nil, nil, fmt.Errorf("latch pin %q not found", cfg.Latch)
	}
	return port, latch, func() { port.Close() }, nil
}

func writeSnapshot(path string, frame []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img := segimage.Render(frame, &segimage.Opts{Labels: true})
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
