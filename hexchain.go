// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hexchain

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	// ChainLength is the maximum display chain length (number of hex digits).
	ChainLength = 32
	// DataLength is the maximum size of buffer that can be displayed (each
	// nibble corresponds to one display digit).
	DataLength = ChainLength / 2
)

// ErrBusy is returned by Show if the transfer resources are not at rest,
// which can only happen if Show is somehow re-entered mid-transfer.
var ErrBusy = errors.New("hexchain: transfer already in progress")

// Update describes one change to the driver's internal display state. The
// five variants are constructed with AllOn, AllOff, On, DecimalPoints and
// Values.
type Update interface {
	apply(d *Dev)
}

type allOn struct{}

func (allOn) apply(d *Dev) {
	for i := range d.on {
		d.on[i] = true
	}
}

// AllOn turns on all digits. Decimal points are unaffected.
func AllOn() Update {
	return allOn{}
}

type allOff struct{}

func (allOff) apply(d *Dev) {
	d.on = [ChainLength]bool{}
}

// AllOff turns off (blanks) all digits. Decimal points are unaffected.
func AllOff() Update {
	return allOff{}
}

type onMask [ChainLength]bool

func (m onMask) apply(d *Dev) {
	d.on = m
}

// On turns on the digits marked true and blanks all others. Decimal points
// are unaffected.
func On(mask [ChainLength]bool) Update {
	return onMask(mask)
}

type pointMask [ChainLength]bool

func (m pointMask) apply(d *Dev) {
	for i := range m {
		if m[i] {
			d.points[i] = DecimalPoint
		} else {
			d.points[i] = 0
		}
	}
}

// DecimalPoints sets the decimal point for the digits marked true and clears
// it for all others.
func DecimalPoints(mask [ChainLength]bool) Update {
	return pointMask(mask)
}

type values [DataLength]byte

func (v values) apply(d *Dev) {
	d.data = v
}

// Values provides the data to display for all digits. Digit 2i shows the low
// nibble of byte i, digit 2i+1 the high nibble.
func Values(data [DataLength]byte) Update {
	return values(data)
}

// Opts holds the configuration for a display chain.
type Opts struct {
	// Frequency is the SPI bus speed. Defaults to 32MHz, the highest rate
	// the reference shift register boards shift reliably at.
	Frequency physic.Frequency
	// Indexer generates the character table lookup indices for each byte of
	// display data. Defaults to NibbleIndexer. Supply a hardware backed
	// implementation here on platforms that have one.
	Indexer Indexer
	// Channel performs the bitstream block transfer. Defaults to a
	// goroutine backed channel.
	Channel Channel
}

// Dev is a handle for a chain of shift register driven seven segment
// displays.
type Dev struct {
	latch gpio.PinOut
	idx   Indexer

	mu sync.Mutex
	// port, ch and bits are held here while at rest and are taken out of the
	// struct for the duration of each Show call.
	port spi.Conn
	ch   Channel
	bits *[ChainLength]byte

	// On state of each display chain member.
	on [ChainLength]bool
	// Decimal point contribution of each display chain member.
	points [ChainLength]byte
	// Data to be displayed as hexadecimal.
	data [DataLength]byte
}

// flusher matches connections that can wait for queued bytes to physically
// leave the wire. periph SPI connections are synchronous so they do not need
// one, but emulated or buffered ports do.
type flusher interface {
	Flush() error
}

// New returns a display chain driver using the given SPI port with the given
// latch (chip select) pin.
//
// The latch pin is driven to its idle high level. Nothing is written to the
// chain until Show is called. opts can be nil to use the defaults.
func New(p spi.Port, latch gpio.PinOut, opts *Opts) (*Dev, error) {
	if latch == nil {
		return nil, errors.New("hexchain: a latch pin is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	f := opts.Frequency
	if f == 0 {
		f = 32 * physic.MegaHertz
	}
	idx := opts.Indexer
	if idx == nil {
		idx = NibbleIndexer{}
	}
	ch := opts.Channel
	if ch == nil {
		ch = goChannel{}
	}

	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("hexchain: %w", err)
	}
	if err := idx.Configure(); err != nil {
		return nil, fmt.Errorf("hexchain: configuring indexer: %w", err)
	}
	if err := latch.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("hexchain: %w", err)
	}
	return &Dev{
		latch: latch,
		idx:   idx,
		port:  c,
		ch:    ch,
		bits:  new([ChainLength]byte),
	}, nil
}

// Set applies one update to the driver's internal representation of the
// display. Nothing is written to the physical chain until Show is called.
func (d *Dev) Set(u Update) {
	d.mu.Lock()
	u.apply(d)
	d.mu.Unlock()
}

// renderBits updates one byte of the bitstream from the internal state for
// that display element. The decimal point is applied whether or not the
// digit is on.
func (d *Dev) renderBits(bits *[ChainLength]byte, chainIndex int, charLookup uint8) {
	bits[chainIndex] = d.points[chainIndex]
	if d.on[chainIndex] {
		bits[chainIndex] |= charTable[charLookup]
	}
}

// Show applies the internal driver state to the physical display chain.
//
// The whole bitstream is rendered first, then shifted out in one block
// transfer framed by the latch line: low while the registers capture, high
// to present the new bits. Show blocks until the transfer channel completes
// and the port has flushed its final bytes. A failure to flush means the
// chain contents are undefined and is returned as an error; Show never
// reports success for a partial refresh.
func (d *Dev) Show() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Take exclusive ownership of the transfer resources for the duration of
	// this call.
	ch, bits, port := d.ch, d.bits, d.port
	if ch == nil || bits == nil || port == nil {
		return ErrBusy
	}
	d.ch, d.bits, d.port = nil, nil, nil
	defer func() {
		d.ch, d.bits, d.port = ch, bits, port
	}()

	for i := 0; i < DataLength; i++ {
		hi, lo := d.idx.Lookup(d.data[i])

		chainIndex := i * 2
		d.renderBits(bits, chainIndex, lo)
		d.renderBits(bits, chainIndex+1, hi)
	}

	if err := d.latch.Out(gpio.Low); err != nil {
		return fmt.Errorf("hexchain: %w", err)
	}
	t, err := ch.Start(bits[:], port)
	if err != nil {
		return fmt.Errorf("hexchain: %w", err)
	}
	if err := t.Wait(); err != nil {
		return fmt.Errorf("hexchain: %w", err)
	}
	// Channel completion only guarantees the buffer left the transfer
	// source. Wait for the port to finish clocking out as well.
	if f, ok := port.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("hexchain: flush: %w", err)
		}
	}
	if err := d.latch.Out(gpio.High); err != nil {
		return fmt.Errorf("hexchain: %w", err)
	}
	return nil
}

// Halt blanks the display chain. It implements conn.Resource.
func (d *Dev) Halt() error {
	d.Set(AllOff())
	d.Set(DecimalPoints([ChainLength]bool{}))
	return d.Show()
}

func (d *Dev) String() string {
	return fmt.Sprintf("hexchain.Dev{%d digits}", ChainLength)
}

var _ conn.Resource = (*Dev)(nil)
var _ fmt.Stringer = (*Dev)(nil)
