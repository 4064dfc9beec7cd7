// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a seven segment display chain emulator that
// renders to the terminal (stdout) using ANSI color codes.
//
// It stands in for the real shift register boards: it accepts the same SPI
// bitstream and latch signaling as the hardware chain, so a hexchain.Dev can
// drive it unmodified. Useful while you are waiting for your shift register
// boards to come by mail.
package termview

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Segment bits as they appear on the wire. Bits 0-6 are segments A-G, bit 7
// the decimal point.
const (
	segA byte = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
	segDP
)

// Each digit is drawn as a 3 row by 5 column cell grid. A zero cell is
// always blank.
var digitCells = [3][5]byte{
	{0, segA, segA, 0, 0},
	{segF, segG, segG, segB, 0},
	{segE, segD, segD, segC, segDP},
}

// Opts represents the options available for this emulator.
type Opts struct {
	// Digits is the number of chained display digits. Defaults to 32.
	Digits int
	// W receives the rendered frames. Defaults to a colorable stdout.
	W io.Writer
	// Palette resolves colors to ANSI codes.
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a display chain emulator that outputs to the console.
//
// It implements spi.Port and spi.Conn for the bitstream and exposes the
// chain latch as a gpio.PinOut through Latch. Bytes received while the latch
// is low are shifted through the emulated registers; raising the latch
// presents them, which repaints the console. The display member furthest
// down the chain (the first byte of a full transfer) is drawn leftmost.
type Dev struct {
	w       io.Writer
	n       int
	palette ansi256.Palette

	shift   []byte // bytes received since the capture window opened
	frame   []byte // latched register outputs, one byte per digit
	capture bool
	frames  int
	buf     bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits to do local testing of display chain animations.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	n := opts.Digits
	if n <= 0 {
		n = 32
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{
		w:       w,
		n:       n,
		palette: *p,
		frame:   make([]byte, n),
	}
}

func (d *Dev) String() string {
	return "termview"
}

// Connect implements spi.Port. The bus parameters are irrelevant to the
// emulation and are ignored.
func (d *Dev) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	return d, nil
}

// Tx implements conn.Conn. Written bytes are shifted into the emulated
// registers; nothing is ever read back.
func (d *Dev) Tx(w, r []byte) error {
	if d.capture {
		d.shift = append(d.shift, w...)
	}
	return nil
}

// TxPackets implements spi.Conn.
func (d *Dev) TxPackets(p []spi.Packet) error {
	for i := range p {
		if err := d.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

// Duplex implements conn.Conn.
func (d *Dev) Duplex() conn.Duplex {
	return conn.Half
}

// Flush implements the optional flush contract of the driver's port. The
// emulated wire is never backed up.
func (d *Dev) Flush() error {
	return nil
}

// Frame returns a copy of the currently latched register outputs, one byte
// per digit.
func (d *Dev) Frame() []byte {
	f := make([]byte, len(d.frame))
	copy(f, d.frame)
	return f
}

// Latch returns the chain latch line. Driving it low opens the register
// capture window; driving it high latches the shifted bytes and repaints
// the console.
func (d *Dev) Latch() *Pin {
	return &Pin{name: "TERMVIEW_LATCH", dev: d}
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// latch handles one edge of the latch line.
func (d *Dev) latch(high bool) error {
	if !high {
		d.capture = true
		d.shift = d.shift[:0]
		return nil
	}
	if !d.capture {
		// Idle-high from initialization. Nothing was shifted.
		return nil
	}
	d.capture = false
	// Only the last n bytes remain in the registers; earlier ones fell off
	// the far end of the chain.
	data := d.shift
	if len(data) > d.n {
		data = data[len(data)-d.n:]
	}
	copy(d.frame, data)
	return d.refresh()
}

var (
	litColor   = color.NRGBA{R: 255, G: 64, B: 0, A: 255}
	unlitColor = color.NRGBA{R: 40, G: 8, B: 0, A: 255}
)

// refresh repaints the whole chain. This code is designed to minimize the
// amount of memory allocated per call.
func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.frames > 0 {
		// Repaint over the previous frame.
		_, _ = d.buf.WriteString("\033[3A")
	}
	d.frames++
	for row := 0; row < 3; row++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for i := 0; i < d.n; i++ {
			for col := 0; col < 5; col++ {
				seg := digitCells[row][col]
				switch {
				case seg == 0:
					_ = d.buf.WriteByte(' ')
				case d.frame[i]&seg != 0:
					_, _ = io.WriteString(&d.buf, d.palette.Block(litColor))
				default:
					_, _ = io.WriteString(&d.buf, d.palette.Block(unlitColor))
				}
			}
			_ = d.buf.WriteByte(' ')
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ spi.Port = (*Dev)(nil)
var _ spi.Conn = (*Dev)(nil)
var _ conn.Resource = (*Dev)(nil)
