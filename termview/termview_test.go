// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termview

import (
	"bytes"
	"testing"

	"github.com/GermanBionicSystems/hexchain"
	"periph.io/x/conn/v3/gpio"
)

func TestLatchedFrame(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Digits: 4, W: &out})
	latch := d.Latch()

	if err := latch.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := d.Tx([]byte{0x7f, 0x06, 0x00, 0x80}, nil); err != nil {
		t.Fatal(err)
	}
	if err := latch.Out(gpio.High); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(d.frame, []byte{0x7f, 0x06, 0x00, 0x80}) {
		t.Errorf("frame = %#v", d.frame)
	}
	if out.Len() == 0 {
		t.Error("latching produced no console output")
	}
}

func TestShiftOverflow(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Digits: 2, W: &out})
	latch := d.Latch()

	_ = latch.Out(gpio.Low)
	_ = d.Tx([]byte{0x01, 0x02, 0x03, 0x04}, nil)
	_ = latch.Out(gpio.High)

	// Only the last two bytes stay in a two register chain.
	if !bytes.Equal(d.frame, []byte{0x03, 0x04}) {
		t.Errorf("frame = %#v, expected the last 2 shifted bytes", d.frame)
	}
}

func TestIdleHighNoOutput(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Digits: 4, W: &out})

	// Initialization drives the latch high without a capture window; nothing
	// must be painted.
	if err := d.Latch().Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("idle high painted %d bytes", out.Len())
	}
}

func TestTxOutsideCaptureWindow(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Digits: 2, W: &out})

	_ = d.Tx([]byte{0xff, 0xff}, nil)
	_ = d.Latch().Out(gpio.High)
	if !bytes.Equal(d.frame, []byte{0x00, 0x00}) {
		t.Errorf("frame = %#v, expected bytes outside the capture window to be dropped", d.frame)
	}
}

func TestWithDriver(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Digits: hexchain.ChainLength, W: &out})

	dev, err := hexchain.New(d, d.Latch(), nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.Set(hexchain.AllOn())
	dev.Set(hexchain.Values([hexchain.DataLength]byte{0x21}))
	if err := dev.Show(); err != nil {
		t.Fatal(err)
	}

	// Digit 0 shows 1, digit 1 shows 2, the rest show 0.
	if d.frame[0] != 0x06 {
		t.Errorf("digit 0 = %#02x, expected %#02x", d.frame[0], 0x06)
	}
	if d.frame[1] != 0x5b {
		t.Errorf("digit 1 = %#02x, expected %#02x", d.frame[1], 0x5b)
	}
	for i := 2; i < hexchain.ChainLength; i++ {
		if d.frame[i] != 0x3f {
			t.Errorf("digit %d = %#02x, expected %#02x", i, d.frame[i], 0x3f)
		}
	}
}

func TestRepaintMovesCursorUp(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Digits: 1, W: &out})
	latch := d.Latch()

	_ = latch.Out(gpio.Low)
	_ = d.Tx([]byte{0x3f}, nil)
	_ = latch.Out(gpio.High)
	first := out.Len()

	_ = latch.Out(gpio.Low)
	_ = d.Tx([]byte{0x3f}, nil)
	_ = latch.Out(gpio.High)

	second := out.Bytes()[first:]
	if !bytes.HasPrefix(second, []byte("\033[3A")) {
		t.Error("second frame does not repaint over the first")
	}
}
