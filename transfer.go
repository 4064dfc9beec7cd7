// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hexchain

import (
	"errors"

	"periph.io/x/conn/v3"
)

// Channel moves a buffer of bytes to a connection independently of the
// caller's instruction stream, the way a DMA channel feeds an SPI TX FIFO on
// the reference hardware. A Channel is single-buffer and write-only: it never
// reads anything back from the connection.
type Channel interface {
	// Start begins moving src to dst and returns without waiting for the
	// transfer to complete.
	Start(src []byte, dst conn.Conn) (*Transfer, error)
}

// Transfer tracks one in-flight block transfer started on a Channel.
type Transfer struct {
	done chan struct{}
	err  error
}

// Wait blocks until the channel has consumed the entire source buffer.
//
// Completion only means the buffer left the transfer source. The connection
// underneath may still be clocking bits out on the wire; callers that need
// the data physically gone must flush the connection separately.
func (t *Transfer) Wait() error {
	<-t.done
	return t.err
}

// goChannel is the default Channel. It runs the bulk write on its own
// goroutine and signals completion through the Transfer.
type goChannel struct{}

func (goChannel) Start(src []byte, dst conn.Conn) (*Transfer, error) {
	if dst == nil {
		return nil, errors.New("hexchain: transfer needs a destination")
	}
	t := &Transfer{done: make(chan struct{})}
	go func() {
		t.err = dst.Tx(src, nil)
		close(t.done)
	}()
	return t, nil
}

var _ Channel = goChannel{}
