// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hexchain

// Indexer generates a pair of character table lookup indices, one per nibble,
// for a byte of display data.
//
// The reference board runs this on a SIO interpolator: two extraction lanes
// over the same 8-bit input, lane 0 masking the low nibble and lane 1
// shifting right by four before masking. Lookup is called once per data byte
// on every refresh, so implementations must be cheap and must never fail.
// Both returned indices are in [0, 15].
type Indexer interface {
	// Configure prepares the extraction lanes. It is called exactly once,
	// before the first Lookup.
	Configure() error
	// Lookup returns the (high nibble, low nibble) character table indices
	// for one byte of display data.
	Lookup(data byte) (hi, lo uint8)
}

// NibbleIndexer is the portable software Indexer. It is behaviorally
// identical to the interpolator lane setup and is the default when no
// hardware accelerated implementation is supplied.
type NibbleIndexer struct{}

// Configure implements Indexer. The software lanes need no setup.
func (NibbleIndexer) Configure() error {
	return nil
}

// Lookup implements Indexer.
func (NibbleIndexer) Lookup(data byte) (hi, lo uint8) {
	return data >> 4, data & 0x0f
}

var _ Indexer = NibbleIndexer{}
