// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hexchain

import "testing"

func TestNibbleIndexer(t *testing.T) {
	var idx NibbleIndexer
	if err := idx.Configure(); err != nil {
		t.Fatal(err)
	}
	for b := 0; b <= 0xff; b++ {
		hi, lo := idx.Lookup(byte(b))
		if lo != uint8(b&0x0f) {
			t.Errorf("Lookup(%#02x) lo = %#x, expected %#x", b, lo, b&0x0f)
		}
		if hi != uint8(b>>4) {
			t.Errorf("Lookup(%#02x) hi = %#x, expected %#x", b, hi, b>>4)
		}
	}
}
