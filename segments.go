// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hexchain

const (
	// Bits corresponding to display segments "A" through "G".
	segA byte = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
	// DecimalPoint is the bitstream bit corresponding to a digit's decimal
	// point.
	DecimalPoint
)

// charTable constructs each hexadecimal character using the most appropriate
// display segments. The exact patterns are fixed by the board wiring; do not
// "simplify" an entry without checking the glyph on real hardware.
var charTable = [16]byte{
	^(segG | DecimalPoint),               // 0x0
	segB | segC,                          // 0x1
	^(segC | segF | DecimalPoint),        // 0x2
	^(segE | segF | DecimalPoint),        // 0x3
	^(segA | segD | segE | DecimalPoint), // 0x4
	^(segB | segE | DecimalPoint),        // 0x5
	^(segB | DecimalPoint),               // 0x6
	segA | segB | segC,                   // 0x7
	^DecimalPoint,                        // 0x8
	^(segE | DecimalPoint),               // 0x9
	^(segD | DecimalPoint),               // 0xA
	^(segA | segB | DecimalPoint),        // 0xb
	segA | segF | segE | segD,            // 0xC
	^(segA | segF | DecimalPoint),        // 0xd
	^(segB | segC | DecimalPoint),        // 0xE
	^(segB | segC | segD | DecimalPoint), // 0xF
}
