// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hexchain drives a chain of shift register linked seven segment
// displays over SPI.
//
// Each display digit is fed by one 8-bit shift register. The registers are
// daisy-chained, so the whole chain is refreshed by shifting out one byte per
// digit and then toggling a shared latch line to present the new bits on the
// register outputs. Every byte of display data holds two hexadecimal digits,
// one per nibble.
//
// # Display Segment Organization
//
//	    A
//	   ---
//	F | G | B
//	   ---
//	E |   | C
//	   --- o
//	    D  DP
//
// Bits 0 through 6 of a bitstream byte map to segments A through G; bit 7 is
// the decimal point.
package hexchain
