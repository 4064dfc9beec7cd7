// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segimage renders seven segment display chain bitstreams into
// images.
//
// It draws the same bytes that go out on the wire to the shift registers,
// which makes it handy for golden image tests and for previewing animations
// in environments without a terminal, much like serving a graphics buffer
// over HTTP instead of owning a panel.
package segimage

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
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

// Digit cell geometry in pixels, before scaling.
const (
	digitW  = 26
	digitH  = 44
	margin  = 6
	labelH  = 16
	stroke  = 4
	segLen  = 14
	segRise = 15
)

// Opts represents the rendering options.
type Opts struct {
	// Lit is the color of a lit segment. Defaults to amber.
	Lit color.Color
	// Unlit is the color of an unlit segment. Defaults to a dim brown.
	Unlit color.Color
	// Background defaults to black.
	Background color.Color
	// Labels draws the digit index under each chain member.
	Labels bool

	_ struct{}
}

// segment endpoints within a digit cell, in unscaled pixels. The decimal
// point is drawn separately.
var segLines = [7][4]float64{
	{6, 4, 6 + segLen, 4},                               // A
	{8 + segLen, 6, 8 + segLen, 6 + segRise},            // B
	{8 + segLen, 23, 8 + segLen, 23 + segRise},          // C
	{6, 40, 6 + segLen, 40},                             // D
	{4, 23, 4, 23 + segRise},                            // E
	{4, 6, 4, 6 + segRise},                              // F
	{6, 22, 6 + segLen, 22},                             // G
}

// Render draws one image of the display chain from a transmitted bitstream,
// one byte per digit, furthest chain member first (leftmost).
func Render(bits []byte, opts *Opts) image.Image {
	if opts == nil {
		opts = &Opts{}
	}
	lit := opts.Lit
	if lit == nil {
		lit = color.NRGBA{R: 255, G: 160, B: 0, A: 255}
	}
	unlit := opts.Unlit
	if unlit == nil {
		unlit = color.NRGBA{R: 48, G: 24, B: 0, A: 255}
	}
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}

	h := digitH + 2*margin
	if opts.Labels {
		h += labelH
	}
	dc := gg.NewContext(len(bits)*digitW+2*margin, h)
	dc.SetColor(bg)
	dc.Clear()

	dc.SetLineWidth(stroke)
	dc.SetLineCapRound()
	for i, b := range bits {
		x0 := float64(margin + i*digitW)
		for seg := 0; seg < 7; seg++ {
			if b&(1<<seg) != 0 {
				dc.SetColor(lit)
			} else {
				dc.SetColor(unlit)
			}
			l := segLines[seg]
			dc.DrawLine(x0+l[0], margin+l[1], x0+l[2], margin+l[3])
			dc.Stroke()
		}
		if b&segDP != 0 {
			dc.SetColor(lit)
		} else {
			dc.SetColor(unlit)
		}
		dc.DrawCircle(x0+float64(digitW)-2, margin+digitH-2, stroke/2)
		dc.Fill()
	}

	if opts.Labels {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetColor(color.White)
		for i := range bits {
			label := strconv.Itoa(i)
			x := float64(margin + i*digitW + digitW/2)
			dc.DrawStringAnchored(label, x, float64(h-labelH/2), 0.5, 0.3)
		}
	}
	return dc.Image()
}
