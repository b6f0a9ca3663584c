// Package accel turns accelerometer readings into the g values shown in
// the g display modes.
package accel

import "github.com/chewxy/math32"

// MaxTenths is the largest magnitude a two digit field can show (9.9 g).
const MaxTenths = 99

// G is an acceleration rounded to tenths of g.
type G struct {
	Tenths   uint8 // magnitude, 0..MaxTenths
	Negative bool
}

// Tens returns the whole g digit.
func (g G) Tens() uint { return uint(g.Tenths) / 10 }

// Ones returns the tenths digit.
func (g G) Ones() uint { return uint(g.Tenths) % 10 }

// GConverter maps a raw axis reading to g.
type GConverter struct {
	Zero       uint16  // reading at rest, 0 g
	CountsPerG float32 // reading change for 1 g
}

// Convert returns the acceleration for raw. A converter without a scale
// reads 0 g.
func (c GConverter) Convert(raw uint16) G {
	if c.CountsPerG <= 0 {
		return G{}
	}
	g := (float32(raw) - float32(c.Zero)) / c.CountsPerG
	tenths := math32.Min(math32.Round(math32.Abs(g)*10), MaxTenths)
	return G{
		Tenths:   uint8(tenths),
		Negative: g < 0 && tenths > 0,
	}
}

// Float returns g as a signed value.
func (g G) Float() float32 {
	v := float32(g.Tenths) / 10
	if g.Negative {
		return -v
	}
	return v
}
