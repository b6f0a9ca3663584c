// Package segment maps digits and a few symbols to 7-segment LED patterns.
package segment

// Segment identifies one LED segment of a digit.
//
//	 AAA
//	F   B
//	 GGG
//	E   C
//	 DDD  DP
type Segment uint8

const (
	A Segment = iota
	B
	C
	D
	E
	F
	G
	DP
)

// Segments lists A-G in wiring order. DP is not part of a glyph.
var Segments = [...]Segment{A, B, C, D, E, F, G}

func (s Segment) String() string {
	if s > DP {
		return "?"
	}
	return [...]string{"A", "B", "C", "D", "E", "F", "G", "DP"}[s]
}

// Pattern is a set of lit segments, bit n set for Segment n.
type Pattern uint8

// Blank lights nothing.
const Blank Pattern = 0

// Of builds a pattern from individual segments.
func Of(segs ...Segment) Pattern {
	var p Pattern
	for _, s := range segs {
		p = p.With(s)
	}
	return p
}

// Lit reports whether segment s is on.
func (p Pattern) Lit(s Segment) bool {
	return p&(1<<s) != 0
}

// With returns p with segment s turned on.
func (p Pattern) With(s Segment) Pattern {
	return p | 1<<s
}

// Without returns p with segment s turned off.
func (p Pattern) Without(s Segment) Pattern {
	return p &^ (1 << s)
}

// Glyph returns p without the decimal point.
func (p Pattern) Glyph() Pattern {
	return p.Without(DP)
}

func (p Pattern) String() string {
	var out []byte
	for s := A; s <= DP; s++ {
		if p.Lit(s) {
			out = append(out, s.String()...)
		}
	}
	if len(out) == 0 {
		return "-none-"
	}
	return string(out)
}
