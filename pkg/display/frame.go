package display

import "github.com/itohio/quadled/pkg/segment"

// Digit is a decoded decimal digit bound to a position.
type Digit struct {
	Position int
	Value    uint
}

// Decompose splits a non-negative value into digits, least significant
// first, placing the ones on position width. Zero yields a single digit.
// Digits beyond width are dropped.
func Decompose(value, width int) []Digit {
	if value < 0 {
		value = -value
	}
	var out []Digit
	pos := width
	for pos >= 1 {
		out = append(out, Digit{Position: pos, Value: uint(value % 10)})
		value /= 10
		pos--
		if value == 0 {
			break
		}
	}
	return out
}

// Number builds the frame for value right-aligned in width positions.
func Number(value, width int, point Point) Frame {
	return withPoint(numberAt(value, width), point)
}

func numberAt(value, right int) Frame {
	digits := Decompose(value, right)
	f := make(Frame, 0, len(digits))
	for _, d := range digits {
		f = append(f, Cell{Position: d.Position, Pattern: segment.Digit(d.Value)})
	}
	return f
}

// Fault is a dash on every position.
func Fault(width int) Frame {
	f := make(Frame, 0, width)
	for pos := width; pos >= 1; pos-- {
		f = append(f, Cell{Position: pos, Pattern: segment.Dash})
	}
	return f
}

// Pair shows right in the right half and left in the left half of the
// display, each saturated to what the half can hold.
func Pair(left, right, width int) Frame {
	half := width / 2
	limit := 1
	for range half {
		limit *= 10
	}
	limit--

	f := numberAt(max(0, min(right, limit)), width)
	return append(f, numberAt(max(0, min(left, limit)), width-half)...)
}

// Text places symbols from position 1 rightwards. Blank symbols are
// skipped so their positions stay dark.
func Text(point Point, symbols ...segment.Symbol) Frame {
	f := make(Frame, 0, len(symbols))
	for i, s := range symbols {
		if s == segment.SymbolBlank {
			continue
		}
		f = append(f, Cell{Position: i + 1, Pattern: segment.Encode(s)})
	}
	return withPoint(f, point)
}

func withPoint(f Frame, point Point) Frame {
	if point == NoPoint {
		return f
	}
	for i := range f {
		if f[i].Position == int(point) {
			f[i].Pattern = f[i].Pattern.With(segment.DP)
			return f
		}
	}
	return append(f, Cell{Position: int(point), Pattern: segment.Blank.With(segment.DP)})
}
