package segment

// Symbol is anything the encoder can draw. Values 0-9 are the decimal digits.
type Symbol uint8

const (
	SymbolX Symbol = iota + 10
	SymbolY
	SymbolZ
	SymbolDash
	SymbolBlank
)

var glyphs = [...]Pattern{
	0:           Of(A, B, C, D, E, F),
	1:           Of(B, C),
	2:           Of(A, B, D, E, G),
	3:           Of(A, B, C, D, G),
	4:           Of(B, C, F, G),
	5:           Of(A, C, D, F, G),
	6:           Of(A, C, D, E, F, G),
	7:           Of(A, B, C),
	8:           Of(A, B, C, D, E, F, G),
	9:           Of(A, B, C, F, G),
	SymbolX:     Of(B, C, E, F, G),
	SymbolY:     Of(B, C, D, F, G),
	SymbolZ:     Of(A, B, D, E, G),
	SymbolDash:  Of(G),
	SymbolBlank: Blank,
}

// Dash is the pattern shown for anything that cannot be drawn.
var Dash = glyphs[SymbolDash]

// Encode returns the segments that draw sym. Unknown symbols encode as Dash.
func Encode(sym Symbol) Pattern {
	if int(sym) >= len(glyphs) {
		return Dash
	}
	return glyphs[sym]
}

// Digit encodes a single decimal digit; anything above 9 is a Dash.
func Digit(v uint) Pattern {
	if v > 9 {
		return Dash
	}
	return glyphs[v]
}
