package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_Digits(t *testing.T) {
	tests := []struct {
		digit Symbol
		want  string
	}{
		{0, "ABCDEF"},
		{1, "BC"},
		{2, "ABDEG"},
		{3, "ABCDG"},
		{4, "BCFG"},
		{5, "ACDFG"},
		{6, "ACDEFG"},
		{7, "ABC"},
		{8, "ABCDEFG"},
		{9, "ABCFG"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.digit).String())
			assert.Equal(t, Encode(tt.digit), Digit(uint(tt.digit)))
		})
	}
}

func TestEncode_Symbols(t *testing.T) {
	assert.Equal(t, "BCEFG", Encode(SymbolX).String())
	assert.Equal(t, "BCDFG", Encode(SymbolY).String())
	assert.Equal(t, "ABDEG", Encode(SymbolZ).String())
	assert.Equal(t, "G", Encode(SymbolDash).String())
	assert.Equal(t, Blank, Encode(SymbolBlank))
}

func TestEncode_UnknownIsDash(t *testing.T) {
	for _, sym := range []Symbol{SymbolBlank + 1, 42, 255} {
		assert.Equal(t, Dash, Encode(sym), "symbol %d", sym)
	}
	assert.Equal(t, Dash, Digit(10))
	assert.Equal(t, Dash, Digit(9999))
}

func TestEncode_Pure(t *testing.T) {
	for sym := 0; sym < 256; sym++ {
		assert.Equal(t, Encode(Symbol(sym)), Encode(Symbol(sym)))
	}
}

func TestPattern_Ops(t *testing.T) {
	p := Of(A, G)
	assert.True(t, p.Lit(A))
	assert.False(t, p.Lit(B))
	assert.True(t, p.With(DP).Lit(DP))
	assert.Equal(t, p, p.With(DP).Glyph())
	assert.Equal(t, Of(G), p.Without(A))
	assert.Equal(t, "-none-", Blank.String())
	assert.Equal(t, "AGDP", p.With(DP).String())
}
