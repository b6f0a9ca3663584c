package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/itohio/quadled/pkg/hal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(values ...uint16) Source {
	i := 0
	return func() (uint16, error) {
		v := values[i%len(values)]
		i++
		return v, nil
	}
}

func TestGate(t *testing.T) {
	tests := []struct {
		name             string
		prev, next, band uint16
		want             uint16
	}{
		{"below band up", 500, 505, 6, 500},
		{"below band down", 500, 495, 6, 500},
		{"at band up", 500, 506, 6, 506},
		{"at band down", 500, 494, 6, 494},
		{"prev smaller than band", 3, 0, 6, 3},
		{"prev smaller than band, big jump", 3, 9, 6, 9},
		{"zero band passes", 10, 11, 0, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Gate(tt.prev, tt.next, tt.band))
		})
	}
}

func TestGate_NeverMovesLessThanBand(t *testing.T) {
	const band = 7
	prev := uint16(512)
	for next := uint16(400); next < 620; next++ {
		got := Gate(prev, next, band)
		d := absDiff(got, prev)
		assert.True(t, d == 0 || d >= band, "prev=%d next=%d got=%d", prev, next, got)
	}
}

func TestRunningAverage_Formula(t *testing.T) {
	f := NewRunningAverage(10, 100)
	// (100*10 + 210) / 11 = 110
	assert.Equal(t, uint16(110), f.Update(210))
	// (110*10 + 0) / 11 = 100
	assert.Equal(t, uint16(100), f.Update(0))
	assert.Equal(t, uint16(100), f.Value())
}

func TestRunningAverage_NoOverflow(t *testing.T) {
	f := NewRunningAverage(1000, 1023)
	assert.Equal(t, uint16(1023), f.Update(1023))
}

func TestRunningAverage_Converges(t *testing.T) {
	f := NewRunningAverage(9, 100)
	var out []uint16
	for _, raw := range []uint16{100, 102, 98, 101, 99} {
		out = append(out, f.Update(raw))
	}
	// Truncation settles at 99 for a mean of 100: the output moves one way
	// and stays within a count.
	assert.Equal(t, []uint16{100, 100, 99, 99, 99}, out)
	for i, v := range out {
		assert.InDelta(t, 100, v, 1)
		if i > 0 {
			assert.LessOrEqual(t, v, out[i-1], "step %d reversed: %v", i, out)
		}
	}
}

func TestRunningAverage_ConvergesFromAfar(t *testing.T) {
	f := NewRunningAverage(9, 0)
	dist := func(v uint16) int { return max(int(v)-100, 100-int(v)) }

	prev := dist(f.Value())
	for range 60 {
		d := dist(f.Update(100))
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
	assert.LessOrEqual(t, prev, 10)
}

func TestRunningAverage_StaysWithinSeenRange(t *testing.T) {
	samples := []uint16{700, 720, 650, 690, 710, 705, 660, 699}
	f := NewRunningAverage(4, samples[0])
	lo, hi := samples[0], samples[0]
	for _, raw := range samples[1:] {
		lo, hi = min(lo, raw), max(hi, raw)
		v := f.Update(raw)
		assert.GreaterOrEqual(t, v, lo)
		assert.LessOrEqual(t, v, hi)
	}
}

func TestRunningAverage_SourceError(t *testing.T) {
	f := NewRunningAverage(3, 42)
	boom := errors.New("boom")
	v, err := f.Next(func() (uint16, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint16(42), v)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		window []uint16
		even   EvenPolicy
		want   uint16
	}{
		{"single", []uint16{17}, EvenAverage, 17},
		{"odd", []uint16{9, 1, 5}, EvenAverage, 5},
		{"odd duplicates", []uint16{4, 4, 1, 4, 9}, EvenAverage, 4},
		{"even average", []uint16{10, 40, 20, 30}, EvenAverage, 25},
		{"even average truncates", []uint16{10, 21, 30, 40}, EvenAverage, 25},
		{"even lower", []uint16{10, 40, 20, 30}, EvenLower, 20},
		{"even upper", []uint16{10, 40, 20, 30}, EvenUpper, 30},
		{"pair", []uint16{1023, 1021}, EvenAverage, 1022},
		{"empty", nil, EvenAverage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Median(tt.window, tt.even))
		})
	}
}

func TestMedian_TwelveStaysInBounds(t *testing.T) {
	w := []uint16{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	// middle pair is 6 and 7
	assert.Equal(t, uint16(6), Median(w, EvenAverage))
}

func TestParseEvenPolicy(t *testing.T) {
	for _, name := range []string{"average", "lower", "upper"} {
		p, err := ParseEvenPolicy(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.String())
	}
	p, err := ParseEvenPolicy("")
	require.NoError(t, err)
	assert.Equal(t, EvenAverage, p)

	_, err = ParseEvenPolicy("middle")
	assert.Error(t, err)
}

func TestMedianOfN_SettlesBetweenReads(t *testing.T) {
	var slept []time.Duration
	f := NewMedianOfN(5, 0, EvenAverage, time.Millisecond, func(d time.Duration) { slept = append(slept, d) })

	v, err := f.Next(seq(9, 3, 7, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, uint16(5), v)
	assert.Len(t, slept, 4)
}

func TestMedianOfN_BandHolds(t *testing.T) {
	f := NewMedianOfN(3, 6, EvenAverage, 0, nil)
	f.Reset(500)

	v, err := f.Next(seq(503, 504, 502))
	require.NoError(t, err)
	assert.Equal(t, uint16(500), v, "3 counts is inside the band")

	v, err = f.Next(seq(510, 507, 520))
	require.NoError(t, err)
	assert.Equal(t, uint16(510), v)
	assert.Equal(t, uint16(510), f.Value())
}

func TestMedianOfN_OneSample(t *testing.T) {
	f := NewMedianOfN(0, 0, EvenAverage, 0, nil)
	assert.Equal(t, 1, f.Size())
	v, err := f.Next(seq(321))
	require.NoError(t, err)
	assert.Equal(t, uint16(321), v)
}

func TestMedianOfN_Sampler(t *testing.T) {
	s := hal.NewScriptedSampler().Script(2, 100, 900, 101, 99, 102)
	f := NewMedianOfN(5, 0, EvenAverage, 0, nil)

	v, err := f.Next(FromSampler(s, 2))
	require.NoError(t, err)
	assert.Equal(t, uint16(101), v, "spike rejected")
	assert.Equal(t, 5, s.Reads(2))
}

func TestMedianOf3_AllOrderings(t *testing.T) {
	perms := [][3]uint16{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
		{2, 2, 1}, {1, 2, 2}, {2, 1, 2}, {5, 5, 5},
	}
	for _, p := range perms {
		want := Median([]uint16{p[0], p[1], p[2]}, EvenAverage)
		assert.Equal(t, want, MedianOf3(p[0], p[1], p[2]), "%v", p)
	}
}

func TestRunningMedianOf3_RejectsSpike(t *testing.T) {
	f := NewRunningMedianOf3(0, 500)
	assert.Equal(t, uint16(500), f.Update(1000))
	assert.Equal(t, uint16(500), f.Update(500))
	assert.Equal(t, uint16(501), f.Update(501))
	assert.Equal(t, uint16(501), f.Update(510))
}

func TestRunningMedianOf3_FollowsStepThroughBand(t *testing.T) {
	f := NewRunningMedianOf3(10, 500)
	var out []uint16
	for range 5 {
		v, err := f.Next(seq(600))
		require.NoError(t, err)
		out = append(out, v)
	}
	assert.Equal(t, []uint16{500, 600, 600, 600, 600}, out)
}

func TestRunningMedianOf3_Reset(t *testing.T) {
	f := NewRunningMedianOf3(0, 0)
	f.Reset(77)
	assert.Equal(t, uint16(77), f.Value())
	assert.Equal(t, uint16(77), f.Update(90))
}

func TestMeanOfN(t *testing.T) {
	f := NewMeanOfN(4, 8)
	f.Reset(100)

	v, err := f.Next(seq(100, 104, 102, 106))
	require.NoError(t, err)
	assert.Equal(t, uint16(100), v)

	v, err = f.Next(seq(120, 121, 119, 120))
	require.NoError(t, err)
	assert.Equal(t, uint16(120), v)

	assert.Equal(t, uint16(3), Mean([]uint16{1, 2, 3, 4, 5}))
	assert.Equal(t, uint16(0), Mean(nil))
}

func TestNew(t *testing.T) {
	tests := []struct {
		opts    Options
		want    any
		wantErr bool
	}{
		{Options{Kind: KindAverage, Weight: 10}, &RunningAverage{}, false},
		{Options{Kind: KindMedian, Samples: 12, Band: 6}, &MedianOfN{}, false},
		{Options{Kind: KindMedian3, Band: 10}, &RunningMedianOf3{}, false},
		{Options{Kind: KindMean, Samples: 8}, &MeanOfN{}, false},
		{Options{Kind: KindNone}, &Passthrough{}, false},
		{Options{Kind: KindMedian, Even: "sideways"}, nil, true},
		{Options{Kind: "kalman"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.opts.Kind, func(t *testing.T) {
			f, err := New(tt.opts, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestNew_Initial(t *testing.T) {
	for _, kind := range []string{KindAverage, KindMedian, KindMedian3, KindMean, KindNone} {
		f, err := New(Options{Kind: kind, Samples: 3, Initial: 333}, nil)
		require.NoError(t, err)
		assert.Equal(t, uint16(333), f.Value(), kind)
	}
}
