package filter

// RunningMedianOf3 takes the median of the current raw sample and the two
// raw samples before it, then gates it against the last shown value.
//
// The history holds raw samples rather than gated output: once the gate
// holds a value, a history of two equal outputs would pin the median to
// that value forever.
type RunningMedianOf3 struct {
	band    uint16
	last    uint16 // previous raw sample
	earlier uint16 // raw sample before last
	shown   uint16
}

var _ Filter = (*RunningMedianOf3)(nil)

// NewRunningMedianOf3 seeds the history and output with initial.
func NewRunningMedianOf3(band uint16, initial uint16) *RunningMedianOf3 {
	return &RunningMedianOf3{band: band, last: initial, earlier: initial, shown: initial}
}

// MedianOf3 returns the middle of a, b and c.
func MedianOf3(a, b, c uint16) uint16 {
	switch {
	case a <= b && b <= c, c <= b && b <= a:
		return b
	case b <= a && a <= c, c <= a && a <= b:
		return a
	default:
		return c
	}
}

// Update pushes raw into the history and returns the gated median.
func (f *RunningMedianOf3) Update(raw uint16) uint16 {
	m := MedianOf3(raw, f.last, f.earlier)
	f.earlier, f.last = f.last, raw
	f.shown = Gate(f.shown, m, f.band)
	return f.shown
}

func (f *RunningMedianOf3) Next(src Source) (uint16, error) {
	raw, err := src()
	if err != nil {
		return f.shown, err
	}
	return f.Update(raw), nil
}

func (f *RunningMedianOf3) Value() uint16 { return f.shown }

func (f *RunningMedianOf3) Reset(v uint16) {
	f.last, f.earlier, f.shown = v, v, v
}
