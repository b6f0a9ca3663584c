package filter

// RunningAverage is the weighted running average
//
//	avg = (avg*weight + raw) / (weight + 1)
//
// Larger weights damp harder and respond slower.
type RunningAverage struct {
	weight uint32
	avg    uint16
}

var _ Filter = (*RunningAverage)(nil)

// NewRunningAverage starts averaging from initial.
func NewRunningAverage(weight uint16, initial uint16) *RunningAverage {
	return &RunningAverage{weight: uint32(weight), avg: initial}
}

// Update folds raw into the average.
func (f *RunningAverage) Update(raw uint16) uint16 {
	f.avg = uint16((uint32(f.avg)*f.weight + uint32(raw)) / (f.weight + 1))
	return f.avg
}

func (f *RunningAverage) Next(src Source) (uint16, error) {
	raw, err := src()
	if err != nil {
		return f.avg, err
	}
	return f.Update(raw), nil
}

func (f *RunningAverage) Value() uint16 { return f.avg }

func (f *RunningAverage) Reset(v uint16) { f.avg = v }
