package filter

// MeanOfN averages n fresh samples per update and gates the mean.
type MeanOfN struct {
	n    int
	band uint16
	prev uint16
}

var _ Filter = (*MeanOfN)(nil)

// NewMeanOfN creates a filter over n samples. n < 1 is treated as 1.
func NewMeanOfN(n int, band uint16) *MeanOfN {
	if n < 1 {
		n = 1
	}
	return &MeanOfN{n: n, band: band}
}

// Mean is the truncated mean of window; 0 for an empty window.
func Mean(window []uint16) uint16 {
	if len(window) == 0 {
		return 0
	}
	var sum uint32
	for _, v := range window {
		sum += uint32(v)
	}
	return uint16(sum / uint32(len(window)))
}

func (f *MeanOfN) Next(src Source) (uint16, error) {
	var sum uint32
	for range f.n {
		raw, err := src()
		if err != nil {
			return f.prev, err
		}
		sum += uint32(raw)
	}
	f.prev = Gate(f.prev, uint16(sum/uint32(f.n)), f.band)
	return f.prev, nil
}

func (f *MeanOfN) Value() uint16 { return f.prev }

func (f *MeanOfN) Reset(v uint16) { f.prev = v }
