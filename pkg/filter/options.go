package filter

import (
	"fmt"
	"time"
)

// Kinds accepted by New.
const (
	KindAverage = "average"
	KindMedian  = "median"
	KindMedian3 = "median3"
	KindMean    = "mean"
	KindNone    = "none"
)

// Options describes a filter in configuration terms.
type Options struct {
	Kind    string        `yaml:"kind"`
	Weight  uint16        `yaml:"weight"`  // average
	Samples int           `yaml:"samples"` // median, mean
	Band    uint16        `yaml:"band"`    // median, median3, mean
	Even    string        `yaml:"even"`    // median: average, lower, upper
	Settle  time.Duration `yaml:"settle"`  // median
	Initial uint16        `yaml:"initial"`
}

// New builds the filter described by opts.
func New(opts Options, sleep Sleep) (Filter, error) {
	switch opts.Kind {
	case KindAverage:
		return NewRunningAverage(opts.Weight, opts.Initial), nil
	case KindMedian:
		even, err := ParseEvenPolicy(opts.Even)
		if err != nil {
			return nil, err
		}
		f := NewMedianOfN(opts.Samples, opts.Band, even, opts.Settle, sleep)
		f.Reset(opts.Initial)
		return f, nil
	case KindMedian3:
		return NewRunningMedianOf3(opts.Band, opts.Initial), nil
	case KindMean:
		f := NewMeanOfN(opts.Samples, opts.Band)
		f.Reset(opts.Initial)
		return f, nil
	case KindNone, "":
		return &Passthrough{v: opts.Initial}, nil
	}
	return nil, fmt.Errorf("unknown filter kind %q", opts.Kind)
}

// Passthrough shows raw samples unfiltered.
type Passthrough struct {
	v uint16
}

var _ Filter = (*Passthrough)(nil)

func (f *Passthrough) Next(src Source) (uint16, error) {
	raw, err := src()
	if err != nil {
		return f.v, err
	}
	f.v = raw
	return raw, nil
}

func (f *Passthrough) Value() uint16 { return f.v }

func (f *Passthrough) Reset(v uint16) { f.v = v }
