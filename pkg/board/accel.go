package board

import (
	"fmt"

	"github.com/itohio/quadled/pkg/accel"
	"github.com/itohio/quadled/pkg/display"
	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/mode"
	"github.com/itohio/quadled/pkg/segment"
)

var axisSymbols = [...]segment.Symbol{
	mode.X: segment.SymbolX,
	mode.Y: segment.SymbolY,
	mode.Z: segment.SymbolZ,
}

// GFrame lays out an axis reading in g as [axis][sign][whole.][tenth].
func GFrame(axis mode.Axis, g accel.G) display.Frame {
	sign := segment.SymbolBlank
	if g.Negative {
		sign = segment.SymbolDash
	}
	sym := segment.SymbolDash
	if int(axis) < len(axisSymbols) {
		sym = axisSymbols[axis]
	}
	return display.Text(3, sym, sign, segment.Symbol(g.Tens()), segment.Symbol(g.Ones()))
}

// AccelDisplay shows one accelerometer axis at a time, raw or in g, as
// selected by the axis cycler. Raw readings mark the axis with the decimal
// point of position 1 (X), 2 (Y) or 3 (Z).
type AccelDisplay struct {
	sampler hal.Sampler
	filters [3]filter.Filter
	cycler  *mode.AxisCycler
	conv    accel.GConverter
	mux     *display.Multiplexer
}

// NewAccelDisplay builds the program. newFilter is called once per axis.
func NewAccelDisplay(s hal.Sampler, newFilter func() (filter.Filter, error), cycler *mode.AxisCycler, conv accel.GConverter, mux *display.Multiplexer) (*AccelDisplay, error) {
	a := &AccelDisplay{
		sampler: s,
		cycler:  cycler,
		conv:    conv,
		mux:     mux,
	}
	for i := range a.filters {
		f, err := newFilter()
		if err != nil {
			return nil, err
		}
		a.filters[i] = f
	}
	return a, nil
}

// Tick is the timer interrupt handler.
func (a *AccelDisplay) Tick() { a.cycler.Tick() }

// Press is the mode button interrupt handler.
func (a *AccelDisplay) Press() { a.cycler.Press() }

// Mode returns the current display mode.
func (a *AccelDisplay) Mode() mode.Mode { return a.cycler.Mode() }

func (a *AccelDisplay) Step() error {
	m := a.cycler.Mode()
	axis := m.Axis()

	v, err := a.filters[axis].Next(filter.FromSampler(a.sampler, axis.Channel()))
	if err != nil {
		a.mux.RenderFault()
		return fmt.Errorf("axis %s: %w", axis, err)
	}

	if m.IsG() {
		a.mux.Show(GFrame(axis, a.conv.Convert(v)))
		return nil
	}
	a.mux.Render(int(v), display.Point(axis)+1)
	return nil
}
