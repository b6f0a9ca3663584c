package board

import (
	"fmt"

	"github.com/itohio/quadled/pkg/display"
	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/hal"
)

// PotDisplay shows one filtered analog channel.
type PotDisplay struct {
	src   filter.Source
	ch    hal.Channel
	f     filter.Filter
	mux   *display.Multiplexer
	point display.Point
}

// NewPotDisplay shows channel ch of s through f.
func NewPotDisplay(s hal.Sampler, ch hal.Channel, f filter.Filter, mux *display.Multiplexer, point display.Point) *PotDisplay {
	return &PotDisplay{
		src:   filter.FromSampler(s, ch),
		ch:    ch,
		f:     f,
		mux:   mux,
		point: point,
	}
}

func (p *PotDisplay) Step() error {
	v, err := p.f.Next(p.src)
	if err != nil {
		p.mux.RenderFault()
		return fmt.Errorf("channel %d: %w", p.ch, err)
	}
	p.mux.Render(int(v), p.point)
	return nil
}
