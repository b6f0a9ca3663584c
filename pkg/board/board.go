// Package board holds the main loop of each board variant. A program wires
// a sampler through a filter and the mode state into the display; one Step
// is one pass of the loop. Interrupt sources call the program's handler
// methods directly and never render.
package board

import (
	"context"
	"errors"

	"github.com/itohio/quadled/pkg/relay"
)

// Program is one board's main loop body.
type Program interface {
	Step() error
}

// Sender transmits relay messages to the other board.
type Sender interface {
	Send(m relay.Message) error
}

// Programs runs several programs in turn on one board.
type Programs []Program

// Step runs every program once and joins their errors.
func (ps Programs) Step() error {
	var errs []error
	for _, p := range ps {
		if err := p.Step(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run steps p until ctx is done. Step errors are passed to onErr and do
// not stop the loop; the program has already shown its fault state.
func Run(ctx context.Context, p Program, onErr func(error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Step(); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
