package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/itohio/quadled/pkg/alarm"
	"github.com/itohio/quadled/pkg/display"
	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/mode"
	"github.com/itohio/quadled/pkg/relay"
)

// DefaultEchoWait is how long the range finder waits for an echo.
const DefaultEchoWait = time.Second / 3

// ErrNoEcho is returned when no echo completed within the wait. Nothing is
// sent and the buzzer is silenced.
var ErrNoEcho = errors.New("no echo")

// RangeFinderOptions holds the peripherals of the sensing board.
type RangeFinderOptions struct {
	Trigger  hal.Trigger
	Echo     *alarm.EchoCapture
	Sampler  hal.Sampler
	X, Y     hal.Channel
	FilterX  filter.Filter
	FilterY  filter.Filter
	Buzzer   hal.Buzzer
	Out      Sender
	Presets  *alarm.Presets
	Level    alarm.Level
	EchoWait time.Duration
	Sleep    func(time.Duration)
}

// RangeFinder measures distance with an ultrasonic sensor, or board tilt
// with an accelerometer, sounds the matching alarm and relays the
// reading.
type RangeFinder struct {
	opts   RangeFinderOptions
	toggle mode.Toggle
}

// NewRangeFinder starts in distance mode.
func NewRangeFinder(opts RangeFinderOptions) *RangeFinder {
	if opts.EchoWait == 0 {
		opts.EchoWait = DefaultEchoWait
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &RangeFinder{opts: opts}
}

// PressPreset is the preset button handler. It only acts in distance mode.
func (r *RangeFinder) PressPreset() {
	if r.toggle.Mode() == mode.Distance {
		r.opts.Presets.Next()
	}
}

// PressMode is the mode button handler.
func (r *RangeFinder) PressMode() { r.toggle.Press() }

// Mode returns the current measurement.
func (r *RangeFinder) Mode() mode.Measure { return r.toggle.Mode() }

func (r *RangeFinder) Step() error {
	switch r.toggle.Mode() {
	case mode.Leveling:
		return r.level()
	default:
		return r.distance()
	}
}

func (r *RangeFinder) distance() error {
	_, before := r.opts.Echo.Width()
	r.opts.Trigger.Pulse()
	r.opts.Sleep(r.opts.EchoWait)

	width, after := r.opts.Echo.Width()
	if after == before {
		r.opts.Buzzer.SetPeriod(alarm.Silent)
		return ErrNoEcho
	}
	cm := alarm.Centimeters(width)
	r.opts.Buzzer.SetPeriod(r.opts.Presets.Tone(cm))
	if err := r.opts.Out.Send(relay.Distance(cm)); err != nil {
		return fmt.Errorf("send distance: %w", err)
	}
	return nil
}

func (r *RangeFinder) level() error {
	x, err := r.opts.FilterX.Next(filter.FromSampler(r.opts.Sampler, r.opts.X))
	if err != nil {
		r.opts.Buzzer.SetPeriod(alarm.Silent)
		return fmt.Errorf("level x: %w", err)
	}
	y, err := r.opts.FilterY.Next(filter.FromSampler(r.opts.Sampler, r.opts.Y))
	if err != nil {
		r.opts.Buzzer.SetPeriod(alarm.Silent)
		return fmt.Errorf("level y: %w", err)
	}

	if err := r.opts.Out.Send(relay.Level(int(x), int(y))); err != nil {
		return fmt.Errorf("send level: %w", err)
	}
	r.opts.Buzzer.SetPeriod(r.opts.Level.Tone(int(x), int(y)))
	return nil
}

// RangeDisplay is the display board of the range finder. It follows the
// mode of whatever the sensing board last sent.
type RangeDisplay struct {
	rx      *relay.Receiver
	toggle  mode.Toggle
	level   alarm.Level
	presets []int
	mux     *display.Multiplexer

	// Now is the clock used by Showcase.
	Now func() time.Time
}

// NewRangeDisplay creates the display program and its frame receiver.
// Received bytes go to Feed.
func NewRangeDisplay(idleTicks int, level alarm.Level, presets []int, mux *display.Multiplexer) *RangeDisplay {
	d := &RangeDisplay{
		level:   level,
		presets: presets,
		mux:     mux,
		Now:     time.Now,
	}
	d.rx = relay.NewReceiver(idleTicks, d.follow)
	return d
}

// Receiver returns the frame receiver.
func (d *RangeDisplay) Receiver() *relay.Receiver { return d.rx }

// Feed is the receive interrupt handler.
func (d *RangeDisplay) Feed(b byte) { d.rx.Feed(b) }

// Mode returns the mode of the last message.
func (d *RangeDisplay) Mode() mode.Measure { return d.toggle.Mode() }

func (d *RangeDisplay) follow(m relay.Message) {
	switch m.Key {
	case relay.KeyDistance:
		d.toggle.Set(mode.Distance)
	case relay.KeyLevel:
		d.toggle.Set(mode.Leveling)
	}
}

// Showcase shows every preset for hold, one after another.
func (d *RangeDisplay) Showcase(hold time.Duration) {
	if hold <= 0 {
		return
	}
	for _, p := range d.presets {
		until := d.Now().Add(hold)
		for d.Now().Before(until) {
			d.mux.Render(p, display.NoPoint)
		}
	}
}

func (d *RangeDisplay) Step() error {
	if d.toggle.Mode() == mode.Leveling {
		msg, _ := d.rx.Latest(relay.KeyLevel)
		var x, y int
		if len(msg.Values) == 2 {
			x, y = msg.Values[0], msg.Values[1]
		} else {
			x, y = d.level.Center, d.level.Center
		}
		dx, dy := d.level.Deviation(x, y)
		d.mux.RenderPair(dx, dy)
		return nil
	}

	msg, _ := d.rx.Latest(relay.KeyDistance)
	d.mux.Render(msg.Value(), display.NoPoint)
	return nil
}
