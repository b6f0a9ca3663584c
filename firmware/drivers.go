//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/relay"
	"github.com/itohio/quadled/pkg/segment"
)

// pinBank drives the display lines directly. Segments and selects are
// active high.
type pinBank struct {
	segments [8]machine.Pin
	digits   []machine.Pin
}

func newPinBank(segments [8]machine.Pin, digits []machine.Pin) *pinBank {
	for _, p := range segments {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	for _, p := range digits {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	return &pinBank{segments: segments, digits: digits}
}

func (b *pinBank) SetDigit(pos int, on bool) {
	if pos < 1 || pos > len(b.digits) {
		return
	}
	b.digits[pos-1].Set(on)
}

func (b *pinBank) Write(p segment.Pattern) {
	for i, pin := range b.segments {
		pin.Set(p.Lit(segment.Segment(i)))
	}
}

// adcConverter exposes the machine ADCs as a single multiplexed converter.
// machine.ADC.Get blocks until the conversion is done, so Busy is only
// ever true between Start and the read.
type adcConverter struct {
	inputs   []machine.ADC
	selected hal.Channel
	busy     bool
	result   uint16
}

func newADCConverter(pins ...machine.Pin) *adcConverter {
	c := &adcConverter{}
	cfg := machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	}
	for _, pin := range pins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		adc := machine.ADC{Pin: pin}
		adc.Configure(cfg)
		c.inputs = append(c.inputs, adc)
	}
	return c
}

func (c *adcConverter) Select(ch hal.Channel) { c.selected = ch }

func (c *adcConverter) Busy() bool {
	if c.busy {
		c.busy = false
		c.result = c.inputs[c.selected].Get() >> ADC_SHIFT
	}
	return false
}

func (c *adcConverter) Start() {
	if int(c.selected) < len(c.inputs) {
		c.busy = true
	}
}

func (c *adcConverter) Result() uint16 { return c.result }

// uartSender writes relay frames to the UART.
type uartSender struct {
	uart *machine.UART
}

func (s uartSender) Send(m relay.Message) error {
	frame, err := relay.Frame(m)
	if err != nil {
		return err
	}
	_, err = s.uart.Write(frame)
	return err
}

// uartPump feeds received bytes to rx from the main loop.
type uartPump struct {
	uart *machine.UART
	rx   *relay.Receiver
}

func (p uartPump) Step() error {
	for p.uart.Buffered() > 0 {
		b, err := p.uart.ReadByte()
		if err != nil {
			return err
		}
		p.rx.Feed(b)
	}
	return nil
}

// toneBuzzer square-waves a pin from its own goroutine. The period is in
// microseconds.
type toneBuzzer struct {
	pin    machine.Pin
	period chan uint16
}

func newToneBuzzer(pin machine.Pin) *toneBuzzer {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b := &toneBuzzer{pin: pin, period: make(chan uint16, 1)}
	go b.run()
	return b
}

func (b *toneBuzzer) SetPeriod(period uint16) {
	select {
	case <-b.period:
	default:
	}
	b.period <- period
}

func (b *toneBuzzer) run() {
	var period uint16
	for {
		if period == 0 {
			b.pin.Low()
			period = <-b.period
			continue
		}
		select {
		case period = <-b.period:
		default:
		}
		half := time.Duration(period/2) * time.Microsecond
		b.pin.High()
		time.Sleep(half)
		b.pin.Low()
		time.Sleep(half)
	}
}

// pinTrigger sends the ranging pulse.
type pinTrigger struct {
	pin machine.Pin
}

func (t pinTrigger) Pulse() {
	t.pin.High()
	time.Sleep(TRIGGER_PULSE)
	t.pin.Low()
}

// micros is the free running capture counter.
func micros() uint16 {
	return uint16(time.Now().UnixMicro())
}

// onPress calls fn on the falling edge of an active low button.
func onPress(pin machine.Pin, fn func()) {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) { fn() }); err != nil {
		println("button interrupt:", err.Error())
	}
}
