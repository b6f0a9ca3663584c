package accel

import (
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/adxl345"

	"github.com/itohio/quadled/pkg/hal"
)

const (
	// adxl345Offset shifts the signed 10 bit output to the 0..1023 scale of
	// the analog front end.
	adxl345Offset = 512
	adxl345Max    = 1023
	// adxl345CountsPerG is the 10 bit sensitivity in the 2 g range.
	adxl345CountsPerG = 256
)

// ADXL345Sampler reads a digital ADXL345 over I2C and presents each axis as
// an analog channel: 0 is X, 1 is Y, 2 is Z.
type ADXL345Sampler struct {
	dev adxl345.Device
}

var _ hal.Sampler = (*ADXL345Sampler)(nil)

// NewADXL345Sampler configures the sensor on bus. addr 0 uses the default
// address.
func NewADXL345Sampler(bus drivers.I2C, addr uint16) *ADXL345Sampler {
	dev := adxl345.New(bus)
	if addr != 0 {
		dev.Address = addr
	}
	dev.Configure()
	return &ADXL345Sampler{dev: dev}
}

// Calibration returns the converter matching the sampler's scale.
func (s *ADXL345Sampler) Calibration() GConverter {
	return GConverter{Zero: adxl345Offset, CountsPerG: adxl345CountsPerG}
}

func (s *ADXL345Sampler) Sample(ch hal.Channel) (uint16, error) {
	x, y, z := s.dev.ReadRawAcceleration()

	var raw int16
	switch ch {
	case 0:
		raw = x
	case 1:
		raw = y
	case 2:
		raw = z
	default:
		return 0, fmt.Errorf("adxl345: no axis on channel %d", ch)
	}

	v := int(raw) + adxl345Offset
	return uint16(max(0, min(v, adxl345Max))), nil
}
