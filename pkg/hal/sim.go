package hal

import (
	"math"
	"math/rand/v2"
	"sync"
)

// SimSampler simulates noisy analog inputs for the desktop simulator and
// tests. Each channel holds a set point (a potentiometer position or a
// resting accelerometer axis) that is disturbed by uniform noise and an
// optional slow wobble.
type SimSampler struct {
	mu       sync.Mutex
	max      uint16
	noise    float64
	wobble   float64
	period   int
	rng      *rand.Rand
	setPoint map[Channel]float64
	count    map[Channel]int
}

var _ Sampler = (*SimSampler)(nil)

// NewSimSampler creates a simulated converter with full scale max. noise is
// the peak noise in counts, wobble the amplitude of a sine drift that
// repeats every period samples (0 disables it).
func NewSimSampler(max uint16, noise, wobble float64, period int, seed uint64) *SimSampler {
	if max == 0 {
		max = 1023
	}
	return &SimSampler{
		max:      max,
		noise:    noise,
		wobble:   wobble,
		period:   period,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		setPoint: make(map[Channel]float64),
		count:    make(map[Channel]int),
	}
}

// Set moves the set point of ch.
func (s *SimSampler) Set(ch Channel, value uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPoint[ch] = float64(value)
}

// SetPoint returns the current set point of ch.
func (s *SimSampler) SetPoint(ch Channel) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint16(s.setPoint[ch])
}

func (s *SimSampler) Sample(ch Channel) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.count[ch]
	s.count[ch] = k + 1

	v := s.setPoint[ch]
	if s.noise > 0 {
		v += (s.rng.Float64()*2 - 1) * s.noise
	}
	if s.wobble > 0 && s.period > 0 {
		v += s.wobble * math.Sin(2*math.Pi*float64(k)/float64(s.period))
	}

	v = math.Round(v)
	if v < 0 {
		v = 0
	} else if v > float64(s.max) {
		v = float64(s.max)
	}
	return uint16(v), nil
}

// SimConverter presents a Sampler as a polled converter so simulated inputs
// go through BlockingSampler like real ones. Each conversion stays busy
// for busyPolls polls; Stall makes it hang busy.
type SimConverter struct {
	mu        sync.Mutex
	src       Sampler
	busyPolls int
	selected  Channel
	remaining int
	result    uint16
	stalled   bool
}

var _ Converter = (*SimConverter)(nil)

// NewSimConverter converts from src.
func NewSimConverter(src Sampler, busyPolls int) *SimConverter {
	return &SimConverter{src: src, busyPolls: busyPolls}
}

// Stall hangs or releases the converter.
func (c *SimConverter) Stall(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stalled = on
}

// Stalled reports whether the converter hangs.
func (c *SimConverter) Stalled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stalled
}

func (c *SimConverter) Select(ch Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = ch
}

func (c *SimConverter) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stalled {
		return true
	}
	if c.remaining > 0 {
		c.remaining--
		return true
	}
	return false
}

func (c *SimConverter) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = c.busyPolls
	v, err := c.src.Sample(c.selected)
	if err != nil {
		v = 0
	}
	c.result = v
}

func (c *SimConverter) Result() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}
