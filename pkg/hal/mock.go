package hal

import (
	"sync"

	"github.com/itohio/quadled/pkg/segment"
)

// ScriptedSampler replays fixed sample sequences per channel. Once a
// sequence is exhausted the last value repeats.
type ScriptedSampler struct {
	mu     sync.Mutex
	script map[Channel][]uint16
	pos    map[Channel]int
	err    error
}

var _ Sampler = (*ScriptedSampler)(nil)

// NewScriptedSampler creates an empty script.
func NewScriptedSampler() *ScriptedSampler {
	return &ScriptedSampler{
		script: make(map[Channel][]uint16),
		pos:    make(map[Channel]int),
	}
}

// Script appends values to the sequence returned for ch.
func (s *ScriptedSampler) Script(ch Channel, values ...uint16) *ScriptedSampler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script[ch] = append(s.script[ch], values...)
	return s
}

// Fail makes every following Sample return err (nil clears it).
func (s *ScriptedSampler) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Reads returns how many samples were taken from ch.
func (s *ScriptedSampler) Reads(ch Channel) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos[ch]
}

func (s *ScriptedSampler) Sample(ch Channel) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	seq := s.script[ch]
	if len(seq) == 0 {
		return 0, nil
	}
	i := s.pos[ch]
	s.pos[ch] = i + 1
	if i >= len(seq) {
		i = len(seq) - 1
	}
	return seq[i], nil
}

// FakeConverter is a Converter that stays busy for a set number of polls
// after each Start.
type FakeConverter struct {
	Values     map[Channel]uint16
	BusyPolls  int
	Stuck      bool
	selected   Channel
	remaining  int
	result     uint16
	Conversion int
	Ops        []string // select, wait (consecutive polls folded), start, read
}

var _ Converter = (*FakeConverter)(nil)

func (c *FakeConverter) Select(ch Channel) {
	c.selected = ch
	c.Ops = append(c.Ops, "select")
}

func (c *FakeConverter) Busy() bool {
	busy := c.Stuck || c.remaining > 0
	if !c.Stuck && c.remaining > 0 {
		c.remaining--
	}
	if len(c.Ops) == 0 || c.Ops[len(c.Ops)-1] != "wait" {
		c.Ops = append(c.Ops, "wait")
	}
	return busy
}

func (c *FakeConverter) Start() {
	c.Ops = append(c.Ops, "start")
	c.Conversion++
	c.remaining = c.BusyPolls
	c.result = c.Values[c.selected]
}

func (c *FakeConverter) Result() uint16 {
	c.Ops = append(c.Ops, "read")
	return c.result
}

// BankEvent is one observable change on a RecordingBank.
type BankEvent struct {
	Selected []int           // asserted positions after the change
	Segments segment.Pattern // segment lines after the change
}

// RecordingBank keeps the state of every line and a history of changes.
type RecordingBank struct {
	mu       sync.Mutex
	digits   int
	lines    []bool
	segments segment.Pattern
	events   []BankEvent
}

var _ DigitalOutputBank = (*RecordingBank)(nil)

// NewRecordingBank creates a bank with the given number of digit positions.
func NewRecordingBank(digits int) *RecordingBank {
	return &RecordingBank{digits: digits, lines: make([]bool, digits+1)}
}

func (b *RecordingBank) SetDigit(pos int, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pos < 1 || pos > b.digits {
		return
	}
	b.lines[pos] = on
	b.record()
}

func (b *RecordingBank) Write(p segment.Pattern) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.segments = p
	b.record()
}

func (b *RecordingBank) record() {
	b.events = append(b.events, BankEvent{Selected: b.selectedLocked(), Segments: b.segments})
}

func (b *RecordingBank) selectedLocked() []int {
	var sel []int
	for pos := 1; pos <= b.digits; pos++ {
		if b.lines[pos] {
			sel = append(sel, pos)
		}
	}
	return sel
}

// Selected returns the currently asserted positions.
func (b *RecordingBank) Selected() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedLocked()
}

// Segments returns the current segment lines.
func (b *RecordingBank) Segments() segment.Pattern {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.segments
}

// Events returns a copy of the change history.
func (b *RecordingBank) Events() []BankEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BankEvent(nil), b.events...)
}

// Reset clears the history but keeps line state.
func (b *RecordingBank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

// RecordingBuzzer remembers every period it was given.
type RecordingBuzzer struct {
	mu      sync.Mutex
	periods []uint16
}

var _ Buzzer = (*RecordingBuzzer)(nil)

func (b *RecordingBuzzer) SetPeriod(period uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.periods = append(b.periods, period)
}

// Period returns the last period set, 0 if none.
func (b *RecordingBuzzer) Period() uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.periods) == 0 {
		return 0
	}
	return b.periods[len(b.periods)-1]
}

// Periods returns every period set so far.
func (b *RecordingBuzzer) Periods() []uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]uint16(nil), b.periods...)
}
