//go:build !tinygo

package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itohio/quadled/pkg/config"
	"github.com/itohio/quadled/pkg/hal"
)

// Mock simulates a sending board. It emits readings of a simulated sensor
// and loops every sent message back through the frame codec.
type Mock struct {
	cfg *config.MockConfig
	key string

	sensor    *hal.SimSampler
	acc       *Accumulator
	messages  chan Message
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	wg        sync.WaitGroup
}

// NewMock creates a mock link that sends messages with the given key.
func NewMock(cfg *config.MockConfig, key string) *Mock {
	if cfg == nil {
		def := config.Default().Mock
		cfg = &def
	}

	sensor := hal.NewSimSampler(1023, cfg.Noise, cfg.Wobble, cfg.Period, cfg.Seed)
	for ch := range hal.Channel(2) {
		sensor.Set(ch, cfg.SetPoint)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:      cfg,
		key:      key,
		sensor:   sensor,
		acc:      NewAccumulator(0),
		messages: make(chan Message, DefaultBufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Sensor exposes the simulated sensor so callers can move its set point.
func (m *Mock) Sensor() *hal.SimSampler { return m.sensor }

// Connect starts generating messages.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	m.connected = true

	if m.cfg.SampleRate > 0 {
		m.wg.Add(1)
		go m.generate()
	}

	return nil
}

// Close stops the mock and closes the messages channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	m.cancel()
	m.connected = false
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	close(m.messages)
	m.mu.Unlock()

	return nil
}

// Messages returns the channel of decoded frames.
func (m *Mock) Messages() <-chan Message {
	return m.messages
}

// Send frames m and feeds it back as if the other side had echoed it.
func (m *Mock) Send(msg Message) error {
	frame, err := Frame(msg)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}
	m.deliver(frame)
	return nil
}

// IsConnected returns whether the mock is running.
func (m *Mock) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *Mock) generate() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			frame, err := Frame(m.reading())
			if err != nil {
				continue
			}
			m.mu.Lock()
			m.deliver(frame)
			m.mu.Unlock()
		}
	}
}

func (m *Mock) reading() Message {
	x, _ := m.sensor.Sample(0)
	if m.key == KeyLevel {
		y, _ := m.sensor.Sample(1)
		return Level(int(x), int(y))
	}
	return Message{Key: m.key, Values: []int{int(x)}}
}

// deliver runs with m.mu held.
func (m *Mock) deliver(frame []byte) {
	for _, b := range frame {
		msg, ok := m.acc.Feed(b)
		if !ok {
			continue
		}
		select {
		case m.messages <- msg:
		default:
			// Channel full, skip
		}
	}
}
