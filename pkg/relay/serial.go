//go:build !tinygo

package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the boards' UART setup.
	DefaultBaudRate = 9600
	// DefaultBufferSize is the default size for the messages channel buffer.
	DefaultBufferSize = 100
	// DefaultReadTimeout is one idle tick of the receive accumulator.
	DefaultReadTimeout = 10 * time.Millisecond
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is a Link over a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	acc       *Accumulator
	messages  chan Message
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	done      chan struct{}

	received atomic.Uint64
	dropped  atomic.Uint64
}

// NewSerial creates a link on port. Zero values pick the defaults.
func NewSerial(port string, baudRate, bufSize, idleTicks int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}
	if idleTicks == 0 {
		idleTicks = DefaultIdleTicks
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		acc:      NewAccumulator(idleTicks),
		messages: make(chan Message, bufSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		desc := name
		port, err := serial.Open(name, &serial.Mode{BaudRate: DefaultBaudRate})
		if err != nil {
			desc = name + " (busy)"
		} else {
			port.Close()
		}
		result = append(result, Port{Name: name, Description: desc})
	}

	return result, nil
}

// Connect opens the port and starts reading frames.
func (s *Serial) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	port, err := serial.Open(s.port, &serial.Mode{BaudRate: s.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}
	if err := port.SetReadTimeout(DefaultReadTimeout); err != nil {
		port.Close()
		return fmt.Errorf("failed to set read timeout on %s: %w", s.port, err)
	}

	s.conn = port
	s.connected = true
	s.done = make(chan struct{})

	log.Infof("relay: connected to %s at %d baud", s.port, s.baudRate)

	go s.readFrames(port, s.done)

	return nil
}

// Close closes the connection and stops reading frames.
func (s *Serial) Close() error {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil
	}

	s.cancel()
	if err := s.conn.Close(); err != nil {
		log.Warnf("relay: error closing serial port: %v", err)
	}
	s.conn = nil
	s.connected = false
	done := s.done
	s.mu.Unlock()

	// The reader owns the messages channel until it returns.
	<-done
	close(s.messages)

	return nil
}

// Messages returns the channel of decoded frames.
func (s *Serial) Messages() <-chan Message {
	return s.messages
}

// Send writes one padded frame.
func (s *Serial) Send(m Message) error {
	frame, err := Frame(m)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return ErrNotConnected
	}

	if _, err := s.conn.Write(frame); err != nil {
		return fmt.Errorf("failed to send %s: %w", m, err)
	}
	return nil
}

// IsConnected returns whether the port is open.
func (s *Serial) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Stats returns the number of accepted and dropped frames.
func (s *Serial) Stats() (received, dropped uint64) {
	return s.received.Load(), s.dropped.Load()
}

func (s *Serial) readFrames(port serial.Port, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("relay: panic in reader: %v", r)
		}
	}()

	buf := make([]byte, 64)
	for {
		n, err := port.Read(buf)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			var perr *serial.PortError
			if errors.As(err, &perr) && perr.Code() == serial.PortClosed {
				return
			}
			log.Errorf("relay: error reading from %s: %v", s.port, err)
			return
		}
		if n == 0 {
			s.acc.Tick()
			s.syncDropped()
			continue
		}
		for _, b := range buf[:n] {
			msg, ok := s.acc.Feed(b)
			if !ok {
				continue
			}
			s.received.Add(1)
			s.publish(msg)
		}
		s.syncDropped()
	}
}

func (s *Serial) syncDropped() {
	if d := uint64(s.acc.Dropped()); d != s.dropped.Load() {
		log.Debugf("relay: dropped %d malformed frames", d-s.dropped.Load())
		s.dropped.Store(d)
	}
}

func (s *Serial) publish(msg Message) {
	select {
	case s.messages <- msg:
	case <-s.ctx.Done():
	default:
		log.Warnf("relay: messages channel full, dropping %s", msg)
	}
}
