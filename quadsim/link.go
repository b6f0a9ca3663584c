package main

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/itohio/quadled/pkg/relay"
)

// linkSender delivers a board's messages to the simulated display board
// and, while connected, to the relay link.
type linkSender struct {
	mu    sync.RWMutex
	local *relay.Receiver
	link  relay.Link
}

func (s *linkSender) attach(link relay.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.link = link
}

func (s *linkSender) Send(m relay.Message) error {
	s.mu.RLock()
	local, link := s.local, s.link
	s.mu.RUnlock()

	if local == nil && (link == nil || !link.IsConnected()) {
		return relay.ErrNotConnected
	}

	if local != nil {
		frame, err := relay.Frame(m)
		if err != nil {
			return err
		}
		local.Write(frame)
	}
	if link != nil && link.IsConnected() {
		return link.Send(m)
	}
	return nil
}

// bridge frames every message arriving on link into rx, the way the
// UART interrupt would hand bytes to the receiving board. It returns when
// the link closes its message channel.
func bridge(link relay.Link, rx *relay.Receiver) {
	for msg := range link.Messages() {
		frame, err := relay.Frame(msg)
		if err != nil {
			log.Warnf("Dropping %v: %v", msg, err)
			continue
		}
		rx.Write(frame)
	}
}

// logBuzzer stands in for the piezo of the range finder board.
type logBuzzer struct {
	mu     sync.Mutex
	period uint16
}

func (b *logBuzzer) SetPeriod(period uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if period == b.period {
		return
	}
	b.period = period
	if period == 0 {
		log.Debug("Buzzer off")
		return
	}
	log.Debugf("Buzzer period %d", period)
}
