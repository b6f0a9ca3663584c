package hal

import "fmt"

// DefaultRetries bounds each busy-wait of a BlockingSampler.
const DefaultRetries = 10000

// BlockingSampler implements Sampler on top of a polled Converter.
type BlockingSampler struct {
	conv    Converter
	retries int
}

var _ Sampler = (*BlockingSampler)(nil)

// NewBlockingSampler wraps conv. retries <= 0 selects DefaultRetries.
func NewBlockingSampler(conv Converter, retries int) *BlockingSampler {
	if retries <= 0 {
		retries = DefaultRetries
	}
	return &BlockingSampler{conv: conv, retries: retries}
}

// Sample selects ch, waits for the converter to go idle, converts and
// returns the result.
func (s *BlockingSampler) Sample(ch Channel) (uint16, error) {
	s.conv.Select(ch)
	if err := s.wait(); err != nil {
		return 0, fmt.Errorf("channel %d: before start: %w", ch, err)
	}
	s.conv.Start()
	if err := s.wait(); err != nil {
		return 0, fmt.Errorf("channel %d: conversion: %w", ch, err)
	}
	return s.conv.Result(), nil
}

func (s *BlockingSampler) wait() error {
	for range s.retries {
		if !s.conv.Busy() {
			return nil
		}
	}
	return ErrConverterTimeout
}
