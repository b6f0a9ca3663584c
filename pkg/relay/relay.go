// Package relay carries display values between two boards over a serial
// link. Each message is a short ASCII line padded to a fixed frame length.
package relay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FrameSize is the length of every frame on the wire.
const FrameSize = 25

const (
	KeyADC      = "adc_val"
	KeyDistance = "distance"
	KeyLevel    = "level x"
)

var (
	// ErrMalformedFrame is returned for frames that do not parse.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrNotConnected is returned by links used before Connect.
	ErrNotConnected = errors.New("not connected")
)

const (
	prefix     = "\r\n#"
	levelY     = ", y:"
	padding    = "\x00"
	levelCount = 2
)

// Message is one key with its values. Level messages carry x and y, the
// rest carry one value.
type Message struct {
	Key    string
	Values []int
}

// ADC is a potentiometer reading.
func ADC(v int) Message { return Message{Key: KeyADC, Values: []int{v}} }

// Distance is a range finder reading in centimeters.
func Distance(cm int) Message { return Message{Key: KeyDistance, Values: []int{cm}} }

// Level is a pair of accelerometer axis readings.
func Level(x, y int) Message { return Message{Key: KeyLevel, Values: []int{x, y}} }

// Value returns the first value, 0 for an empty message.
func (m Message) Value() int {
	if len(m.Values) == 0 {
		return 0
	}
	return m.Values[0]
}

func (m Message) String() string {
	return strings.TrimPrefix(Encode(m), "\r\n")
}

// Encode formats m without padding.
func Encode(m Message) string {
	if m.Key == KeyLevel {
		var x, y int
		if len(m.Values) > 0 {
			x = m.Values[0]
		}
		if len(m.Values) > 1 {
			y = m.Values[1]
		}
		return fmt.Sprintf("%s%s:%d%s%d", prefix, m.Key, x, levelY, y)
	}
	return fmt.Sprintf("%s%s:%d", prefix, m.Key, m.Value())
}

// Frame encodes m and pads it with NUL to FrameSize.
func Frame(m Message) ([]byte, error) {
	s := Encode(m)
	if len(s) > FrameSize {
		return nil, fmt.Errorf("message %q is %d bytes, frame holds %d", m, len(s), FrameSize)
	}
	buf := make([]byte, FrameSize)
	copy(buf, s)
	return buf, nil
}

// Parse decodes one frame. Trailing NUL padding is ignored, anything else
// after the values is rejected.
func Parse(frame []byte) (Message, error) {
	s := strings.TrimRight(string(frame), padding)
	body, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return Message{}, fmt.Errorf("%w: missing header", ErrMalformedFrame)
	}
	key, rest, ok := strings.Cut(body, ":")
	if !ok {
		return Message{}, fmt.Errorf("%w: missing separator", ErrMalformedFrame)
	}

	switch key {
	case KeyADC, KeyDistance:
		v, err := strconv.Atoi(rest)
		if err != nil {
			return Message{}, fmt.Errorf("%w: %s: %w", ErrMalformedFrame, key, err)
		}
		return Message{Key: key, Values: []int{v}}, nil
	case KeyLevel:
		xs, ys, ok := strings.Cut(rest, levelY)
		if !ok {
			return Message{}, fmt.Errorf("%w: %s: missing y", ErrMalformedFrame, key)
		}
		values := make([]int, 0, levelCount)
		for _, f := range []string{xs, ys} {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Message{}, fmt.Errorf("%w: %s: %w", ErrMalformedFrame, key, err)
			}
			values = append(values, v)
		}
		return Message{Key: key, Values: values}, nil
	}
	return Message{}, fmt.Errorf("%w: unknown key %q", ErrMalformedFrame, key)
}
