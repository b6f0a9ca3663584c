package filter

import (
	"io"
	"time"
)

// Stage is a channel pipeline step over raw samples.
type Stage func(in <-chan uint16) <-chan uint16

// NewStage runs f over the values arriving on in, letting the filter pull
// as many samples per output as it needs. Output is dropped if the consumer
// falls behind for longer than a second. The output closes once in closes;
// a partly collected window is discarded.
func NewStage(f Filter, bufSize int) Stage {
	return newStage(f, bufSize, time.Second)
}

// NewReplayStage is NewStage for recorded data: it waits for the consumer
// however long it takes and never drops a value.
func NewReplayStage(f Filter, bufSize int) Stage {
	return newStage(f, bufSize, 0)
}

// newStage drops an output after waiting patience for the consumer; zero
// patience blocks.
func newStage(f Filter, bufSize int, patience time.Duration) Stage {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan uint16) <-chan uint16 {
		out := make(chan uint16, bufSize)
		src := func() (uint16, error) {
			raw, ok := <-in
			if !ok {
				return 0, io.EOF
			}
			return raw, nil
		}

		go func() {
			defer close(out)

			for {
				v, err := f.Next(src)
				if err != nil {
					return
				}

				if patience == 0 {
					out <- v
					continue
				}
				select {
				case out <- v:
				case <-time.After(patience):
				}
			}
		}()

		return out
	}
}
