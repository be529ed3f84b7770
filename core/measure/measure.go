// Package measure times a single unit of work and hands back both its result
// and how long it took. It is the only piece of the benchmark that knows about
// clocks: scenarios decide what is worth timing, this package only takes the
// two timestamps around it.
package measure

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Operation is a zero-argument unit of work. It may block the calling
// goroutine (e.g. while waiting on the network) and completes exactly once,
// either with a value or with an error.
type Operation[T any] func() (T, error)

// Measurement pairs the value produced by an operation with the wall-clock
// time it took, in seconds.
type Measurement[T any] struct {
	Result   T       `json:"result"`
	Duration float64 `json:"duration"`
}

// Meter takes the timestamps of a measurement.
type Meter struct {
	clock clockwork.Clock
}

var defaultMeter = NewMeter()

// NewMeter returns a meter backed by the real (monotonic) clock.
func NewMeter() *Meter {
	return NewMeterWithClock(clockwork.NewRealClock())
}

// NewMeterWithClock returns a meter reading time from the given clock.
func NewMeterWithClock(clock clockwork.Clock) *Meter {
	return &Meter{clock: clock}
}

// Measure runs op and reports how long it took using the real clock.
// See MeasureWith.
func Measure[T any](op Operation[T]) (*Measurement[T], error) {
	return MeasureWith(defaultMeter, op)
}

// MeasureWith runs op and returns its result together with the elapsed time
// between the invocation and the completion of op.
//
// If op fails, its error is returned as is and no measurement is produced:
// only completed operations get a duration.
func MeasureWith[T any](m *Meter, op Operation[T]) (*Measurement[T], error) {
	start := m.clock.Now()

	result, err := op()

	elapsed := m.clock.Since(start)
	if err != nil {
		return nil, err
	}

	return &Measurement[T]{
		Result:   result,
		Duration: seconds(elapsed),
	}, nil
}

// seconds converts d to fractional seconds, never negative.
func seconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}

	return d.Seconds()
}
