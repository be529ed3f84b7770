package measure

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func sleepingOp[T any](d time.Duration, v T) Operation[T] {
	return func() (T, error) {
		time.Sleep(d)
		return v, nil
	}
}

func TestMeasureImmediate(t *testing.T) {
	type status struct {
		Ok bool
	}

	m, err := Measure(func() (status, error) {
		return status{Ok: true}, nil
	})

	require.NoError(t, err)
	require.Equal(t, status{Ok: true}, m.Result)
	require.GreaterOrEqual(t, m.Duration, 0.0)
	require.Less(t, m.Duration, 0.05)
}

func TestMeasureDelayedValue(t *testing.T) {
	m, err := Measure(sleepingOp(500*time.Millisecond, 42))

	require.NoError(t, err)
	require.Equal(t, 42, m.Result)
	require.InDelta(t, 0.5, m.Duration, 0.05)
}

func TestMeasureOneSecond(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps for a second")
	}

	m, err := Measure(sleepingOp(time.Second, "done"))

	require.NoError(t, err)
	require.Equal(t, "done", m.Result)
	require.InDelta(t, 1.0, m.Duration, 0.05)
}

func TestMeasureOrdering(t *testing.T) {
	short, err := Measure(sleepingOp(10*time.Millisecond, 1))
	require.NoError(t, err)

	long, err := Measure(sleepingOp(20*time.Millisecond, 2))
	require.NoError(t, err)

	require.Greater(t, long.Duration, short.Duration)
}

func TestMeasureFailure(t *testing.T) {
	errNetwork := errors.New("network error")

	m, err := Measure(func() (int, error) {
		return 0, errNetwork
	})

	require.Nil(t, m)
	require.Same(t, errNetwork, err)
}

func TestMeasureFailureKeepsWrappedChain(t *testing.T) {
	errRoot := errors.New("connection refused")
	errWrapped := &wrappedError{cause: errRoot}

	_, err := Measure(func() (*struct{}, error) {
		return nil, errWrapped
	})

	require.Equal(t, error(errWrapped), err)
	require.ErrorIs(t, err, errRoot)
}

type wrappedError struct {
	cause error
}

func (e *wrappedError) Error() string { return "dial: " + e.cause.Error() }
func (e *wrappedError) Unwrap() error { return e.cause }

func TestMeasurePointerIdentity(t *testing.T) {
	value := &struct{ N int }{N: 7}

	m, err := Measure(func() (*struct{ N int }, error) {
		return value, nil
	})

	require.NoError(t, err)
	require.Same(t, value, m.Result)
}

func TestMeasureWithFakeClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	meter := NewMeterWithClock(clock)

	m, err := MeasureWith(meter, func() (string, error) {
		clock.Advance(1500 * time.Millisecond)
		return "ok", nil
	})

	require.NoError(t, err)
	require.Equal(t, "ok", m.Result)
	require.Equal(t, 1.5, m.Duration)
}

func TestMeasureWithFakeClockNoAdvance(t *testing.T) {
	meter := NewMeterWithClock(clockwork.NewFakeClock())

	m, err := MeasureWith(meter, func() (int, error) {
		return 3, nil
	})

	require.NoError(t, err)
	require.Equal(t, 0.0, m.Duration)
}

func TestMeasureConcurrent(t *testing.T) {
	var wg sync.WaitGroup

	measurements := make([]*Measurement[int], 8)
	errs := make([]error, 8)

	for i := range measurements {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			measurements[i], errs[i] = Measure(sleepingOp(time.Duration(i+1)*5*time.Millisecond, i))
		}(i)
	}

	wg.Wait()

	for i, m := range measurements {
		require.NoError(t, errs[i])
		require.Equal(t, i, m.Result)
		require.GreaterOrEqual(t, m.Duration, float64(i+1)*0.005)
	}
}

func TestSecondsNeverNegative(t *testing.T) {
	require.Equal(t, 0.0, seconds(-time.Second))
	require.Equal(t, 0.25, seconds(250*time.Millisecond))
}
