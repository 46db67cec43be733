package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/readinglist-service/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	okService := func() error { return nil }
	failService := func() error { return errors.New("service error") }

	cb := circuit_breaker.New(10, 200*time.Millisecond, 0.30, 3)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(okService))
	}

	// enough failures to cross the percentile and trip the breaker
	for i := 0; i < 10; i++ {
		_ = cb.Call(failService)
	}
	require.ErrorIs(t, cb.Call(okService), circuit_breaker.ErrOpenCB)

	// half-open after the timeout, recovers on consecutive successes
	time.Sleep(300 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, cb.Call(okService))
	}

	// a failure in half-open reopens immediately
	for i := 0; i < 10; i++ {
		_ = cb.Call(failService)
	}
	time.Sleep(300 * time.Millisecond)
	require.Error(t, cb.Call(failService))
	require.ErrorIs(t, cb.Call(okService), circuit_breaker.ErrOpenCB)
}

func Test_circuitBreaker_Reset(t *testing.T) {
	failService := func() error { return errors.New("service error") }

	cb := circuit_breaker.New(4, time.Minute, 0.5, 1)
	for i := 0; i < 4; i++ {
		_ = cb.Call(failService)
	}
	require.ErrorIs(t, cb.Call(failService), circuit_breaker.ErrOpenCB)

	cb.Reset()
	require.NoError(t, cb.Call(func() error { return nil }))
}
