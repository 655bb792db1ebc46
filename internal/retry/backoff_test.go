package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Doubles(t *testing.T) {
	b := NewExponentialBackoff(5, WithInitialDelay(100*time.Millisecond), WithJitter(0))

	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 200*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 400*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, 5, b.MaxAttempts())
}

func TestExponentialBackoff_CapsAtMaxDelay(t *testing.T) {
	b := NewExponentialBackoff(-1,
		WithInitialDelay(time.Second),
		WithMaxDelay(3*time.Second),
		WithJitter(0),
	)

	assert.Equal(t, 3*time.Second, b.NextDelay(5))
	assert.Equal(t, 3*time.Second, b.NextDelay(50))
	assert.Equal(t, -1, b.MaxAttempts())
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	low := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(0.1), WithJitterFunc(func() float64 { return 0 }))
	high := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(0.1), WithJitterFunc(func() float64 { return 0.999999 }))
	mid := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(0.1), WithJitterFunc(func() float64 { return 0.5 }))

	assert.Equal(t, 900*time.Millisecond, low.NextDelay(0))
	assert.InDelta(t, float64(1100*time.Millisecond), float64(high.NextDelay(0)), float64(time.Millisecond))
	assert.Equal(t, time.Second, mid.NextDelay(0))
}
