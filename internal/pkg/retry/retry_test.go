package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRetryOptionsUsesConfiguredAttempts(t *testing.T) {
	cfg := RetryConfig{Attempts: 2, Delay: time.Microsecond, MaxDelay: time.Microsecond}

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("still failing")
	}, cfg.ToRetryOptions()...)

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestToRetryOptionsZeroValueIsBounded(t *testing.T) {
	// A zero-value config must not translate into unbounded retries;
	// it takes the package defaults instead.
	var cfg RetryConfig

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("still failing")
	}, append(cfg.ToRetryOptions(), retry.Delay(time.Microsecond), retry.MaxDelay(time.Microsecond))...)

	require.Error(t, err)
	assert.Equal(t, defaultAttempts, calls)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.EqualValues(t, defaultAttempts, cfg.Attempts)
	assert.Equal(t, defaultDelay, cfg.Delay)
	assert.Equal(t, defaultMaxDelay, cfg.MaxDelay)
}
