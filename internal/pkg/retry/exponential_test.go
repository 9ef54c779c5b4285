package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/piresc/swastha/internal/pkg/logger"
)

func newTestRetrier(maxRetries int) *Retrier {
	return New(Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2,
	}, logger.NewFromZap(zap.NewNop(), "test"))
}

func TestRetrier_Execute(t *testing.T) {
	testCases := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{name: "first attempt succeeds", failures: 0, wantCalls: 1},
		{name: "succeeds after retries", failures: 2, wantCalls: 3},
		{name: "gives up", failures: 10, wantCalls: 3, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := newTestRetrier(2).Execute(context.Background(), func(context.Context) error {
				calls++
				if calls <= tc.failures {
					return errors.New("temporary failure")
				}
				return nil
			})

			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "retry limit exceeded after 3 attempts")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetrier_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := newTestRetrier(3).Execute(ctx, func(context.Context) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestRetrier_DelayIsCapped(t *testing.T) {
	r := newTestRetrier(5)

	assert.Equal(t, time.Millisecond, r.delay(0))
	assert.Equal(t, 2*time.Millisecond, r.delay(1))
	assert.Equal(t, 5*time.Millisecond, r.delay(4))
}
