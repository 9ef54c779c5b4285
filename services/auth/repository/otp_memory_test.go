package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/swastha/internal/pkg/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newOTP(phone, code string, now time.Time, ttl time.Duration) *models.OTP {
	return &models.OTP{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestOTPMemoryRepo_ConsumeOTP(t *testing.T) {
	ctx := context.Background()
	phone := "+919876543210"

	testCases := []struct {
		name    string
		setup   func(repo *OTPMemoryRepo, clock *fakeClock)
		code    string
		want    bool
		wantLen int
	}{
		{
			name: "matching code is accepted and removed",
			setup: func(repo *OTPMemoryRepo, clock *fakeClock) {
				require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "123456", clock.Now(), 5*time.Minute)))
			},
			code:    "123456",
			want:    true,
			wantLen: 0,
		},
		{
			name: "wrong code is rejected and entry kept",
			setup: func(repo *OTPMemoryRepo, clock *fakeClock) {
				require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "123456", clock.Now(), 5*time.Minute)))
			},
			code:    "654321",
			want:    false,
			wantLen: 1,
		},
		{
			name:    "no pending code",
			setup:   func(repo *OTPMemoryRepo, clock *fakeClock) {},
			code:    "123456",
			want:    false,
			wantLen: 0,
		},
		{
			name: "expired code is rejected and removed",
			setup: func(repo *OTPMemoryRepo, clock *fakeClock) {
				require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "123456", clock.Now(), 5*time.Minute)))
				clock.Advance(5 * time.Minute)
			},
			code:    "123456",
			want:    false,
			wantLen: 0,
		},
		{
			name: "code still valid just before expiry",
			setup: func(repo *OTPMemoryRepo, clock *fakeClock) {
				require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "123456", clock.Now(), 5*time.Minute)))
				clock.Advance(5*time.Minute - time.Second)
			},
			code:    "123456",
			want:    true,
			wantLen: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := newFakeClock()
			repo := NewOTPMemoryRepo(5).WithClock(clock.Now)
			tc.setup(repo, clock)

			ok, err := repo.ConsumeOTP(ctx, phone, tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
			assert.Equal(t, tc.wantLen, repo.Len())
		})
	}
}

func TestOTPMemoryRepo_SingleUse(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewOTPMemoryRepo(5).WithClock(clock.Now)

	require.NoError(t, repo.SaveOTP(ctx, newOTP("+919876543210", "111222", clock.Now(), time.Minute)))

	ok, err := repo.ConsumeOTP(ctx, "+919876543210", "111222")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumeOTP(ctx, "+919876543210", "111222")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPMemoryRepo_OverwriteInvalidatesOldCode(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewOTPMemoryRepo(5).WithClock(clock.Now)
	phone := "+919876543210"

	require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "111111", clock.Now(), time.Minute)))
	require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "222222", clock.Now(), time.Minute)))

	ok, err := repo.ConsumeOTP(ctx, phone, "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ConsumeOTP(ctx, phone, "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPMemoryRepo_PhonesAreIsolated(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewOTPMemoryRepo(5).WithClock(clock.Now)

	require.NoError(t, repo.SaveOTP(ctx, newOTP("+910000000001", "111111", clock.Now(), time.Minute)))
	require.NoError(t, repo.SaveOTP(ctx, newOTP("+910000000002", "222222", clock.Now(), time.Minute)))

	ok, err := repo.ConsumeOTP(ctx, "+910000000001", "222222")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ConsumeOTP(ctx, "+910000000002", "222222")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumeOTP(ctx, "+910000000001", "111111")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPMemoryRepo_AttemptCapBurnsCode(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewOTPMemoryRepo(3).WithClock(clock.Now)
	phone := "+919876543210"

	require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "123456", clock.Now(), time.Minute)))

	for i := 0; i < 3; i++ {
		ok, err := repo.ConsumeOTP(ctx, phone, fmt.Sprintf("00000%d", i))
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err := repo.ConsumeOTP(ctx, phone, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPMemoryRepo_ConcurrentConsumeSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewOTPMemoryRepo(0)
	phone := "+919876543210"

	require.NoError(t, repo.SaveOTP(ctx, newOTP(phone, "424242", time.Now(), time.Minute)))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.ConsumeOTP(ctx, phone, "424242")
			if err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestOTPMemoryRepo_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	repo := NewOTPMemoryRepo(5).WithClock(clock.Now)

	require.NoError(t, repo.SaveOTP(ctx, newOTP("+910000000001", "111111", clock.Now(), time.Minute)))
	require.NoError(t, repo.SaveOTP(ctx, newOTP("+910000000002", "222222", clock.Now(), 10*time.Minute)))

	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 1, repo.Len())
}

func TestOTPMemoryRepo_RunJanitorStopsOnCancel(t *testing.T) {
	repo := NewOTPMemoryRepo(5)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		repo.RunJanitor(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
