package repository

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
)

// OTPMemoryRepo keeps pending codes in process memory
type OTPMemoryRepo struct {
	mu          sync.Mutex
	entries     map[string]*models.OTP
	maxAttempts int
	nowF        func() time.Time
}

// NewOTPMemoryRepo creates an empty in-memory OTP store. A code is discarded
// after maxAttempts wrong guesses; zero disables the cap.
func NewOTPMemoryRepo(maxAttempts int) *OTPMemoryRepo {
	return &OTPMemoryRepo{
		entries:     make(map[string]*models.OTP),
		maxAttempts: maxAttempts,
		nowF:        time.Now,
	}
}

// WithClock overrides the time source
func (r *OTPMemoryRepo) WithClock(now func() time.Time) *OTPMemoryRepo {
	r.nowF = now
	return r
}

// SaveOTP stores otp, replacing any pending code for the same phone
func (r *OTPMemoryRepo) SaveOTP(_ context.Context, otp *models.OTP) error {
	entry := *otp
	entry.Attempts = 0

	r.mu.Lock()
	r.entries[otp.Phone] = &entry
	r.mu.Unlock()
	return nil
}

// ConsumeOTP checks code against the pending entry for phone
func (r *OTPMemoryRepo) ConsumeOTP(_ context.Context, phone, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[phone]
	if !ok {
		return false, nil
	}

	if entry.IsExpired(r.nowF()) {
		delete(r.entries, phone)
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) == 1 {
		delete(r.entries, phone)
		return true, nil
	}

	entry.Attempts++
	if r.maxAttempts > 0 && entry.Attempts >= r.maxAttempts {
		delete(r.entries, phone)
	}
	return false, nil
}

// Sweep drops expired entries and returns how many were removed
func (r *OTPMemoryRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowF()
	removed := 0
	for phone, entry := range r.entries {
		if entry.IsExpired(now) {
			delete(r.entries, phone)
			removed++
		}
	}
	return removed
}

// Len returns the number of pending codes
func (r *OTPMemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// RunJanitor sweeps expired entries every interval until ctx is done
func (r *OTPMemoryRepo) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug("Swept expired OTPs", logger.Int("count", n))
			}
		}
	}
}
