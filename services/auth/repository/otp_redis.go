package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/piresc/swastha/internal/pkg/constants"
	"github.com/piresc/swastha/internal/pkg/database"
	"github.com/piresc/swastha/internal/pkg/models"
)

// OTPRedisRepo keeps pending codes in Redis. Only a bcrypt hash of the code
// is stored and the key expires with the code.
type OTPRedisRepo struct {
	redisClient *database.RedisClient
	bcryptCost  int
	maxAttempts int
	nowF        func() time.Time
}

// NewOTPRedisRepo creates a Redis backed OTP store
func NewOTPRedisRepo(redisClient *database.RedisClient, bcryptCost, maxAttempts int) *OTPRedisRepo {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &OTPRedisRepo{
		redisClient: redisClient,
		bcryptCost:  bcryptCost,
		maxAttempts: maxAttempts,
		nowF:        time.Now,
	}
}

// WithClock overrides the time source used for expiry checks
func (r *OTPRedisRepo) WithClock(now func() time.Time) *OTPRedisRepo {
	r.nowF = now
	return r
}

// SaveOTP stores otp under the phone key, replacing any pending code
func (r *OTPRedisRepo) SaveOTP(ctx context.Context, otp *models.OTP) error {
	ttl := otp.ExpiresAt.Sub(r.nowF())
	if ttl <= 0 {
		return fmt.Errorf("OTP for %s already expired", otp.Phone)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(otp.Code), r.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	record := models.OTP{
		Phone:     otp.Phone,
		CodeHash:  string(hash),
		CreatedAt: otp.CreatedAt,
		ExpiresAt: otp.ExpiresAt,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP: %w", err)
	}

	key := fmt.Sprintf(constants.KeyOTP, otp.Phone)
	if err := r.redisClient.GetClient().Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP in Redis: %w", err)
	}
	return nil
}

// ConsumeOTP verifies code inside a WATCH transaction so that two concurrent
// verifications of the same code cannot both succeed.
func (r *OTPRedisRepo) ConsumeOTP(ctx context.Context, phone, code string) (bool, error) {
	key := fmt.Sprintf(constants.KeyOTP, phone)
	matched := false

	txf := func(tx *redis.Tx) error {
		matched = false

		val, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get OTP from Redis: %w", err)
		}

		var otp models.OTP
		if err := json.Unmarshal([]byte(val), &otp); err != nil {
			return fmt.Errorf("failed to unmarshal OTP: %w", err)
		}

		now := r.nowF()
		if otp.IsExpired(now) {
			return r.deleteIn(ctx, tx, key)
		}

		if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) == nil {
			if err := r.deleteIn(ctx, tx, key); err != nil {
				return err
			}
			matched = true
			return nil
		}

		otp.Attempts++
		if r.maxAttempts > 0 && otp.Attempts >= r.maxAttempts {
			return r.deleteIn(ctx, tx, key)
		}

		// keep the original deadline
		ttl, err := tx.PTTL(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to read OTP ttl: %w", err)
		}
		if ttl <= 0 {
			ttl = otp.ExpiresAt.Sub(now)
		}

		data, err := json.Marshal(otp)
		if err != nil {
			return fmt.Errorf("failed to marshal OTP: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}

	err := r.redisClient.GetClient().Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		// another request touched the code first
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return matched, nil
}

func (r *OTPRedisRepo) deleteIn(ctx context.Context, tx *redis.Tx, key string) error {
	_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		return nil
	})
	return err
}
