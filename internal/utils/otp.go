package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var otpUpperBound = big.NewInt(1_000_000)

// GenerateOTP returns a uniformly random six digit code, zero padded
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpUpperBound)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
