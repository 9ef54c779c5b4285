package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[0-9]{6}$`)
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
		seen[code] = struct{}{}
	}

	// collisions are rare at this sample size
	assert.Greater(t, len(seen), 190)
}
