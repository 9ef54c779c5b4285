package constants

// Redis key formats
const (
	KeyOTP = "auth:otp:%s" // Format: auth:otp:{phone}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{scope}:{subject}
)
