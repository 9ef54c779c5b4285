package constants

// NSQ topics
const (
	TopicUserRegistered = "auth.user_registered"
)

// Echo context keys set by the auth middleware
const (
	CtxKeyClaims = "claims"
	CtxKeyUserID = "user_id"
	CtxKeyRole   = "user_role"
)

// Rate limit scopes
const (
	RateScopePhone = "otp_phone"
	RateScopeIP    = "otp_ip"
)
