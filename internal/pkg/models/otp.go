package models

import "time"

// OTP is a pending one-time code. At most one exists per phone.
type OTP struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"-"`
	CodeHash  string    `json:"code_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// IsExpired reports whether the code is past its deadline at now
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// OTPRequest asks for a code to be issued. Aadhar is accepted but never stored.
type OTPRequest struct {
	Phone  string
	Aadhar string
}

// VerifyRequest exchanges a code for a session
type VerifyRequest struct {
	Phone string
	Code  string
	Role  Role
}

// AuthResponse is returned on successful verification
type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserView `json:"user"`
}
