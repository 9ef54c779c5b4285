package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/piresc/swastha/internal/pkg/models"
)

const (
	MinPhoneLength = 8
	MaxPhoneLength = 20
	OTPLength      = 6
	AadharLength   = 12
)

var (
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "\t", "")
	phonePattern    = regexp.MustCompile(`^\+?[0-9]+$`)
	aadharPattern   = regexp.MustCompile(`^[0-9]{12}$`)
)

// NormalizePhone strips separators (spaces, '-', '.', parentheses) and returns
// the canonical form: digits with an optional leading '+', 8 to 20 characters.
// "+91 98765 43210" and "+919876543210" normalize to the same key.
func NormalizePhone(raw string) (string, error) {
	phone := phoneSeparators.Replace(raw)
	switch {
	case len(phone) < MinPhoneLength:
		return "", &models.ValidationError{Field: "phone", Reason: "must have at least 8 characters besides separators"}
	case len(phone) > MaxPhoneLength:
		return "", &models.ValidationError{Field: "phone", Reason: "must be at most 20 characters"}
	case !phonePattern.MatchString(phone):
		return "", &models.ValidationError{Field: "phone", Reason: "must contain only digits, separators and an optional leading +"}
	}
	return phone, nil
}

// ValidateOTPCode checks the code is exactly six characters. Content is
// left to the store comparison so a wrong code reads as invalid_otp.
func ValidateOTPCode(code string) error {
	if utf8.RuneCountInString(code) != OTPLength {
		return &models.ValidationError{Field: "code", Reason: "must be exactly 6 characters"}
	}
	return nil
}

// ValidateAadhar accepts an empty value or a 12 digit identifier
func ValidateAadhar(aadhar string) error {
	if aadhar == "" {
		return nil
	}
	if !aadharPattern.MatchString(aadhar) {
		return &models.ValidationError{Field: "aadhar", Reason: "must be exactly 12 digits"}
	}
	return nil
}
