package utils

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\p{Cc}\p{Cf}\p{Co}\p{Cs}]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	nonDigits    = regexp.MustCompile(`[^0-9]`)
)

// Truncate cuts s to maxLength runes
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// SanitizeString replaces control characters with spaces and collapses whitespace
func SanitizeString(s string) string {
	result := controlChars.ReplaceAllString(s, " ")
	result = spaceRuns.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// MaskPhoneNumber keeps only the last 4 digits visible
func MaskPhoneNumber(phone string) string {
	cleanPhone := nonDigits.ReplaceAllString(phone, "")
	if len(cleanPhone) <= 4 {
		return cleanPhone
	}
	return strings.Repeat("*", len(cleanPhone)-4) + cleanPhone[len(cleanPhone)-4:]
}
