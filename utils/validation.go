// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var embeddedPhoneRegex = regexp.MustCompile(`\+?\d[\d\s\-()]{6,}\d`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	return phoneRegex.MatchString(cleaned)
}

// ExtractPhone pulls a phone number out of free text. Client names on
// public bookings sometimes carry the phone inline ("Sara 0612345678").
func ExtractPhone(text string) string {
	match := embeddedPhoneRegex.FindString(text)
	if match == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, match)
	if ValidatePhone(cleaned) {
		return cleaned
	}
	return ""
}

// ValidateDate checks the YYYY-MM-DD calendar-day format used throughout.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ValidateDate(date string) bool {
	return dateRegex.MatchString(date)
}

// ValidateClockTime checks the HH:MM format used for slot times.
var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func ValidateClockTime(t string) bool {
	return clockRegex.MatchString(t)
}
