package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseTime attempts to parse a time string in RFC3339 or RFC3339Nano format,
// SWAPI uses both for created/edited stamps
func ParseTime(timeStr string) *time.Time {
	if t, err := time.Parse(time.RFC3339, timeStr); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339Nano, timeStr); err == nil {
		return &t
	}
	return nil
}

// StripThousands removes thousands separators, "1,358" -> "1358"
func StripThousands(s string) string {
	if !strings.ContainsRune(s, ',') {
		return s
	}
	return strings.ReplaceAll(s, ",", "")
}

// ParseLeadingFloat parses the longest numeric prefix of s, ignoring leading
// whitespace and anything after the number ("172cm" -> 172, "12." -> 12).
// Returns false when s does not start with a number, which is how half-typed
// filter input ("-", ".") and sentinels like "unknown" come through.
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	if s == "" {
		return 0, false
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	// exponent only counts when it is followed by at least one digit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// out of range still yields ±Inf which compares sensibly
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
