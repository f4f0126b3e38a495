package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// Developer keys are exactly 3 letters, stored uppercase.
var keyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

func IsValidDeveloperKey(key string) bool {
	return keyRe.MatchString(key)
}

// NormalizeKey upper-cases a key for storage and matching.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// ParseNumber parses a loosely-typed numeric field from an import or request
// body. Missing or non-numeric input degrades to def; it never fails.
func ParseNumber(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseFraction parses an availability cell: "1" reads as 1, anything
// containing "0.5" as 0.5, everything else (including empty) as 0.
func ParseFraction(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "1" {
		return 1
	}
	if strings.Contains(s, "0.5") {
		return 0.5
	}
	return 0
}

// ParseBool reads the specialCase column of a profile import.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "x":
		return true
	}
	return false
}
