// Package utils holds small parsing helpers shared by the HTTP layer. They
// carry no domain logic.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 int and returns def when s is empty or
// not a number. Surrounding whitespace is not trimmed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// PositiveID parses a path or JSON-key identifier such as a calendar day or
// a category id. It reports false for anything but a decimal integer >= 1.
func PositiveID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") {
		return 0, false
	}
	n := AtoiDefault(s, 0)
	return n, n >= 1
}
