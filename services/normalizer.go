package services

import (
	"regexp"
	"strings"
)

// Canonical HPO identifier shapes. A canonical id is "HP:" followed by
// exactly seven digits; a bare seven-digit string is accepted as shorthand.
var (
	canonicalIDPattern = regexp.MustCompile(`^HP:\d{7}$`)
	numericIDPattern   = regexp.MustCompile(`^\d+$`)
	bareNumericPattern = regexp.MustCompile(`^\d{7}$`)
)

// NormalizeTermID canonicalizes a user-supplied term reference into the
// source's key format. It is pure and total: input that matches neither
// shape is passed through unchanged, and the remote source decides whether
// to accept it.
func NormalizeTermID(input string) string {
	trimmed := strings.TrimSpace(input)

	if canonicalIDPattern.MatchString(trimmed) {
		return trimmed
	}

	if numericIDPattern.MatchString(trimmed) {
		padded := trimmed
		for len(padded) < 7 {
			padded = "0" + padded
		}
		return "HP:" + padded
	}

	return trimmed
}

// IsWellFormedTermID reports whether input exactly matches the canonical
// "HP:NNNNNNN" form or the bare seven-digit shorthand. This is informational
// only; operations may still be attempted with ids that fail this check.
func IsWellFormedTermID(input string) bool {
	return canonicalIDPattern.MatchString(input) || bareNumericPattern.MatchString(input)
}
