// Package util holds argument helpers shared by the command handlers.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// CleanArgs unquotes every argument in place and returns the slice.
func CleanArgs(args []string) []string {
	for i, v := range args {
		args[i] = FixEscapeQuotes(TrimQuotes(strings.TrimSpace(v)))
	}
	return args
}

// ParseUint parses an unsigned integer that callers may have sent as a
// float ("42.0"). Values that do not fit in bitSize bits are rejected.
func ParseUint(s string, bitSize int) (uint64, error) {
	if v, err := strconv.ParseUint(s, 10, bitSize); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	v := uint64(f)
	if f < 0 || f != float64(v) || (bitSize < 64 && v>>uint(bitSize) != 0) {
		return 0, fmt.Errorf("%q is not a valid uint%d", s, bitSize)
	}
	return v, nil
}

// ParseBool accepts true/false in any case plus 1/0.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}
