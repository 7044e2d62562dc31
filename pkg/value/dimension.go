package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Units lists the recognized dimension suffixes.
var Units = map[string]bool{
	"px": true, "%": true, "em": true, "rem": true, "ex": true, "ch": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
	"pt": true, "pc": true, "in": true, "cm": true, "mm": true,
	"deg": true, "rad": true, "turn": true,
	"s": true, "ms": true,
}

// looksNumeric reports whether s starts like a decimal number: an optional
// sign followed by a digit, or by a dot and a digit.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if s[0] == '.' {
		return len(s) > 1 && isDigit(s[1])
	}
	return isDigit(s[0])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// splitUnit splits a numeric string into its number and unit parts.
func splitUnit(s string) (num, unit string) {
	i := len(s)
	for i > 0 {
		b := s[i-1]
		if b == '%' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			i--
			continue
		}
		break
	}
	return s[:i], strings.ToLower(s[i:])
}

// ParseDimension parses a number with a unit suffix, such as "12px" or
// "-0.5em".
func ParseDimension(s string) (float64, string, error) {
	in := strings.TrimSpace(s)
	num, unit := splitUnit(in)
	if unit == "" {
		return 0, "", fmt.Errorf("%w: dimension %q has no unit", ErrInvalidValue, s)
	}
	if !Units[unit] {
		return 0, "", fmt.Errorf("%w: dimension %q has unknown unit %q", ErrInvalidValue, s, unit)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: dimension %q: bad number %q", ErrInvalidValue, s, num)
	}
	if err := checkFinite(f, s); err != nil {
		return 0, "", err
	}
	return f, unit, nil
}

// FormatDimension formats a magnitude and unit in plain decimal notation.
func FormatDimension(f float64, unit string) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + unit
}

// SplitRelative recognizes the "+=N" and "-=N" shorthand for relative values
// and returns the signed delta literal.
func SplitRelative(v any) (any, bool) {
	s, ok := v.(string)
	if !ok {
		return v, false
	}
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "+="):
		return strings.TrimSpace(s[2:]), true
	case strings.HasPrefix(s, "-="):
		rest := strings.TrimSpace(s[2:])
		if strings.HasPrefix(rest, "-") {
			return rest[1:], true
		}
		return "-" + rest, true
	default:
		return v, false
	}
}
