package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDisplayLen is the display width in characters. Longer numbers are
	// cut, not rounded.
	MaxDisplayLen = 10

	// InfinityText replaces a ±Inf result.
	InfinityText = "really?"
	// NaNText replaces a NaN result.
	NaNText = "you broke it"
	// ErrorText replaces the result of an unknown operator.
	ErrorText = "Error"
)

// FormatNumber renders v the way the display shows it: shortest decimal
// form, exponent notation outside [1e-6, 1e21), cut to MaxDisplayLen.
// Infinite and NaN values become their sentinel texts, which are never cut.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 0):
		return InfinityText
	case math.IsNaN(v):
		return NaNText
	case v == 0:
		// covers negative zero
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return truncate(trimExponent(strconv.FormatFloat(v, 'e', -1, 64)))
	}
	return truncate(strconv.FormatFloat(v, 'f', -1, 64))
}

// IsSentinel reports whether text is one of the fixed non-numeric display
// texts.
func IsSentinel(text string) bool {
	switch text {
	case InfinityText, NaNText, ErrorText:
		return true
	}
	return false
}

// parseDisplay reads the buffer as a number. Anything that is not a number
// (an empty buffer, a lone "-", a sentinel) reads as NaN.
func parseDisplay(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v
	}
	if errors.Is(err, strconv.ErrRange) {
		return v
	}
	return math.NaN()
}

func truncate(s string) string {
	if len(s) > MaxDisplayLen {
		return s[:MaxDisplayLen]
	}
	return s
}

// trimExponent turns Go's "1e-07" into "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}
