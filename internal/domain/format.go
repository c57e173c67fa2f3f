package domain

import (
	"math"
	"strconv"
	"strings"
)

// Fixed notation is used for magnitudes in [fixedMin, fixedMax); anything
// outside renders in exponent form.
const (
	fixedMin = 1e-6
	fixedMax = 1e21
)

// FormatNumber renders v as display text.
//
// The digits are the shortest decimal that round-trips to v. Zero (including
// negative zero) renders "0". Non-finite values render "Infinity", "-Infinity"
// and "NaN". Exponents carry an explicit sign and no leading zeros ("1e+21",
// "1.5e-7").
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= fixedMin && abs < fixedMax {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + exp[:1] + digits
}

// ParseNumber parses buffer text into a value. A trailing decimal point is
// accepted ("5." is 5).
func ParseNumber(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
