package format

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrNotNumeric = errors.New("value is not a number or a string")

// epsilon is the gap between 1 and the next float64, nudging values such as
// 1.005 (stored as 1.00499...) over the rounding midpoint.
const epsilon = 0x1p-52

// FormatNumberWithDecimal pads the fractional part of n to two digits.
// It never rounds or truncates: 5.123 stays "5.123".
func FormatNumberWithDecimal(n float64) string {
	if n == 0 {
		// drops the sign of -0
		n = 0
	}

	var s string
	switch {
	case math.IsInf(n, 1):
		s = "Infinity"
	case math.IsInf(n, -1):
		s = "-Infinity"
	default:
		s = strconv.FormatFloat(n, 'f', -1, 64)
	}
	intPart, frac, ok := strings.Cut(s, ".")
	if !ok {
		return intPart + ".00"
	}
	if len(frac) < 2 {
		frac += strings.Repeat("0", 2-len(frac))
	}
	return intPart + "." + frac
}

// Round2 rounds value to two decimal places. Strings are parsed the way a
// loose numeric conversion would: blank is zero, garbage is NaN.
func Round2(value any) (float64, error) {
	n, err := toFloat(value)
	if err != nil {
		return 0, err
	}
	return math.Floor((n+epsilon)*100+0.5) / 100, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case decimal.Decimal:
		return v.InexactFloat64(), nil
	case string:
		return parseLoose(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, value)
	}
}

// decimalLiteral is the only plain spelling parseLoose accepts: no inf, nan,
// underscores or hex floats.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var radixPrefixes = map[string]int{
	"0x": 16, "0X": 16,
	"0o": 8, "0O": 8,
	"0b": 2, "0B": 2,
}

// parseLoose converts s the way a loose numeric conversion does. Blank is 0,
// "Infinity" may be signed, and unsigned 0x, 0o or 0b integers are read in
// their base. Anything else that is not a decimal literal is NaN.
func parseLoose(s string) float64 {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 {
		if base, ok := radixPrefixes[s[:2]]; ok {
			return parseRadix(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return n
}

func parseRadix(digits string, base int) float64 {
	for _, r := range digits {
		if d, ok := digitValue(r); !ok || d >= base {
			return math.NaN()
		}
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}
