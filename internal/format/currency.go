package format

import (
	"math"
	"strings"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	usdSymbol = "$"
	nan       = "NaN"
)

var enUS = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders amount as US dollars with two fraction digits and
// thousands grouping, e.g. "$1,234.50". Unsupported inputs, nil included,
// yield "NaN" rather than an error.
func FormatCurrency(amount any) string {
	switch v := amount.(type) {
	case nil:
		return nan
	case domain.Money:
		return formatDecimal(v.Amount)
	case decimal.Decimal:
		return formatDecimal(v)
	case string:
		return formatFloat(parseLoose(v))
	default:
		n, err := toFloat(amount)
		if err != nil {
			return nan
		}
		return formatFloat(n)
	}
}

func formatFloat(n float64) string {
	switch {
	case math.IsNaN(n):
		return usdSymbol + nan
	case math.IsInf(n, 1):
		return usdSymbol + "∞"
	case math.IsInf(n, -1):
		return "-" + usdSymbol + "∞"
	}
	return formatDecimal(decimal.NewFromFloat(n))
}

func formatDecimal(d decimal.Decimal) string {
	rounded := d.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	_, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	whole := enUS.Sprintf("%d", rounded.IntPart())

	return sign + usdSymbol + whole + "." + frac
}
