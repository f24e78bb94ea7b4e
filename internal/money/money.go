package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorUnits is the number of minor units (cents, paise) in one major unit.
const MinorUnits = 100

var ErrInvalidAmount = errors.New("invalid money amount")

var (
	hundred  = decimal.NewFromInt(MinorUnits)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64 + 1)
	printer  = message.NewPrinter(language.English)
)

// Parse converts a major-unit decimal string into minor units.
// Format examples: "2500" -> 250000, "1,234.56" -> 123456, "-0.01" -> -1.
func Parse(s string) (int64, error) {
	return fromDecimal(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// ParseEuropean parses a European-formatted amount string into minor units.
// Format examples: "1.234,56" -> 123456, "-588,74" -> -58874, "10,00" -> 1000.
func ParseEuropean(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return fromDecimal(clean)
}

func fromDecimal(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	minor := d.Mul(hundred)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}

	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	return minor.IntPart(), nil
}

// Format renders minor units as a grouped major-unit string, e.g. 150000000 -> "1,500,000.00".
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	return fmt.Sprintf("%s%s.%02d", sign, printer.Sprintf("%d", minor/MinorUnits), minor%MinorUnits)
}

// FormatSigned is Format with an explicit "+" on credits.
func FormatSigned(minor int64) string {
	if minor > 0 {
		return "+" + Format(minor)
	}

	return Format(minor)
}
