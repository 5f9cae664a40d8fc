package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// displayLocale is the locale amounts and percentages are rendered in.
var displayLocale = language.BrazilianPortuguese

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount as Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(amount decimal.Decimal) string {
	p := message.NewPrinter(displayLocale)
	rounded := amount.Round(2)
	f, _ := rounded.Abs().Float64()
	s := p.Sprintf("R$ %.2f", f)
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatPercent renders a percentage value (50 means 50%) with two decimals, e.g. "12,34%".
func FormatPercent(value decimal.Decimal) string {
	p := message.NewPrinter(displayLocale)
	f, _ := value.Round(2).Float64()
	return p.Sprintf("%.2f%%", f)
}

var nonAmountChars = regexp.MustCompile(`[^\d,.\-]`)

// ParseCurrency converts user-entered currency text into a decimal. Either "," or "."
// may be the decimal separator; when several separators appear, only the last one is
// treated as decimal and the rest are grouping. Empty input parses to zero.
func ParseCurrency(value string) (decimal.Decimal, error) {
	clean := nonAmountChars.ReplaceAllString(value, "")
	if clean == "" {
		return decimal.Zero, nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == ',' || r == '.' })
	sepCount := strings.Count(clean, ",") + strings.Count(clean, ".")

	var normalized string
	switch {
	case sepCount == 0:
		normalized = clean
	case sepCount == 1:
		normalized = strings.Replace(clean, ",", ".", 1)
	default:
		if len(parts) < 2 {
			return decimal.Zero, fmt.Errorf("invalid currency value %q", value)
		}
		last := parts[len(parts)-1]
		normalized = strings.Join(parts[:len(parts)-1], "") + "." + last
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency value %q: %w", value, err)
	}
	return d, nil
}

// FormatDate renders a calendar date as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// CalculateProgress returns current/target as a percentage clamped to [0,100].
func CalculateProgress(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	p := current.Div(target).Mul(hundred)
	return decimal.Min(hundred, decimal.Max(decimal.Zero, p))
}

// FormatInstallment renders the installment position, e.g. "3/12".
func FormatInstallment(current, total int) string {
	return fmt.Sprintf("%d/%d", current, total)
}
