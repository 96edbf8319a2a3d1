package engine

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// FORMATTING — Scalar → display string
// ============================================================================
// All formatters render Null as CellPlaceholder. Any other value is coerced to a
// number first; coercion of non-numeric text is the caller's problem and
// shows up as "NaN" rather than an error.
//
// Rounding is half away from zero on the float's exact binary value, so
// 1.005 (stored as 1.00499999999999989...) renders "1.00" at two places and
// 1_450_000 renders "$1.4M". Thousands use "," every three digits.
// ============================================================================

// CellPlaceholder is shown for null and empty cells.
const CellPlaceholder = "-"

const (
	// DefaultFloatDecimals is the precision of FormatFloat for unclassified numbers.
	DefaultFloatDecimals = 2
	// CellFloatDecimals is the precision for float-classified table columns.
	CellFloatDecimals = 3
)

// exactExp is the exponent of the smallest subnormal float64. Asking
// decimal for at least this many places keeps every float exact.
const exactExp = -1074

// FormatNumber renders v rounded to an integer with thousands separators.
// 1234567.4 → "1,234,567".
func FormatNumber(v Value) string {
	if v.IsNull() {
		return CellPlaceholder
	}
	f, _ := v.Float()
	if s, ok := nonFinite(f); ok {
		return s
	}
	d := exactDecimal(f).Round(0)
	if d.IsNegative() {
		return "-" + groupDigits(d.Neg().StringFixed(0))
	}
	return groupDigits(d.StringFixed(0))
}

// FormatCurrency renders a compact dollar amount. The first tier whose
// threshold the magnitude reaches wins: B, M, K with one decimal, otherwise
// whole dollars. 1_500_000_000 → "$1.5B", 2_500 → "$2.5K", 500 → "$500".
func FormatCurrency(v Value) string {
	if v.IsNull() {
		return CellPlaceholder
	}
	f, _ := v.Float()
	if s, ok := nonFinite(f); ok {
		return s
	}

	abs := math.Abs(f)
	var body string
	switch {
	case abs >= 1e9:
		body = fixed(abs/1e9, 1) + "B"
	case abs >= 1e6:
		body = fixed(abs/1e6, 1) + "M"
	case abs >= 1e3:
		body = fixed(abs/1e3, 1) + "K"
	default:
		body = fixed(abs, 0)
	}
	if f < 0 && body != "0" {
		return "-$" + body
	}
	return "$" + body
}

// FormatDollar renders an exact dollar amount with grouping and two
// decimals, no magnitude scaling. 1234.5 → "$1,234.50".
func FormatDollar(v Value) string {
	if v.IsNull() {
		return CellPlaceholder
	}
	f, _ := v.Float()
	if s, ok := nonFinite(f); ok {
		return s
	}

	d := exactDecimal(math.Abs(f)).Round(2)
	intDigits, frac, _ := strings.Cut(d.StringFixed(2), ".")
	out := "$" + groupDigits(intDigits) + "." + frac
	if f < 0 && !d.IsZero() {
		return "-" + out
	}
	return out
}

// FormatPercent renders v with one decimal and a trailing "%". The value is
// taken as already scaled to 0–100.
func FormatPercent(v Value) string {
	if v.IsNull() {
		return CellPlaceholder
	}
	f, _ := v.Float()
	if s, ok := nonFinite(f); ok {
		return s
	}
	return fixed(f, 1) + "%"
}

// FormatFloat renders v in fixed-point notation with the given number of
// decimals (negative counts as zero).
func FormatFloat(v Value, decimals int) string {
	if v.IsNull() {
		return CellPlaceholder
	}
	f, _ := v.Float()
	if s, ok := nonFinite(f); ok {
		return s
	}
	return fixed(f, decimals)
}

// ShortID abbreviates long identifiers such as NPIs for axis labels:
// longer than 10 characters → "..." + the last 6. Falsy values render as CellPlaceholder.
func ShortID(v Value) string {
	if !v.Truthy() {
		return CellPlaceholder
	}
	s := []rune(v.String())
	if len(s) > 10 {
		return "..." + string(s[len(s)-6:])
	}
	return string(s)
}

// ============================================================================
// HELPERS
// ============================================================================

func fixed(f float64, decimals int) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	if decimals < 0 {
		decimals = 0
	}
	return exactDecimal(f).StringFixed(int32(decimals))
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	}
	return "", false
}

// exactDecimal converts f without shortening it to its shortest decimal
// form first. f must be finite.
func exactDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(f, exactExp)
}

// groupDigits inserts thousands separators into an unsigned digit string
// of any length.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
