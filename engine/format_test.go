package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// FORMAT TESTS
// ============================================================================

func TestFormatCurrencyTiers(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1_500_000_000, "$1.5B"},
		{1e9, "$1.0B"},
		{1_234_567, "$1.2M"},
		{999_999, "$1000.0K"}, // first matching tier only
		{2_500, "$2.5K"},
		{1_000, "$1.0K"},
		{999, "$999"},
		{500, "$500"},
		{0.4, "$0"},
		{0, "$0"},
		{-1_500_000, "-$1.5M"},
		{-20, "-$20"},
		{1_450_000, "$1.4M"}, // 1.45 is stored just below the tie
		{2_650, "$2.6K"},
		{-12.5, "-$13"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(Number(tt.in)), "%v", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(Number(1234567.4)))
	assert.Equal(t, "1,234,568", FormatNumber(Number(1234567.5)))
	assert.Equal(t, "999", FormatNumber(Number(999)))
	assert.Equal(t, "-12,000", FormatNumber(Number(-12000)))
	assert.Equal(t, "0", FormatNumber(Number(-0.2)))
	assert.Equal(t, "1,000", FormatNumber(Text("1000")))
}

func TestFormatDollar(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatDollar(Number(1234.5)))
	assert.Equal(t, "$0.13", FormatDollar(Number(0.125)))
	assert.Equal(t, "-$1,000,000.00", FormatDollar(Number(-1e6)))
	assert.Equal(t, "$0.00", FormatDollar(Number(-0.001)))
}

func TestFormatPercentAndFloat(t *testing.T) {
	assert.Equal(t, "15.3%", FormatPercent(Number(15.3)))
	assert.Equal(t, "0.0%", FormatPercent(Number(0)))
	assert.Equal(t, "-2.5%", FormatPercent(Number(-2.45)))

	assert.Equal(t, "3.14", FormatFloat(Number(math.Pi), DefaultFloatDecimals))
	assert.Equal(t, "3.142", FormatFloat(Number(math.Pi), CellFloatDecimals))
	assert.Equal(t, "2.30", FormatFloat(Number(2.3), 2))
	assert.Equal(t, "3", FormatFloat(Number(2.5), -1))
}

func TestFormatRoundsBinaryValue(t *testing.T) {
	assert.Equal(t, "1.00", FormatFloat(Number(1.005), 2))
	assert.Equal(t, "2.67", FormatFloat(Number(2.675), 2))
	assert.Equal(t, "0.13", FormatFloat(Number(0.125), 2)) // exact tie, away from zero
	assert.Equal(t, "-0.13", FormatFloat(Number(-0.125), 2))
	assert.Equal(t, "$1.01", FormatDollar(Number(1.005+1e-9)))
	assert.Equal(t, "$1.00", FormatDollar(Number(1.005)))
}

func TestFormatNumberGroupsLargeValues(t *testing.T) {
	assert.Equal(t, "100,000,000,000,000,000,000", FormatNumber(Number(1e20)))
	assert.Equal(t, "-9,223,372,036,854,775,808", FormatNumber(Number(-9223372036854775808)))
	assert.Equal(t, "123", groupDigits("123"))
	assert.Equal(t, "1,234", groupDigits("1234"))
	assert.Equal(t, "123,456", groupDigits("123456"))
}

func TestFormattersRenderNullAsPlaceholder(t *testing.T) {
	assert.Equal(t, CellPlaceholder, FormatNumber(Null))
	assert.Equal(t, CellPlaceholder, FormatCurrency(Null))
	assert.Equal(t, CellPlaceholder, FormatDollar(Null))
	assert.Equal(t, CellPlaceholder, FormatPercent(Null))
	assert.Equal(t, CellPlaceholder, FormatFloat(Null, 2))
}

// Non-numeric text is a caller error. The formatters do not guard against
// it beyond not panicking: the result is "NaN".
func TestFormattersNonNumericContract(t *testing.T) {
	bad := Text("n/a")

	assert.NotPanics(t, func() {
		assert.Equal(t, "NaN", FormatNumber(bad))
		assert.Equal(t, "NaN", FormatCurrency(bad))
		assert.Equal(t, "NaN", FormatPercent(bad))
		assert.Equal(t, "NaN", FormatFloat(bad, 2))
		assert.Equal(t, "Infinity", FormatFloat(Number(math.Inf(1)), 2))
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1234567890", ShortID(Text("1234567890")))
	assert.Equal(t, "...678901", ShortID(Text("12345678901")))
	assert.Equal(t, "...678901", ShortID(Number(12345678901)))
	assert.Equal(t, CellPlaceholder, ShortID(Null))
	assert.Equal(t, CellPlaceholder, ShortID(Text("")))
	assert.Equal(t, CellPlaceholder, ShortID(Number(0)))
}
