package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// REGISTRY TESTS
// ============================================================================

func TestLookupKnownColumns(t *testing.T) {
	tests := []struct {
		key      string
		labelRef string
		format   FormatClass
	}{
		{"total_paid", "col.total_paid", FormatCurrency},
		{"HCPCS_CODE", "col.HCPCS_CODE", FormatIdentity},
		{"observed_pct", "col.observed_pct", FormatPercentage},
		{"total_risk_score", "col.total_risk_score", FormatFloat},
		{"total_claims", "col.total_claims", FormatIdentity},
		// classified without a label entry
		{"median_cost_per_claim", "median_cost_per_claim", FormatCurrency},
		{"avg_claims_per_beneficiary", "avg_claims_per_beneficiary", FormatFloat},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := Lookup(tt.key)
			assert.Equal(t, tt.key, m.Key)
			assert.Equal(t, tt.labelRef, m.LabelRef)
			assert.Equal(t, tt.format, m.Format)
			assert.True(t, Known(tt.key))
		})
	}
}

func TestLookupUnknownColumnIsIdentity(t *testing.T) {
	m := Lookup("some_new_metric")

	assert.Equal(t, ColumnMeta{Key: "some_new_metric", LabelRef: "some_new_metric", Format: FormatIdentity}, m)
	assert.False(t, Known("some_new_metric"))
	assert.False(t, m.Labeled())
}

func TestClassificationSetsAreDisjoint(t *testing.T) {
	seen := map[string]FormatClass{}
	for class, keys := range map[FormatClass][]string{
		FormatCurrency:   currencyCols,
		FormatPercentage: percentageCols,
		FormatFloat:      floatCols,
	} {
		for _, k := range keys {
			prev, dup := seen[k]
			require.Falsef(t, dup, "%s is both %s and %s", k, prev, class)
			seen[k] = class
		}
	}
	assert.Len(t, currencyCols, 12)
	assert.Len(t, percentageCols, 8)
	assert.Len(t, floatCols, 21)
}

func TestAllIsSortedAndComplete(t *testing.T) {
	all := All()

	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Key, all[i].Key)
	}
	for _, m := range all {
		assert.True(t, m.Format.Valid(), m.Key)
		assert.Equal(t, m, Lookup(m.Key))
	}

	// mutating the returned slice leaves the registry alone
	all[0].Format = FormatCurrency
	all[0].LabelRef = "mutated"
	assert.NotEqual(t, "mutated", Lookup(all[0].Key).LabelRef)
}

func TestLabelKeysArePrefixed(t *testing.T) {
	keys := LabelKeys()

	assert.Len(t, keys, len(labeled))
	for _, k := range keys {
		assert.True(t, strings.HasPrefix(k, LabelPrefix), k)
	}
	assert.Contains(t, keys, "col.BILLING_PROVIDER_NPI_NUM")
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, FormatPercentage, ClassOf("share"))
	assert.Equal(t, FormatIdentity, ClassOf("unknown"))
}
