package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/claimlens/schema"
)

func TestProfileColumns(t *testing.T) {
	ds := Dataset{
		NewRow(F("HCPCS_CODE", "J1"), F("total_paid", 10), F("notes", nil)),
		NewRow(F("HCPCS_CODE", "J2"), F("total_paid", "n/a"), F("late", 1)),
		NewRow(F("HCPCS_CODE", "J1"), F("total_paid", 10), F("notes", "")),
	}

	profiles := ProfileColumns(ds)
	require.Len(t, profiles, 4)

	code := profiles[0]
	assert.Equal(t, "HCPCS_CODE", code.Key)
	assert.Equal(t, ColumnText, code.Observed)
	assert.Equal(t, 2, code.Distinct)
	assert.Equal(t, []string{"J1", "J2"}, code.Samples)

	paid := profiles[1]
	assert.Equal(t, schema.FormatCurrency, paid.Format)
	assert.Equal(t, ColumnMixed, paid.Observed)
	assert.Equal(t, 0, paid.Nulls)

	notes := profiles[2]
	assert.Equal(t, ColumnEmpty, notes.Observed)
	assert.Equal(t, 3, notes.Nulls)
	assert.Empty(t, notes.Samples)

	late := profiles[3]
	assert.Equal(t, "late", late.Key)
	assert.Equal(t, ColumnNumeric, late.Observed)
	assert.Equal(t, 2, late.Nulls)
}

func TestProfileSamplesCapped(t *testing.T) {
	var ds Dataset
	for i := 0; i < 20; i++ {
		ds = append(ds, NewRow(F("n", i)))
	}
	p := ProfileColumns(ds)[0]

	assert.Equal(t, 20, p.Distinct)
	assert.Len(t, p.Samples, 5)
	assert.Equal(t, "0", p.Samples[0])
}

func TestProfileEmptyDataset(t *testing.T) {
	assert.Empty(t, ProfileColumns(nil))
}

func TestDescribeColumns(t *testing.T) {
	cols := DescribeColumns()
	require.NotEmpty(t, cols)

	byKey := make(map[string]LabeledColumn, len(cols))
	for _, c := range cols {
		byKey[c.Key] = c
	}
	assert.Equal(t, "Spesa Totale", byKey["total_paid"].Label)
	assert.Equal(t, schema.FormatCurrency, byKey["total_paid"].Format)
	assert.Equal(t, "median_cost_per_claim", byKey["median_cost_per_claim"].Label, "unlabeled keys show the key")
	assert.IsNonDecreasing(t, keysOf(cols))
}

func keysOf(cols []LabeledColumn) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}
