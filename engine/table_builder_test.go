package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/claimlens/schema"
)

// ============================================================================
// TABLE BUILDER TESTS
// ============================================================================

type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) T(key string) string {
	return m.Called(key).String(0)
}

func TestBuildTableEndToEnd(t *testing.T) {
	var ds Dataset
	require.NoError(t, json.Unmarshal([]byte(`[
		{"HCPCS_CODE": "J1234", "total_paid": 1234567},
		{"HCPCS_CODE": "A0001", "total_paid": null}
	]`), &ds))

	spec := BuildTable(ds, nil, WithContainer("top-codes"))

	assert.Equal(t, "dt-top-codes", spec.ID)
	assert.Nil(t, spec.Placeholder)
	assert.Equal(t, []string{"Codice HCPCS", "Spesa Totale"}, spec.Headers)
	assert.Equal(t, [][]string{
		{"J1234", "$1.2M"},
		{"A0001", "-"},
	}, spec.Rows)
	assert.Equal(t, schema.FormatCurrency, spec.Columns[1].Format)

	require.NotNil(t, spec.Options)
	assert.Equal(t, DefaultPageSize, spec.Options.PageLength)
	assert.Equal(t, "lfrtip", spec.Options.DOM)
	assert.Empty(t, spec.Options.Order)
	assert.Equal(t, "Cerca:", spec.Options.Language.Search)
	assert.Equal(t, "Prima", spec.Options.Language.Paginate.First)
}

func TestBuildTableIdempotent(t *testing.T) {
	ds := Dataset{
		NewRow(F("BILLING_PROVIDER_NPI_NUM", "1234567890"), F("share", 0.25), F("hhi", 0.123456)),
		NewRow(F("BILLING_PROVIDER_NPI_NUM", "999"), F("share", 42), F("hhi", nil)),
	}
	a := BuildTable(ds, nil, WithContainer("x"))
	b := BuildTable(ds, nil, WithContainer("x"))

	assert.Equal(t, a, b)
	assert.Equal(t, []string{"1234567890", "25.0%", "0.123"}, a.Rows[0])
	assert.Equal(t, []string{"999", "42.0%", "-"}, a.Rows[1])
}

func TestBuildTableEmpty(t *testing.T) {
	spec := BuildTable(nil, []string{"total_paid"}, WithContainer("e"))

	assert.Equal(t, "dt-e", spec.ID)
	require.NotNil(t, spec.Placeholder)
	assert.Equal(t, MsgNoData, spec.Placeholder.MessageKey)
	assert.Equal(t, "Nessun dato disponibile", spec.Placeholder.Text)
	assert.Nil(t, spec.Headers)
	assert.Nil(t, spec.Rows)
	assert.Nil(t, spec.Options)
}

func TestBuildTableRandomID(t *testing.T) {
	ds := Dataset{NewRow(F("a", 1))}
	a, b := BuildTable(ds, nil), BuildTable(ds, nil)

	assert.Regexp(t, `^dt-[0-9a-f-]{36}$`, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBuildTableExplicitColumns(t *testing.T) {
	ds := Dataset{
		NewRow(F("a", 1), F("total_claims", 12000), F("extra", "x")),
		NewRow(F("total_claims", 7)),
	}
	spec := BuildTable(ds, []string{"total_claims", "a", "missing"}, withKeys, WithPageSize(10))

	assert.Equal(t, []string{"col.total_claims", "a", "missing"}, spec.Headers)
	assert.Equal(t, [][]string{
		{"12,000", "1", "-"},
		{"7", "-", "-"},
	}, spec.Rows)
	assert.Equal(t, 10, spec.Options.PageLength)
}

func TestBuildTableUsesTranslator(t *testing.T) {
	tr := new(mockTranslator)
	tr.On("T", "col.total_paid").Return("Paid").Once()
	tr.On("T", mock.MatchedBy(func(key string) bool { return key != "col.total_paid" })).Return("?")

	spec := BuildTable(Dataset{NewRow(F("total_paid", 10))}, nil, WithTranslator(tr))

	assert.Equal(t, []string{"Paid"}, spec.Headers)
	assert.Equal(t, [][]string{{"$10"}}, spec.Rows)
	tr.AssertCalled(t, "T", "table.search")
	tr.AssertNumberOfCalls(t, "T", 1+7)
}

func TestFormatCellDispatch(t *testing.T) {
	tests := []struct {
		key  string
		in   Value
		want string
	}{
		{"total_paid", Null, "-"},
		{"total_paid", Text(""), "-"},
		{"total_paid", Number(2500), "$2.5K"},
		{"share", Number(0.153), "15.3%"},
		{"share", Number(1), "100.0%"},
		{"share", Number(-1), "-100.0%"},
		{"share", Number(15.3), "15.3%"},
		{"share", Number(0), "0.0%"},
		{"benford_score", Number(0.5), "0.500"},
		{"total_claims", Number(1234567), "1,234,567"},
		{"total_claims", Number(2.5), "2.50"},
		{"HCPCS_CODE", Text("J1234"), "J1234"},
		{"unknown_col", Number(0), "0"},
		{"unknown_col", Text("0"), "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCell(tt.key, tt.in), "%s=%v", tt.key, tt.in)
	}
}
