package helpers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/claimlens/engine"
)

const claimsCSV = `HCPCS_CODE,total_paid,total_claims,BILLING_PROVIDER_NPI_NUM
J1234,"1,234,567",42,1234567890
A0001,,7,0987654321
 G0299 ,$-12.5,n/a,42
`

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(claimsCSV))
	require.NoError(t, err)
	require.Len(t, ds, 3)

	assert.Equal(t, []string{"HCPCS_CODE", "total_paid", "total_claims", "BILLING_PROVIDER_NPI_NUM"}, ds.Keys())
	assert.Equal(t, engine.Number(1234567), ds[0].Get("total_paid"))
	assert.Equal(t, engine.Number(42), ds[0].Get("total_claims"))
	assert.True(t, ds[1].Get("total_paid").IsNull())
	assert.Equal(t, engine.Text("G0299"), ds[2].Get("HCPCS_CODE"))
	assert.Equal(t, engine.Number(-12.5), ds[2].Get("total_paid"))
	assert.Equal(t, engine.Text("n/a"), ds[2].Get("total_claims"))

	// leading zero lost when the id is coerced
	assert.Equal(t, engine.Number(987654321), ds[1].Get("BILLING_PROVIDER_NPI_NUM"))
}

func TestParseCSVTextColumns(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(claimsCSV), CSVOptions{TextColumns: []string{"BILLING_PROVIDER_NPI_NUM"}})
	require.NoError(t, err)

	assert.Equal(t, engine.Text("0987654321"), ds[1].Get("BILLING_PROVIDER_NPI_NUM"))
}

func TestParseCSVShapes(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader("\ufeffa;b\n1;x;extra\n\n2\n"), CSVOptions{Comma: ';'})
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, []string{"a", "b"}, ds[0].Keys())
	assert.Equal(t, []string{"a"}, ds[1].Keys())

	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	ds, err = ParseCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{"-3.5", -3.5, true},
		{"$1,000", 1000, true},
		{"-$20", -20, true},
		{"1e3", 1000, true},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"$", 0, false},
		{"J1234", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumeric(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func renderedTable(t *testing.T) *engine.TableSpec {
	t.Helper()
	ds, err := ParseCSV(strings.NewReader(claimsCSV))
	require.NoError(t, err)
	return engine.BuildTable(ds, []string{"HCPCS_CODE", "total_paid"}, engine.WithContainer("t"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, renderedTable(t)))

	assert.Equal(t, "Codice HCPCS,Spesa Totale\nJ1234,$1.2M\nA0001,-\nG0299,-$13\n", buf.String())
}

func TestWriteCSVPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, engine.BuildTable(nil, nil)))

	assert.Equal(t, "Nessun dato disponibile\n", buf.String())
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, renderedTable(t), "Codici"))

	ds, err := ReadXLSX(bytes.NewReader(buf.Bytes()), "")
	require.NoError(t, err)
	require.Len(t, ds, 3)

	assert.Equal(t, []string{"Codice HCPCS", "Spesa Totale"}, ds.Keys())
	assert.Equal(t, engine.Text("$1.2M"), ds[0].Get("Spesa Totale"))
	assert.Equal(t, engine.Text("-"), ds[1].Get("Spesa Totale"))

	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()), "Missing")
	assert.Error(t, err)
}

func TestReadXLSXInvalid(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a zip"), "")
	assert.Error(t, err)
}

func TestRenderText(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	out, err := RenderText(renderedTable(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Codice HCPCS")
	assert.Contains(t, out, "$1.2M")
	assert.Contains(t, out, "G0299")

	out, err = RenderText(engine.BuildTable(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "Nessun dato disponibile\n", out)
}
