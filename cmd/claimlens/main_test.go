package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/spektr-org/claimlens/helpers"
)

// run executes the CLI with an isolated config home.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(xdg.Reload) // runs after the variable is restored
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeData(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const codesJSON = `{"result": {"rows": [
	{"HCPCS_CODE": "J1234", "total_paid": 1234567, "total_claims": 120},
	{"HCPCS_CODE": "A0001", "total_paid": null, "total_claims": 4}
]}}`

func TestTableJSON(t *testing.T) {
	data := writeData(t, "codes.json", codesJSON)

	out, err := run(t, "table", "--data", data, "--path", "result.rows", "--container", "codes")
	require.NoError(t, err)

	assert.Equal(t, "dt-codes", gjson.Get(out, "id").String())
	assert.Equal(t, `["Codice HCPCS","Spesa Totale","Claims Totali"]`, gjson.Get(out, "headers").Raw)
	assert.Equal(t, "$1.2M", gjson.Get(out, "rows.0.1").String())
	assert.Equal(t, "-", gjson.Get(out, "rows.1.1").String())
}

func TestTableFormats(t *testing.T) {
	data := writeData(t, "codes.csv", "HCPCS_CODE,total_paid\nJ1234,2500\n")

	out, err := run(t, "table", "--data", data, "--format", "csv", "--locale", "en")
	require.NoError(t, err)
	assert.Equal(t, "HCPCS Code,Total Paid\nJ1234,$2.5K\n", out)

	out, err = run(t, "table", "--data", data, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Spesa Totale")
	assert.Contains(t, out, "$2.5K")

	_, err = run(t, "table", "--data", data, "--format", "xlsx")
	assert.ErrorContains(t, err, "--out")

	_, err = run(t, "table", "--data", data, "--format", "yaml")
	assert.Error(t, err)
}

func TestTableXLSXExport(t *testing.T) {
	data := writeData(t, "codes.json", codesJSON)
	outFile := filepath.Join(t.TempDir(), "codes.xlsx")

	_, err := run(t, "table", "--data", data, "--path", "result.rows", "--format", "xlsx", "--out", outFile)
	require.NoError(t, err)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()
	ds, err := helpers.ReadXLSX(f, "")
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "$1.2M", ds[0].Get("Spesa Totale").String())
}

func TestChartBar(t *testing.T) {
	data := writeData(t, "codes.json", codesJSON)

	out, err := run(t, "chart", "bar", "--data", data, "--path", "result.rows",
		"--x", "HCPCS_CODE", "--y", "total_paid", "--horizontal", "--container", "c")
	require.NoError(t, err)

	assert.Equal(t, "bar", gjson.Get(out, "kind").String())
	assert.Equal(t, "h", gjson.Get(out, "traces.0.orientation").String())
	assert.Equal(t, `["J1234","A0001"]`, gjson.Get(out, "traces.0.y").Raw)
}

func TestChartRadarFromFlags(t *testing.T) {
	out, err := run(t, "chart", "radar", "--categories", "a,b,c", "--values", "10,20,30")
	require.NoError(t, err)

	assert.Equal(t, `[10,20,30,10]`, gjson.Get(out, "traces.0.r").Raw)
}

func TestChartNetworkAndHeatmap(t *testing.T) {
	network := writeData(t, "net.json", `{"nodes": [{"id": 1, "x": 0, "y": 0, "degree": 2}, {"id": 2, "x": 1, "y": 1, "degree": 2}],
		"edges": [{"source": 1, "target": 2}]}`)
	out, err := run(t, "chart", "network", "--data", network)
	require.NoError(t, err)
	assert.Len(t, gjson.Get(out, "traces.0.x").Array(), 3)

	matrix := writeData(t, "corr.json", `{"columns": ["a", "b"], "matrix": [[1, 0.5], [0.5, 1]]}`)
	out, err = run(t, "chart", "correlation", "--data", matrix)
	require.NoError(t, err)
	assert.Equal(t, "heatmap", gjson.Get(out, "kind").String())
	assert.Equal(t, "0.50", gjson.Get(out, "traces.0.text.0.1").String())
}

func TestChartStackedComponents(t *testing.T) {
	data := writeData(t, "scores.json", `[{"BILLING_PROVIDER_NPI_NUM": "1234567890123", "benford_score": 0.3, "zscore_severity": 0.1}]`)

	out, err := run(t, "chart", "stacked_bar", "--data", data, "--x", "BILLING_PROVIDER_NPI_NUM",
		"--component", "benford_score", "--component", "zscore_severity:Z")
	require.NoError(t, err)

	assert.Equal(t, "Benford", gjson.Get(out, "traces.0.name").String())
	assert.Equal(t, "Z", gjson.Get(out, "traces.1.name").String())
	assert.Equal(t, `["...890123"]`, gjson.Get(out, "traces.0.x").Raw)
}

func TestChartRequestFile(t *testing.T) {
	req := writeData(t, "req.json", `{"type": "kpi", "kpi": {"items": [{"key": "total_paid"}]}, "data": [{"total_paid": 5000}]}`)

	out, err := run(t, "chart", "--request", req)
	require.NoError(t, err)
	assert.Equal(t, "$5.0K", gjson.Get(out, "kpis.0.value").String())
}

func TestChartErrors(t *testing.T) {
	data := writeData(t, "codes.json", codesJSON)

	_, err := run(t, "chart")
	assert.Error(t, err)

	_, err = run(t, "chart", "pie", "--data", data)
	assert.ErrorContains(t, err, "unknown chart kind")

	_, err = run(t, "chart", "line", "--data", data, "--path", "result.rows", "--x", "HCPCS_CODE")
	assert.ErrorContains(t, err, "invalid request")

	_, err = run(t, "chart", "bar", "--x", "a", "--y", "b")
	assert.ErrorContains(t, err, "--data")
}

func TestColumnsAndLabels(t *testing.T) {
	data := writeData(t, "codes.json", codesJSON)

	out, err := run(t, "columns", "--data", data, "--path", "result.rows", "--json")
	require.NoError(t, err)
	assert.Equal(t, "currency", gjson.Get(out, `#(key=="total_paid").format`).String())
	assert.Equal(t, int64(1), gjson.Get(out, `#(key=="total_paid").nulls`).Int())

	out, err = run(t, "columns", "--data", data, "--path", "result.rows")
	require.NoError(t, err)
	assert.Contains(t, out, "Spesa Totale")

	out, err = run(t, "labels", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Paid")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "claimlens version "+version)
}

func TestBadLocale(t *testing.T) {
	_, err := run(t, "labels", "--locale", "??")
	assert.Error(t, err)
}
