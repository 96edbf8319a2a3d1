// Package claimlens turns claim-risk analysis results into render-ready
// chart and table specs for a fraud-review dashboard.
//
// Usage:
//
//	import "github.com/spektr-org/claimlens/engine"
//
//	rows, err := engine.DatasetFromJSON(body, "result.rows")
//
//	chart := engine.BuildChart(engine.BarChart{
//	    X: "HCPCS_CODE",
//	    Y: "total_paid",
//	}, rows)
//
//	table := engine.BuildTable(rows, nil, engine.WithContainer("codes"))
//
// Rows are ordered column/value maps (engine.Dataset). Column labels come
// from the schema registry and are localized by the translator package;
// numbers are shortened by the engine formatters ($1.2M, 45.6%, 1.2K).
//
// The engine never calls any external service. Loading data (CSV, XLSX,
// JSON) lives in helpers, and the claimlens command exposes everything
// on the terminal and over HTTP.
package claimlens
