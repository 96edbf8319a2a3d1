package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/claimlens/engine"
)

// ============================================================================
// CSV HELPER — Parses CSV exports into an engine.Dataset
// ============================================================================
// Header cells become column keys as written (trimmed, not re-cased: the
// registry is keyed by the exact names the analysis exports use).
//
// Cell typing:
//   ""            → null
//   parses float  → number ("1,234.5" and "$12" included)
//   otherwise     → text
//
// Columns holding identifiers (NPI numbers, HCPCS codes) can be kept as
// text with CSVOptions.TextColumns.
// ============================================================================

// CSVOptions tunes ParseCSV.
type CSVOptions struct {
	Comma       rune     // field separator; 0 → ','
	TextColumns []string // never coerced to numbers
}

// ParseCSV reads a header row followed by data rows. Short rows leave the
// trailing columns absent; extra cells beyond the header are dropped.
func ParseCSV(r io.Reader, opts ...CSVOptions) (engine.Dataset, error) {
	var o CSVOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if o.Comma != 0 {
		reader.Comma = o.Comma
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}
	return datasetFromRows(rows, o.TextColumns), nil
}

// datasetFromRows converts a header row plus string rows into typed rows.
// Shared by the CSV and XLSX readers.
func datasetFromRows(rows [][]string, textColumns []string) engine.Dataset {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	asText := make(map[string]bool, len(textColumns))
	for _, c := range textColumns {
		asText[c] = true
	}

	ds := make(engine.Dataset, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		if isBlank(raw) {
			continue
		}
		fields := make([]engine.Field, 0, len(headers))
		for j, cell := range raw {
			if j >= len(headers) {
				break
			}
			fields = append(fields, engine.Field{Key: headers[j], Value: cellValue(cell, asText[headers[j]])})
		}
		ds = append(ds, engine.NewRow(fields...))
	}
	return ds
}

func cellValue(cell string, text bool) engine.Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return engine.Null
	}
	if !text {
		if f, ok := parseNumeric(cell); ok {
			return engine.Number(f)
		}
	}
	return engine.Text(cell)
}

// parseNumeric accepts plain floats plus thousands separators and a
// leading dollar sign, with the sign before or after it.
func parseNumeric(s string) (float64, bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	if !neg && strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes a rendered table: translated headers, then formatted
// cells. A placeholder table writes only its message.
func WriteCSV(w io.Writer, spec *engine.TableSpec) error {
	cw := csv.NewWriter(w)
	if spec.Placeholder != nil {
		if err := cw.Write([]string{spec.Placeholder.Text}); err != nil {
			return err
		}
	} else {
		if err := cw.Write(spec.Headers); err != nil {
			return err
		}
		if err := cw.WriteAll(spec.Rows); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
