package engine

import (
	"math"

	"github.com/spektr-org/claimlens/schema"
)

// ============================================================================
// TABLE BUILDER — Produces a TableSpec from a Dataset
// ============================================================================
// Columns come from the explicit list, else from the first row's keys.
// Later rows are not checked against that set: a missing cell renders as
// the placeholder and extra keys are ignored.
//
// Every cell is a display string formatted per the column's registry class.
// Headers are the registry label references passed through the translator.
// ============================================================================

// BuildTable renders ds. An empty dataset yields a spec carrying only the
// "no data" placeholder.
func BuildTable(ds Dataset, columns []string, opts ...Option) *TableSpec {
	cfg := applyOptions(opts)
	spec := &TableSpec{ID: "dt-" + cfg.containerID()}

	if len(ds) == 0 {
		spec.Placeholder = &Placeholder{MessageKey: MsgNoData, Text: cfg.t(MsgNoData)}
		cfg.Logger.Debug().Str("id", spec.ID).Msg("table empty, placeholder")
		return spec
	}

	if len(columns) == 0 {
		columns = ds.Keys()
	}

	spec.Columns = make([]schema.ColumnMeta, len(columns))
	spec.Headers = make([]string, len(columns))
	for i, col := range columns {
		meta := schema.Lookup(col)
		spec.Columns[i] = meta
		spec.Headers[i] = cfg.t(meta.LabelRef)
	}

	spec.Rows = make([][]string, len(ds))
	for i, r := range ds {
		cells := make([]string, len(columns))
		for j, meta := range spec.Columns {
			cells[j] = formatCellAs(meta.Format, r.Get(meta.Key))
		}
		spec.Rows[i] = cells
	}

	spec.Options = tableOptions(cfg)

	cfg.Logger.Debug().
		Str("id", spec.ID).
		Int("rows", len(spec.Rows)).
		Int("columns", len(columns)).
		Msg("table built")
	return spec
}

func tableOptions(cfg *config) *TableOptions {
	return &TableOptions{
		PageLength: cfg.PageSize,
		Order:      []any{},
		DOM:        "lfrtip",
		Language: TableLanguage{
			Search:     cfg.t("table.search"),
			LengthMenu: cfg.t("table.lengthMenu"),
			Info:       cfg.t("table.info"),
			Paginate: Paginate{
				First:    cfg.t("table.paginate.first"),
				Last:     cfg.t("table.paginate.last"),
				Next:     cfg.t("table.paginate.next"),
				Previous: cfg.t("table.paginate.previous"),
			},
		},
	}
}

// ============================================================================
// CELL FORMATTING
// ============================================================================

// FormatCell renders one cell of column key. First match wins:
//
//	null / empty text     → "-"
//	currency column       → FormatCurrency
//	percentage column     → FormatPercent, ×100 first when |v| ≤ 1
//	float column          → 3 decimals
//	other, integer number → FormatNumber
//	other, number         → 2 decimals
//	anything else         → text as-is
func FormatCell(key string, v Value) string {
	return formatCellAs(schema.ClassOf(key), v)
}

func formatCellAs(class schema.FormatClass, v Value) string {
	if v.IsEmpty() {
		return CellPlaceholder
	}
	switch class {
	case schema.FormatCurrency:
		return FormatCurrency(v)
	case schema.FormatPercentage:
		return FormatPercent(Number(normalizePercent(v)))
	case schema.FormatFloat:
		return FormatFloat(v, CellFloatDecimals)
	}
	if v.IsInteger() {
		return FormatNumber(v)
	}
	if v.IsNumber() {
		return FormatFloat(v, DefaultFloatDecimals)
	}
	return v.String()
}

// normalizePercent treats |v| ≤ 1 as a fraction. Exactly 1 is a fraction,
// so 1 → 100%.
func normalizePercent(v Value) float64 {
	f, _ := v.Float()
	if math.Abs(f) <= 1 {
		return f * 100
	}
	return f
}
