package schema

// ============================================================================
// SCHEMA — Column metadata for claim-risk datasets
// ============================================================================
// Datasets arrive without a declared schema. The registry in registry.go is
// the single place that imposes structure on them: every column key maps to
// a label reference (resolved by the translator) and a format class (used
// by the table cell formatter).
// ============================================================================

// FormatClass selects how a column's cells are rendered.
type FormatClass string

const (
	FormatCurrency   FormatClass = "currency"
	FormatPercentage FormatClass = "percentage"
	FormatFloat      FormatClass = "float"
	FormatIdentity   FormatClass = "identity"
)

// Valid reports whether c is one of the four known classes.
func (c FormatClass) Valid() bool {
	switch c {
	case FormatCurrency, FormatPercentage, FormatFloat, FormatIdentity:
		return true
	}
	return false
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key      string      `json:"key"`
	LabelRef string      `json:"labelRef"`
	Format   FormatClass `json:"format"`
}

// Labeled reports whether the column has its own entry in the label table.
func (m ColumnMeta) Labeled() bool {
	return m.LabelRef != m.Key
}
