package engine

import (
	"github.com/spektr-org/claimlens/schema"
)

// ============================================================================
// COLUMN PROFILE — What the registry and the data say about each column
// ============================================================================
// Describes, never validates: the profile reports the observed value kinds
// next to the registry classification so a mismatch (a currency column
// holding text, say) is visible before rendering.
// ============================================================================

// Observed value kinds of a column.
const (
	ColumnEmpty   = "empty"
	ColumnNumeric = "numeric"
	ColumnText    = "text"
	ColumnMixed   = "mixed"
)

const maxProfileSamples = 5

// ColumnProfile summarizes one column.
type ColumnProfile struct {
	schema.ColumnMeta
	Observed string   `json:"observed"`
	Nulls    int      `json:"nulls"`
	Distinct int      `json:"distinct"`
	Samples  []string `json:"samples"`
}

// ProfileColumns profiles every key seen in ds, first-row keys first, then
// keys that only appear in later rows in order of first appearance.
func ProfileColumns(ds Dataset) []ColumnProfile {
	var keys []string
	seen := make(map[string]bool)
	for _, r := range ds {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	out := make([]ColumnProfile, 0, len(keys))
	for _, k := range keys {
		out = append(out, profileColumn(ds, k))
	}
	return out
}

func profileColumn(ds Dataset, key string) ColumnProfile {
	p := ColumnProfile{ColumnMeta: schema.Lookup(key), Samples: []string{}}

	var numeric, text int
	distinct := make(map[string]bool)
	for _, r := range ds {
		v := r.Get(key)
		if v.IsEmpty() {
			p.Nulls++
			continue
		}
		if v.IsNumber() {
			numeric++
		} else {
			text++
		}
		s := v.String()
		if !distinct[s] {
			distinct[s] = true
			if len(p.Samples) < maxProfileSamples {
				p.Samples = append(p.Samples, s)
			}
		}
	}
	p.Distinct = len(distinct)

	switch {
	case numeric == 0 && text == 0:
		p.Observed = ColumnEmpty
	case text == 0:
		p.Observed = ColumnNumeric
	case numeric == 0:
		p.Observed = ColumnText
	default:
		p.Observed = ColumnMixed
	}
	return p
}

// LabeledColumn is a registry entry with its label resolved.
type LabeledColumn struct {
	schema.ColumnMeta
	Label string `json:"label"`
}

// DescribeColumns lists the registry, sorted by key, with labels in the
// configured language.
func DescribeColumns(opts ...Option) []LabeledColumn {
	cfg := applyOptions(opts)
	all := schema.All()
	out := make([]LabeledColumn, len(all))
	for i, m := range all {
		out[i] = LabeledColumn{ColumnMeta: m, Label: cfg.t(m.LabelRef)}
	}
	return out
}
