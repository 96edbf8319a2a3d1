package engine

// ============================================================================
// KPI BUILDER — Headline number cards
// ============================================================================
// A KPI card shows one field of a summary row. Values go through the same
// cell formatter as tables, so a currency column renders "$1.2M" in both.
// ============================================================================

// KPIItem selects one field of the summary row.
type KPIItem struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"` // translation key; empty → registry label
	// Danger marks the card unconditionally. DangerAbove marks it when the
	// numeric value is strictly greater than the threshold.
	Danger      bool     `json:"danger,omitempty"`
	DangerAbove *float64 `json:"dangerAbove,omitempty"`
}

// BuildKPIs renders items against row, in item order.
func BuildKPIs(row Row, items []KPIItem, opts ...Option) []KPI {
	cfg := applyOptions(opts)
	cx := &chartContext{cfg: cfg}

	out := make([]KPI, 0, len(items))
	for _, it := range items {
		v := row.Get(it.Key)
		label := cx.label(it.Key)
		if it.Label != "" {
			label = cfg.t(it.Label)
		}
		danger := it.Danger
		if it.DangerAbove != nil {
			if f, ok := v.Float(); ok && !v.IsEmpty() && f > *it.DangerAbove {
				danger = true
			}
		}
		out = append(out, KPI{
			Key:    it.Key,
			Label:  label,
			Value:  FormatCell(it.Key, v),
			Danger: danger,
		})
	}
	return out
}
