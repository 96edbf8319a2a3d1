package schema

import "sort"

// ============================================================================
// REGISTRY — Static column key → ColumnMeta table
// ============================================================================
// Built once at package init from three inputs:
//   labeled        — keys with a display label in the translation catalog
//   currency/pct/float sets — disjoint format classifications
//
// Label references are "col.<key>". Classified keys without a label keep
// the raw key as their reference, so the translator falls back to showing
// the key itself. The table is never written after init.
// ============================================================================

// LabelPrefix namespaces column labels in the translation catalog.
const LabelPrefix = "col."

var labeled = []string{
	"BILLING_PROVIDER_NPI_NUM",
	"SERVICING_PROVIDER_NPI_NUM",
	"HCPCS_CODE",
	"CLAIM_FROM_MONTH",
	"total_paid",
	"total_claims",
	"total_beneficiaries",
	"total_records",
	"num_providers",
	"num_hcpcs",
	"num_months",
	"num_servicing_npis",
	"cost_per_claim",
	"cost_per_beneficiary",
	"claims_per_beneficiary",
	"avg_cost_per_claim",
	"std_cost_per_claim",
	"z_cost_per_claim",
	"z_cost_per_beneficiary",
	"mad",
	"chi2",
	"p_value",
	"total_risk_score",
	"benford_score",
	"zscore_severity",
	"isolation_forest_score",
	"billing_mismatch_score",
	"temporal_spike_score",
	"ghost_provider_score",
	"claims_per_bene_score",
	"concentration_score",
	"pct_mismatch_paid",
	"pct_mismatch_claims",
	"mismatch_paid",
	"mismatch_claims",
	"mom_change_pct",
	"rolling_zscore",
	"hhi",
	"max_share",
	"top_hcpcs",
	"ratio_to_median",
	"first_month",
	"last_month",
	"months_since_last",
	"zscore",
	"avg_paid",
	"std_paid",
	"z_outlier_count",
	"iqr_outlier_count",
	"share",
	"observed_pct",
	"expected_pct",
	"deviation",
	"prev_paid",
	"rolling_avg",
	"avg_cost_per_claim_y",
	"data_end",
}

var currencyCols = []string{
	"total_paid", "cost_per_claim", "cost_per_beneficiary",
	"avg_cost_per_claim", "std_cost_per_claim", "mismatch_paid",
	"avg_paid", "std_paid", "prev_paid", "rolling_avg",
	"avg_cost_per_claim_y", "median_cost_per_claim",
}

var percentageCols = []string{
	"pct_mismatch_paid", "pct_mismatch_claims", "observed_pct",
	"expected_pct", "deviation", "mom_change_pct", "share", "max_share",
}

var floatCols = []string{
	"mad", "chi2", "p_value", "hhi", "ratio_to_median",
	"z_cost_per_claim", "z_cost_per_beneficiary", "zscore",
	"rolling_zscore", "total_risk_score", "benford_score",
	"zscore_severity", "isolation_forest_score", "billing_mismatch_score",
	"temporal_spike_score", "ghost_provider_score", "claims_per_bene_score",
	"concentration_score", "claims_per_beneficiary",
	"avg_claims_per_beneficiary", "median_claims_per_beneficiary",
}

var registry = build()

func build() map[string]ColumnMeta {
	reg := make(map[string]ColumnMeta, len(labeled)+len(currencyCols)+len(percentageCols)+len(floatCols))

	entry := func(key string) ColumnMeta {
		if m, ok := reg[key]; ok {
			return m
		}
		return ColumnMeta{Key: key, LabelRef: key, Format: FormatIdentity}
	}

	for _, k := range labeled {
		m := entry(k)
		m.LabelRef = LabelPrefix + k
		reg[k] = m
	}
	classify := func(keys []string, class FormatClass) {
		for _, k := range keys {
			m := entry(k)
			if m.Format != FormatIdentity {
				panic("schema: column " + k + " classified twice")
			}
			m.Format = class
			reg[k] = m
		}
	}
	classify(currencyCols, FormatCurrency)
	classify(percentageCols, FormatPercentage)
	classify(floatCols, FormatFloat)
	return reg
}

// Lookup returns the metadata for key. Unknown keys resolve to the key
// itself as label reference with identity formatting.
func Lookup(key string) ColumnMeta {
	if m, ok := registry[key]; ok {
		return m
	}
	return ColumnMeta{Key: key, LabelRef: key, Format: FormatIdentity}
}

// Known reports whether key has a registry entry.
func Known(key string) bool {
	_, ok := registry[key]
	return ok
}

// ClassOf is shorthand for Lookup(key).Format.
func ClassOf(key string) FormatClass {
	return Lookup(key).Format
}

// All returns every registered column, sorted by key.
func All() []ColumnMeta {
	out := make([]ColumnMeta, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// LabelKeys returns the catalog keys of every labeled column, in table order.
func LabelKeys() []string {
	out := make([]string, len(labeled))
	for i, k := range labeled {
		out[i] = LabelPrefix + k
	}
	return out
}
