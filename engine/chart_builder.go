package engine

import (
	"math"

	"github.com/spektr-org/claimlens/schema"
)

// ============================================================================
// CHART BUILDER — Produces a ChartSpec from a Chart variant + Dataset
// ============================================================================
// Each chart kind is its own type (charts.go) carrying the column names it
// reads. The variant owns its trace construction; this file owns what every
// kind shares: theme layout, render config, placeholders, overrides.
//
// Trace data stays numeric. Only titles, legend names, axis titles and hover
// text go through the translator or the formatters.
// ============================================================================

// Chart is one of the closed set of chart variants defined in this package.
type Chart interface {
	Kind() ChartKind
	render(ds Dataset, cx *chartContext) *ChartSpec
}

// Placeholder message keys.
const (
	MsgNoData        = "noData"
	MsgNoNetworkData = "noNetworkData"
)

// BuildChart renders c over ds. Variants that carry their own data (radar,
// network, heatmap) ignore ds. A nil chart yields nil.
func BuildChart(c Chart, ds Dataset, opts ...Option) *ChartSpec {
	if c == nil {
		return nil
	}
	cfg := applyOptions(opts)

	spec := c.render(ds, &chartContext{cfg: cfg})
	spec.Kind = c.Kind()
	spec.ID = cfg.containerID()
	if spec.Placeholder == nil {
		cfg.Override.apply(spec.Layout)
	}

	cfg.Logger.Debug().
		Str("kind", string(spec.Kind)).
		Int("rows", len(ds)).
		Int("traces", len(spec.Traces)).
		Bool("placeholder", spec.Placeholder != nil).
		Msg("chart built")
	return spec
}

// ============================================================================
// SHARED LAYOUT
// ============================================================================

type chartContext struct {
	cfg *config
}

// figure wraps traces with the theme layout and render config.
func (cx *chartContext) figure(title string, traces ...Trace) *ChartSpec {
	return &ChartSpec{
		Traces: traces,
		Layout: cx.layout(title),
		Config: cx.renderConfig(),
	}
}

func (cx *chartContext) layout(title string) *Layout {
	th := cx.cfg.Theme
	m := th.Margin
	l := &Layout{
		Template:     th.Template,
		PaperBGColor: th.Background,
		PlotBGColor:  th.Background,
		Font:         &Font{Family: th.FontFamily},
		Margin:       &m,
		AutoSize:     true,
	}
	if title != "" {
		l.Title = cx.cfg.t(title)
	}
	return l
}

func (cx *chartContext) renderConfig() *RenderConfig {
	th := cx.cfg.Theme
	return &RenderConfig{
		Responsive:             true,
		DisplayModeBar:         !th.HideModeBar,
		ModeBarButtonsToRemove: append([]string(nil), th.ModeBarRemove...),
	}
}

func (cx *chartContext) placeholder(key string) *ChartSpec {
	return &ChartSpec{Placeholder: &Placeholder{MessageKey: key, Text: cx.cfg.t(key)}}
}

// label resolves a column's display label.
func (cx *chartContext) label(column string) string {
	return cx.cfg.t(schema.Lookup(column).LabelRef)
}

func (cx *chartContext) primary() string { return cx.cfg.Theme.PrimaryColor }

// ============================================================================
// HELPERS
// ============================================================================

// clamp bounds v to [lo, hi] inclusive. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func texts(ss []string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}

func numbers(fs []float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Number(f)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

func hiddenAxis() *Axis {
	return &Axis{ShowGrid: boolPtr(false), ZeroLine: boolPtr(false), ShowTickLabels: boolPtr(false)}
}
