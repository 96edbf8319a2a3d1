package engine

import (
	"strings"
)

// ============================================================================
// CHART VARIANTS
// ============================================================================
// One type per chart kind. Field names are column keys of the dataset.
// A driver column (grouping, color, size) counts as present when the first
// row carries it; otherwise the chart falls back to its default encoding.
// ============================================================================

const (
	colorscaleHeat   = "YlOrRd"
	colorscaleBlues  = "Blues"
	colorscaleCorr   = "RdBu"
	defaultHistBins  = 50
	defaultPointSize = 6
)

// ============================================================================
// LINE
// ============================================================================

// LineChart plots Y against X in row order. When GroupBy names a column of
// the first row, rows are split into one line per group value.
type LineChart struct {
	X, Y    string
	Title   string
	GroupBy string
}

func (LineChart) Kind() ChartKind { return ChartLine }

func (c LineChart) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}

	var traces []Trace
	if c.GroupBy != "" && ds.HasColumn(c.GroupBy) {
		for _, g := range ds.GroupBy(c.GroupBy) {
			traces = append(traces, Trace{
				Type: "scatter",
				Mode: "lines",
				Name: g.Key,
				X:    g.Rows.Column(c.X),
				Y:    g.Rows.Column(c.Y),
			})
		}
	} else {
		traces = append(traces, Trace{
			Type: "scatter",
			Mode: "lines+markers",
			X:    ds.Column(c.X),
			Y:    ds.Column(c.Y),
			Line: &Line{Color: cx.primary()},
		})
	}

	spec := cx.figure(c.Title, traces...)
	spec.Layout.HoverMode = "x unified"
	return spec
}

// ============================================================================
// BAR
// ============================================================================

// BarChart draws one bar per row. Horizontal puts values on x and
// categories on y.
type BarChart struct {
	X, Y       string
	Title      string
	Horizontal bool
}

func (BarChart) Kind() ChartKind { return ChartBar }

func (c BarChart) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}
	tr := Trace{
		Type:   "bar",
		X:      ds.Column(c.X),
		Y:      ds.Column(c.Y),
		Marker: &Marker{Color: FixedColor(cx.primary())},
	}
	if c.Horizontal {
		tr.X, tr.Y = tr.Y, tr.X
		tr.Orientation = "h"
	}
	return cx.figure(c.Title, tr)
}

// ============================================================================
// SCATTER
// ============================================================================

// ScatterChart plots X against Y with optional per-point encodings:
// Color drives a continuous color scale, Size drives marker size as
// clamp(value/SizeDivisor, 4, 20), Hover lists the fields shown on hover.
type ScatterChart struct {
	X, Y        string
	Title       string
	Color       string
	Colorscale  string
	Size        string
	SizeDivisor float64
	Hover       []string
	LogX, LogY  bool
}

const (
	minPointSize = 4
	maxPointSize = 20
)

func (ScatterChart) Kind() ChartKind { return ChartScatter }

func (c ScatterChart) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}

	colorscale := c.Colorscale
	if colorscale == "" {
		colorscale = colorscaleHeat
	}
	marker := &Marker{
		Color:      FixedColor(cx.primary()),
		Size:       FixedSize(defaultPointSize),
		Colorscale: colorscale,
		ShowScale:  boolPtr(false),
	}
	if c.Color != "" && ds.HasColumn(c.Color) {
		marker.Color = PerPoint(ds.Column(c.Color))
		marker.ShowScale = boolPtr(true)
		marker.ColorBar = &ColorBar{Title: cx.label(c.Color)}
	}
	if c.Size != "" && ds.HasColumn(c.Size) {
		div := c.SizeDivisor
		if div <= 0 {
			div = 1
		}
		sizes := make([]Value, len(ds))
		for i, r := range ds {
			raw := r.Get(c.Size).FloatOr(0)
			sizes[i] = Number(clamp(raw/div, minPointSize, maxPointSize))
		}
		marker.Size = PerPoint(sizes)
	}

	tr := Trace{
		Type:      "scatter",
		Mode:      "markers",
		X:         ds.Column(c.X),
		Y:         ds.Column(c.Y),
		Marker:    marker,
		HoverInfo: "x+y",
	}
	if len(c.Hover) > 0 {
		tr.Text = make([]string, len(ds))
		for i, r := range ds {
			parts := make([]string, len(c.Hover))
			for j, h := range c.Hover {
				parts[j] = h + ": " + FormatCell(h, r.Get(h))
			}
			tr.Text[i] = strings.Join(parts, "<br>")
		}
		tr.HoverInfo = "text"
	}

	spec := cx.figure(c.Title, tr)
	spec.Layout.XAxis = &Axis{Title: cx.label(c.X), Type: axisType(c.LogX)}
	spec.Layout.YAxis = &Axis{Title: cx.label(c.Y), Type: axisType(c.LogY)}
	return spec
}

func axisType(log bool) string {
	if log {
		return "log"
	}
	return "linear"
}

// ============================================================================
// HISTOGRAM
// ============================================================================

// Histogram bins the values of X. Bins defaults to 50.
type Histogram struct {
	X     string
	Title string
	Bins  int
}

func (Histogram) Kind() ChartKind { return ChartHistogram }

func (c Histogram) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}
	bins := c.Bins
	if bins <= 0 {
		bins = defaultHistBins
	}
	return cx.figure(c.Title, Trace{
		Type:   "histogram",
		X:      ds.Column(c.X),
		NBinsX: bins,
		Marker: &Marker{Color: FixedColor(cx.primary())},
	})
}

// ============================================================================
// TREEMAP
// ============================================================================

// Treemap shows one flat tile per row: every tile is a root-level node.
type Treemap struct {
	Label, Value string
	Title        string
}

func (Treemap) Kind() ChartKind { return ChartTreemap }

func (c Treemap) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}
	spec := cx.figure(c.Title, Trace{
		Type:     "treemap",
		Labels:   ds.Column(c.Label),
		Parents:  make([]string, len(ds)),
		Values:   ds.Column(c.Value),
		TextInfo: "label+value+percent root",
		Marker:   &Marker{Colorscale: colorscaleBlues},
	})
	spec.Layout.Margin = &Margin{T: 50, R: 10, B: 10, L: 10}
	return spec
}

// ============================================================================
// GROUPED COMPARISON — observed vs expected distribution
// ============================================================================

// ComparisonChart overlays an expected distribution (line) on an observed
// one (bars), one row per category. Defaults match first-digit (Benford)
// distributions: first_digit / observed_pct / expected_pct.
type ComparisonChart struct {
	Category, Observed, Expected string
	Title, XTitle, YTitle        string
}

func (ComparisonChart) Kind() ChartKind { return ChartComparison }

func (c ComparisonChart) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}
	cat := orDefault(c.Category, "first_digit")
	categories := ds.Column(cat)

	observed := Trace{
		Type:   "bar",
		Name:   cx.cfg.t("chart.observed"),
		X:      categories,
		Y:      ds.Column(orDefault(c.Observed, "observed_pct")),
		Marker: &Marker{Color: FixedColor("steelblue")},
	}
	expected := Trace{
		Type: "scatter",
		Mode: "lines+markers",
		Name: cx.cfg.t("chart.expected"),
		X:    categories,
		Y:    ds.Column(orDefault(c.Expected, "expected_pct")),
		Line: &Line{Color: "red", Width: 2},
	}

	spec := cx.figure(orDefault(c.Title, "chart.benford.title"), observed, expected)
	spec.Layout.XAxis = &Axis{Title: cx.cfg.t(orDefault(c.XTitle, "chart.benford.xaxis"))}
	spec.Layout.YAxis = &Axis{Title: cx.cfg.t(orDefault(c.YTitle, "chart.benford.yaxis"))}
	spec.Layout.BarMode = "group"
	return spec
}

// ============================================================================
// CUMULATIVE SHARE — Lorenz curve
// ============================================================================

// CumulativeShareChart draws cumulative value share against cumulative
// population share, filled to the axis, plus the equality diagonal.
type CumulativeShareChart struct {
	PopulationShare, ValueShare string
	Title, XTitle, YTitle       string
}

func (CumulativeShareChart) Kind() ChartKind { return ChartCumulative }

func (c CumulativeShareChart) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}
	curve := Trace{
		Type:      "scatter",
		Name:      cx.cfg.t("chart.lorenz.curve"),
		X:         ds.Column(orDefault(c.PopulationShare, "cum_pct_providers")),
		Y:         ds.Column(orDefault(c.ValueShare, "cum_pct_paid")),
		Fill:      "tozeroy",
		FillColor: "rgba(70,130,180,0.2)",
		Line:      &Line{Color: "steelblue"},
	}
	diagonal := Trace{
		Type: "scatter",
		Mode: "lines",
		Name: cx.cfg.t("chart.lorenz.equality"),
		X:    numbers([]float64{0, 100}),
		Y:    numbers([]float64{0, 100}),
		Line: &Line{Color: "red", Dash: "dash"},
	}

	spec := cx.figure(orDefault(c.Title, "chart.lorenz.title"), curve, diagonal)
	spec.Layout.XAxis = &Axis{Title: cx.cfg.t(orDefault(c.XTitle, "chart.lorenz.xaxis"))}
	spec.Layout.YAxis = &Axis{Title: cx.cfg.t(orDefault(c.YTitle, "chart.lorenz.yaxis"))}
	return spec
}

// ============================================================================
// RADAR
// ============================================================================

// RadarChart draws a closed polygon of 0–100 scores. Extra entries in the
// longer of Categories / Values are dropped.
type RadarChart struct {
	Categories []string
	Values     []float64
	Title      string
}

func (RadarChart) Kind() ChartKind { return ChartRadar }

func (c RadarChart) render(_ Dataset, cx *chartContext) *ChartSpec {
	n := min(len(c.Categories), len(c.Values))
	if n == 0 {
		return cx.placeholder(MsgNoData)
	}
	r := append(append(make([]float64, 0, n+1), c.Values[:n]...), c.Values[0])
	theta := append(append(make([]string, 0, n+1), c.Categories[:n]...), c.Categories[0])

	spec := cx.figure(c.Title, Trace{
		Type:      "scatterpolar",
		R:         r,
		Theta:     theta,
		Fill:      "toself",
		FillColor: "rgba(255,99,71,0.2)",
		Line:      &Line{Color: "tomato"},
	})
	spec.Layout.Polar = &Polar{RadialAxis: RadialAxis{Visible: true, Range: [2]float64{0, 100}}}
	return spec
}

// ============================================================================
// NETWORK
// ============================================================================

// NetworkGraph draws provider links. Edges whose endpoints are not both in
// Nodes are skipped.
type NetworkGraph struct {
	Network
	Title string
}

const (
	minNodeSize = 5
	maxNodeSize = 30
)

func (NetworkGraph) Kind() ChartKind { return ChartNetwork }

func (c NetworkGraph) render(_ Dataset, cx *chartContext) *ChartSpec {
	if len(c.Nodes) == 0 {
		return cx.placeholder(MsgNoNetworkData)
	}

	byID := make(map[string]Node, len(c.Nodes))
	for _, n := range c.Nodes {
		byID[n.ID] = n
	}
	edgeX := make([]Value, 0, 3*len(c.Edges))
	edgeY := make([]Value, 0, 3*len(c.Edges))
	for _, e := range c.Edges {
		s, okS := byID[e.Source]
		t, okT := byID[e.Target]
		if !okS || !okT {
			continue
		}
		edgeX = append(edgeX, Number(s.X), Number(t.X), Null)
		edgeY = append(edgeY, Number(s.Y), Number(t.Y), Null)
	}

	connections := cx.cfg.t("chart.network.connections")
	n := len(c.Nodes)
	nodeX, nodeY := make([]Value, n), make([]Value, n)
	sizes, degrees := make([]Value, n), make([]Value, n)
	hover := make([]string, n)
	for i, node := range c.Nodes {
		nodeX[i], nodeY[i] = Number(node.X), Number(node.Y)
		sizes[i] = Number(clamp(node.Degree*3, minNodeSize, maxNodeSize))
		degrees[i] = Number(node.Degree)
		hover[i] = "NPI: " + node.ID + "<br>" + connections + ": " + degrees[i].String()
	}

	edges := Trace{
		Type:      "scatter",
		Mode:      "lines",
		X:         edgeX,
		Y:         edgeY,
		Line:      &Line{Width: 0.5, Color: "#888"},
		HoverInfo: "none",
	}
	nodes := Trace{
		Type:      "scatter",
		Mode:      "markers",
		X:         nodeX,
		Y:         nodeY,
		HoverInfo: "text",
		Text:      hover,
		Marker: &Marker{
			Size:       PerPoint(sizes),
			Color:      PerPoint(degrees),
			Colorscale: colorscaleHeat,
			ColorBar:   &ColorBar{Title: connections},
		},
	}

	spec := cx.figure(orDefault(c.Title, "chart.network.title"), edges, nodes)
	spec.Layout.ShowLegend = boolPtr(false)
	spec.Layout.XAxis = hiddenAxis()
	spec.Layout.YAxis = hiddenAxis()
	return spec
}

// ============================================================================
// HEATMAP — correlation matrix
// ============================================================================

// Heatmap renders a correlation matrix over Columns. Values[i][j] is the
// correlation of Columns[i] with Columns[j]; nil cells are left blank.
// Values is cut or padded with nil cells to len(Columns) square.
type Heatmap struct {
	Columns []string
	Values  [][]*float64
	Title   string
}

func (Heatmap) Kind() ChartKind { return ChartHeatmap }

func (c Heatmap) render(_ Dataset, cx *chartContext) *ChartSpec {
	if len(c.Columns) == 0 {
		return cx.placeholder(MsgNoData)
	}
	z := squareMatrix(c.Values, len(c.Columns))
	grid := make([][]string, len(z))
	for i, row := range z {
		grid[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				grid[i][j] = fixed(*v, 2)
			}
		}
	}
	axis := texts(c.Columns)

	spec := cx.figure(c.Title, Trace{
		Type:          "heatmap",
		Z:             z,
		X:             axis,
		Y:             axis,
		Colorscale:    colorscaleCorr,
		ZMin:          floatPtr(-1),
		ZMax:          floatPtr(1),
		TextGrid:      grid,
		TextTemplate:  "%{text}",
		HoverTemplate: "%{x} vs %{y}: %{z:.2f}<extra></extra>",
	})
	spec.Layout.Margin = &Margin{T: 50, R: 20, B: 100, L: 100}
	return spec
}

// squareMatrix returns an n×n copy of m. Missing rows and cells are nil.
func squareMatrix(m [][]*float64, n int) [][]*float64 {
	out := make([][]*float64, n)
	for i := range out {
		out[i] = make([]*float64, n)
		if i < len(m) {
			copy(out[i], m[i])
		}
	}
	return out
}

// ============================================================================
// STACKED BAR
// ============================================================================

// Component is one stacked series: a numeric column and its legend label.
// Label may be a translation key; empty uses the column's registry label.
type Component struct {
	Field string `json:"field"`
	Label string `json:"label,omitempty"`
}

// StackedBar stacks one bar series per component over the categories in X.
// Long identifiers on the x axis are shortened; missing values count as 0.
type StackedBar struct {
	X          string
	Components []Component
	Title      string
}

func (StackedBar) Kind() ChartKind { return ChartStackedBar }

func (c StackedBar) render(ds Dataset, cx *chartContext) *ChartSpec {
	if len(ds) == 0 {
		return cx.placeholder(MsgNoData)
	}
	categories := make([]Value, len(ds))
	for i, r := range ds {
		categories[i] = Text(ShortID(r.Get(c.X)))
	}

	traces := make([]Trace, 0, len(c.Components))
	for _, comp := range c.Components {
		ys := make([]Value, len(ds))
		for i, r := range ds {
			v := r.Get(comp.Field)
			if !v.Truthy() {
				v = Number(0)
			}
			ys[i] = v
		}
		name := cx.label(comp.Field)
		if comp.Label != "" {
			name = cx.cfg.t(comp.Label)
		}
		traces = append(traces, Trace{Type: "bar", Name: name, X: categories, Y: ys})
	}

	spec := cx.figure(c.Title, traces...)
	spec.Layout.BarMode = "stack"
	return spec
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
