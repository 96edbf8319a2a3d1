package engine

import (
	"encoding/json"

	"github.com/spektr-org/claimlens/schema"
)

// ============================================================================
// CLAIMLENS ENGINE TYPES — Render specifications
// ============================================================================
// ChartSpec and TableSpec are the engine's only outputs. Both are plain data
// meant to be JSON-encoded and handed to a browser renderer: charts use
// Plotly attribute names (traces / layout / config), tables follow the
// DataTables option names.
//
// Every spec is allocated fresh per call and never touched again by the
// engine after it is returned.
// ============================================================================

// ============================================================================
// RESULT — Dispatcher output
// ============================================================================

// Result is what Execute returns. Exactly one of Chart, Table or KPIs is
// populated based on Type.
type Result struct {
	Success bool       `json:"success"`
	Type    string     `json:"type"` // "chart", "table", "kpi"
	Chart   *ChartSpec `json:"chart,omitempty"`
	Table   *TableSpec `json:"table,omitempty"`
	KPIs    []KPI      `json:"kpis,omitempty"`
}

// Placeholder replaces a spec body when there is nothing to draw.
type Placeholder struct {
	MessageKey string `json:"messageKey"`
	Text       string `json:"text"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartKind tags a chart variant.
type ChartKind string

const (
	ChartLine       ChartKind = "line"
	ChartBar        ChartKind = "bar"
	ChartScatter    ChartKind = "scatter"
	ChartHistogram  ChartKind = "histogram"
	ChartTreemap    ChartKind = "treemap"
	ChartComparison ChartKind = "comparison"
	ChartCumulative ChartKind = "cumulative"
	ChartRadar      ChartKind = "radar"
	ChartNetwork    ChartKind = "network"
	ChartHeatmap    ChartKind = "heatmap"
	ChartStackedBar ChartKind = "stacked_bar"
)

// ChartKinds lists every supported kind in a stable order.
var ChartKinds = []ChartKind{
	ChartLine, ChartBar, ChartScatter, ChartHistogram, ChartTreemap,
	ChartComparison, ChartCumulative, ChartRadar, ChartNetwork,
	ChartHeatmap, ChartStackedBar,
}

// ChartSpec is a Plotly figure plus the kind that produced it. When
// Placeholder is set there are no traces and the renderer should show the
// placeholder text instead of a chart.
type ChartSpec struct {
	ID          string        `json:"id,omitempty"`
	Kind        ChartKind     `json:"kind"`
	Traces      []Trace       `json:"traces,omitempty"`
	Layout      *Layout       `json:"layout,omitempty"`
	Config      *RenderConfig `json:"config,omitempty"`
	Placeholder *Placeholder  `json:"placeholder,omitempty"`
}

// Trace is one Plotly trace. Which fields are populated depends on Type.
type Trace struct {
	Type        string `json:"type"`
	Mode        string `json:"mode,omitempty"`
	Name        string `json:"name,omitempty"`
	Orientation string `json:"orientation,omitempty"`

	X []Value `json:"x,omitempty"`
	Y []Value `json:"y,omitempty"`

	// polar
	R     []float64 `json:"r,omitempty"`
	Theta []string  `json:"theta,omitempty"`

	// treemap
	Labels  []Value  `json:"labels,omitempty"`
	Parents []string `json:"parents,omitempty"`
	Values  []Value  `json:"values,omitempty"`

	// heatmap
	Z          [][]*float64 `json:"z,omitempty"`
	ZMin       *float64     `json:"zmin,omitempty"`
	ZMax       *float64     `json:"zmax,omitempty"`
	Colorscale string       `json:"colorscale,omitempty"`

	NBinsX int `json:"nbinsx,omitempty"`

	Marker *Marker `json:"marker,omitempty"`
	Line   *Line   `json:"line,omitempty"`

	Fill      string `json:"fill,omitempty"`
	FillColor string `json:"fillcolor,omitempty"`

	Text          []string   `json:"text,omitempty"`
	TextGrid      [][]string `json:"-"` // heatmap cell annotations, encoded as "text"
	TextInfo      string     `json:"textinfo,omitempty"`
	TextTemplate  string     `json:"texttemplate,omitempty"`
	HoverInfo     string     `json:"hoverinfo,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`
}

// MarshalJSON encodes TextGrid under "text" when set.
func (t Trace) MarshalJSON() ([]byte, error) {
	type plain Trace
	if t.TextGrid == nil {
		return json.Marshal(plain(t))
	}
	return json.Marshal(struct {
		plain
		Text [][]string `json:"text"`
	}{plain(t), t.TextGrid})
}

// Marker styles trace points. Color and Size are either one fixed value
// or one entry per point.
type Marker struct {
	Color      Encoding  `json:"color,omitzero"`
	Size       Encoding  `json:"size,omitzero"`
	Colorscale string    `json:"colorscale,omitempty"`
	ShowScale  *bool     `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// Encoding is a marker attribute: a fixed color, a fixed number, or a
// per-point array. The zero Encoding is omitted.
type Encoding struct {
	Fixed    string  // color name or hex
	Num      float64 // fixed numeric value, used when Fixed is empty and PerPoint is nil
	PerPoint []Value
}

// FixedColor encodes one color for every point.
func FixedColor(c string) Encoding { return Encoding{Fixed: c} }

// FixedSize encodes one size for every point.
func FixedSize(n float64) Encoding { return Encoding{Num: n} }

// PerPoint encodes one value per point.
func PerPoint(vals []Value) Encoding { return Encoding{PerPoint: vals} }

// IsZero lets encoding/json omit unset encodings (omitzero).
func (e Encoding) IsZero() bool {
	return e.Fixed == "" && e.Num == 0 && e.PerPoint == nil
}

func (e Encoding) MarshalJSON() ([]byte, error) {
	switch {
	case e.PerPoint != nil:
		return json.Marshal(e.PerPoint)
	case e.Fixed != "":
		return json.Marshal(e.Fixed)
	default:
		return json.Marshal(e.Num)
	}
}

// ColorBar titles a continuous color scale.
type ColorBar struct {
	Title string `json:"title"`
}

// Line styles trace lines.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Layout is the Plotly layout object.
type Layout struct {
	Title        string  `json:"title,omitempty"`
	Template     string  `json:"template,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	Font         *Font   `json:"font,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
	AutoSize     bool    `json:"autosize"`
	Height       int     `json:"height,omitempty"`
	HoverMode    string  `json:"hovermode,omitempty"`
	BarMode      string  `json:"barmode,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	Polar        *Polar  `json:"polar,omitempty"`
}

// Font sets the layout font.
type Font struct {
	Family string `json:"family"`
}

// Margin in pixels.
type Margin struct {
	T int `json:"t" koanf:"top"`
	R int `json:"r" koanf:"right"`
	B int `json:"b" koanf:"bottom"`
	L int `json:"l" koanf:"left"`
}

// Axis configures a cartesian axis.
type Axis struct {
	Title          string `json:"title,omitempty"`
	Type           string `json:"type,omitempty"`
	ShowGrid       *bool  `json:"showgrid,omitempty"`
	ZeroLine       *bool  `json:"zeroline,omitempty"`
	ShowTickLabels *bool  `json:"showticklabels,omitempty"`
}

// Polar configures the polar subplot of radar charts.
type Polar struct {
	RadialAxis RadialAxis `json:"radialaxis"`
}

// RadialAxis of a polar subplot.
type RadialAxis struct {
	Visible bool       `json:"visible"`
	Range   [2]float64 `json:"range"`
}

// RenderConfig is the Plotly config object (interaction options).
type RenderConfig struct {
	Responsive             bool     `json:"responsive"`
	DisplayModeBar         bool     `json:"displayModeBar"`
	ModeBarButtonsToRemove []string `json:"modeBarButtonsToRemove,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableSpec is a pre-formatted table plus widget options. Rows hold display
// strings, never raw values.
type TableSpec struct {
	ID          string              `json:"id"`
	Columns     []schema.ColumnMeta `json:"columns,omitempty"`
	Headers     []string            `json:"headers,omitempty"`
	Rows        [][]string          `json:"rows,omitempty"`
	Options     *TableOptions       `json:"options,omitempty"`
	Placeholder *Placeholder        `json:"placeholder,omitempty"`
}

// TableOptions are the DataTables initialisation options.
type TableOptions struct {
	PageLength int           `json:"pageLength"`
	Order      []any         `json:"order"`
	DOM        string        `json:"dom"`
	Language   TableLanguage `json:"language"`
}

// TableLanguage holds the localized widget strings.
type TableLanguage struct {
	Search     string   `json:"search"`
	LengthMenu string   `json:"lengthMenu"`
	Info       string   `json:"info"`
	Paginate   Paginate `json:"paginate"`
}

// Paginate holds the pager button labels.
type Paginate struct {
	First    string `json:"first"`
	Last     string `json:"last"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
}

// ============================================================================
// KPI TYPES
// ============================================================================

// KPI is a headline number card.
type KPI struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Danger bool   `json:"danger"`
}
