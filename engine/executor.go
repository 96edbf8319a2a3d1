package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// EXECUTOR — Request dispatcher
// ============================================================================
// Entry point for callers that hold a serialized request (HTTP, CLI):
// Execute(req, opts...)
//
// Pipeline:
//   1. Validate the request shape (type, kind, required column names)
//   2. Build the Chart variant from the flat ChartRequest
//   3. Dispatch to BuildChart / BuildTable / BuildKPIs
//   4. Return Result
//
// Builders themselves never fail. Errors here are always about a malformed
// request, never about the data.
// ============================================================================

var (
	// ErrInvalidRequest reports a request missing required parts.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownKind reports a chart kind outside ChartKinds.
	ErrUnknownKind = errors.New("unknown chart kind")
)

// Request is a serialized render call.
type Request struct {
	Type  string        `json:"type"` // "chart" (default), "table", "kpi"
	Chart *ChartRequest `json:"chart,omitempty"`
	Table *TableRequest `json:"table,omitempty"`
	KPI   *KPIRequest   `json:"kpi,omitempty"`
	Data  Dataset       `json:"data"`
}

// ChartRequest is the flat union of every chart variant's parameters.
// Only the fields of the selected Kind are read.
type ChartRequest struct {
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title,omitempty"`

	X       string `json:"x,omitempty"`
	Y       string `json:"y,omitempty"`
	GroupBy string `json:"groupBy,omitempty"`

	Horizontal bool `json:"horizontal,omitempty"`

	Color       string   `json:"color,omitempty"`
	Colorscale  string   `json:"colorscale,omitempty"`
	Size        string   `json:"size,omitempty"`
	SizeDivisor float64  `json:"sizeDivisor,omitempty"`
	Hover       []string `json:"hover,omitempty"`
	LogX        bool     `json:"logX,omitempty"`
	LogY        bool     `json:"logY,omitempty"`

	Bins int `json:"bins,omitempty"`

	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`

	Category        string `json:"category,omitempty"`
	Observed        string `json:"observed,omitempty"`
	Expected        string `json:"expected,omitempty"`
	PopulationShare string `json:"populationShare,omitempty"`
	ValueShare      string `json:"valueShare,omitempty"`
	XTitle          string `json:"xTitle,omitempty"`
	YTitle          string `json:"yTitle,omitempty"`

	Categories []string  `json:"categories,omitempty"`
	Values     []float64 `json:"values,omitempty"`

	Network *Network `json:"network,omitempty"`

	Columns []string     `json:"columns,omitempty"`
	Matrix  [][]*float64 `json:"matrix,omitempty"`

	Components []Component `json:"components,omitempty"`

	Layout    *LayoutOverride `json:"layout,omitempty"`
	Container string          `json:"container,omitempty"`
}

// TableRequest parameterizes BuildTable.
type TableRequest struct {
	Columns   []string `json:"columns,omitempty"`
	Container string   `json:"container,omitempty"`
	PageSize  int      `json:"pageSize,omitempty"`
}

// KPIRequest renders cards from the first data row.
type KPIRequest struct {
	Items []KPIItem `json:"items"`
}

// Execute validates req and dispatches it to the matching builder.
func Execute(req Request, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	switch req.Type {
	case "", "chart":
		if req.Chart == nil {
			return nil, fmt.Errorf("%w: chart parameters missing", ErrInvalidRequest)
		}
		c, err := req.Chart.Build()
		if err != nil {
			return nil, err
		}
		if req.Chart.Layout != nil {
			opts = append(opts, WithLayoutOverride(*req.Chart.Layout))
		}
		if req.Chart.Container != "" {
			opts = append(opts, WithContainer(req.Chart.Container))
		}
		cfg.Logger.Debug().Str("kind", string(c.Kind())).Int("rows", len(req.Data)).Msg("executing chart request")
		return &Result{Success: true, Type: "chart", Chart: BuildChart(c, req.Data, opts...)}, nil

	case "table":
		var columns []string
		if req.Table != nil {
			columns = req.Table.Columns
			if req.Table.Container != "" {
				opts = append(opts, WithContainer(req.Table.Container))
			}
			if req.Table.PageSize > 0 {
				opts = append(opts, WithPageSize(req.Table.PageSize))
			}
		}
		cfg.Logger.Debug().Int("rows", len(req.Data)).Strs("columns", columns).Msg("executing table request")
		return &Result{Success: true, Type: "table", Table: BuildTable(req.Data, columns, opts...)}, nil

	case "kpi":
		if req.KPI == nil || len(req.KPI.Items) == 0 {
			return nil, fmt.Errorf("%w: kpi items missing", ErrInvalidRequest)
		}
		var row Row
		if len(req.Data) > 0 {
			row = req.Data[0]
		}
		return &Result{Success: true, Type: "kpi", KPIs: BuildKPIs(row, req.KPI.Items, opts...)}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidRequest, req.Type)
	}
}

// ParseChartKind maps a kind name to its ChartKind. "benford" and "lorenz"
// are accepted as aliases of comparison and cumulative.
func ParseChartKind(s string) (ChartKind, error) {
	switch s {
	case "benford":
		return ChartComparison, nil
	case "lorenz":
		return ChartCumulative, nil
	case "correlation":
		return ChartHeatmap, nil
	}
	for _, k := range ChartKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Build turns the request into its Chart variant, checking that the
// column names the kind needs are present.
func (r ChartRequest) Build() (Chart, error) {
	kind, err := ParseChartKind(string(r.Kind))
	if err != nil {
		return nil, err
	}

	switch kind {
	case ChartLine:
		if err := requireFields(kind, "x", r.X, "y", r.Y); err != nil {
			return nil, err
		}
		return LineChart{X: r.X, Y: r.Y, Title: r.Title, GroupBy: r.GroupBy}, nil

	case ChartBar:
		if err := requireFields(kind, "x", r.X, "y", r.Y); err != nil {
			return nil, err
		}
		return BarChart{X: r.X, Y: r.Y, Title: r.Title, Horizontal: r.Horizontal}, nil

	case ChartScatter:
		if err := requireFields(kind, "x", r.X, "y", r.Y); err != nil {
			return nil, err
		}
		return ScatterChart{
			X: r.X, Y: r.Y, Title: r.Title,
			Color: r.Color, Colorscale: r.Colorscale,
			Size: r.Size, SizeDivisor: r.SizeDivisor,
			Hover: r.Hover, LogX: r.LogX, LogY: r.LogY,
		}, nil

	case ChartHistogram:
		if err := requireFields(kind, "x", r.X); err != nil {
			return nil, err
		}
		return Histogram{X: r.X, Title: r.Title, Bins: r.Bins}, nil

	case ChartTreemap:
		if err := requireFields(kind, "label", r.Label, "value", r.Value); err != nil {
			return nil, err
		}
		return Treemap{Label: r.Label, Value: r.Value, Title: r.Title}, nil

	case ChartComparison:
		return ComparisonChart{
			Category: r.Category, Observed: r.Observed, Expected: r.Expected,
			Title: r.Title, XTitle: r.XTitle, YTitle: r.YTitle,
		}, nil

	case ChartCumulative:
		return CumulativeShareChart{
			PopulationShare: r.PopulationShare, ValueShare: r.ValueShare,
			Title: r.Title, XTitle: r.XTitle, YTitle: r.YTitle,
		}, nil

	case ChartRadar:
		return RadarChart{Categories: r.Categories, Values: r.Values, Title: r.Title}, nil

	case ChartNetwork:
		g := NetworkGraph{Title: r.Title}
		if r.Network != nil {
			g.Network = *r.Network
		}
		return g, nil

	case ChartHeatmap:
		return Heatmap{Columns: r.Columns, Values: r.Matrix, Title: r.Title}, nil

	case ChartStackedBar:
		if err := requireFields(kind, "x", r.X); err != nil {
			return nil, err
		}
		if len(r.Components) == 0 {
			return nil, fmt.Errorf("%w: %s chart needs components", ErrInvalidRequest, kind)
		}
		return StackedBar{X: r.X, Components: r.Components, Title: r.Title}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// requireFields checks name/value pairs for empty values.
func requireFields(kind ChartKind, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s chart needs %q", ErrInvalidRequest, kind, pairs[i])
		}
	}
	return nil
}
