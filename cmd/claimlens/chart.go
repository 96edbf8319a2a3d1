package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/claimlens/engine"
)

type chartFlags struct {
	src       dataSource
	req       engine.ChartRequest
	request   string
	component []string
	pretty    bool
}

func newChartCmd(a *app) *cobra.Command {
	f := &chartFlags{}
	kinds := make([]string, len(engine.ChartKinds))
	for i, k := range engine.ChartKinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "chart <kind>",
		Short: "Build a chart spec",
		Long: `Build a Plotly chart spec from a dataset.

Kinds: ` + strings.Join(kinds, ", ") + `
Aliases: benford (comparison), lorenz (cumulative), correlation (heatmap)

network reads {nodes, edges} from --data; heatmap reads {columns, matrix};
radar takes --categories and --values. With --request the whole engine
request is read from a JSON file and the result envelope is printed.`,
		Args:      cobra.RangeArgs(0, 1),
		ValidArgs: append(kinds, "benford", "lorenz", "correlation"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.request != "" {
				return runRequest(cmd.OutOrStdout(), f.request, f.pretty, a.opts)
			}
			if len(args) == 0 {
				return fmt.Errorf("chart kind is required")
			}
			return f.run(cmd.OutOrStdout(), args[0], a.opts)
		},
	}

	fl := cmd.Flags()
	f.src.bind(fl)
	fl.StringVar(&f.request, "request", "", "JSON request file (engine.Request)")
	fl.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	fl.StringVar(&f.req.Title, "title", "", "chart title or translation key")
	fl.StringVar(&f.req.Container, "container", "", "target element id")
	fl.StringVar(&f.req.X, "x", "", "x column")
	fl.StringVar(&f.req.Y, "y", "", "y column")
	fl.StringVar(&f.req.GroupBy, "group", "", "line: one trace per value of this column")
	fl.BoolVar(&f.req.Horizontal, "horizontal", false, "bar: horizontal orientation")
	fl.StringVar(&f.req.Color, "color", "", "scatter: color column")
	fl.StringVar(&f.req.Colorscale, "colorscale", "", "scatter: color scale name")
	fl.StringVar(&f.req.Size, "size", "", "scatter: size column")
	fl.Float64Var(&f.req.SizeDivisor, "size-div", 1, "scatter: size column divisor")
	fl.StringSliceVar(&f.req.Hover, "hover", nil, "scatter: hover columns")
	fl.BoolVar(&f.req.LogX, "log-x", false, "scatter: log x axis")
	fl.BoolVar(&f.req.LogY, "log-y", false, "scatter: log y axis")
	fl.IntVar(&f.req.Bins, "bins", 0, "histogram: bin count (default 50)")
	fl.StringVar(&f.req.Label, "label", "", "treemap: label column")
	fl.StringVar(&f.req.Value, "value", "", "treemap: value column")
	fl.StringVar(&f.req.Category, "category", "", "comparison: category column")
	fl.StringVar(&f.req.Observed, "observed", "", "comparison: observed column")
	fl.StringVar(&f.req.Expected, "expected", "", "comparison: expected column")
	fl.StringVar(&f.req.PopulationShare, "population-share", "", "cumulative: population share column")
	fl.StringVar(&f.req.ValueShare, "value-share", "", "cumulative: value share column")
	fl.StringVar(&f.req.XTitle, "x-title", "", "comparison/cumulative: x axis title")
	fl.StringVar(&f.req.YTitle, "y-title", "", "comparison/cumulative: y axis title")
	fl.StringSliceVar(&f.req.Categories, "categories", nil, "radar: category names")
	fl.Float64SliceVar(&f.req.Values, "values", nil, "radar: scores 0-100")
	fl.StringArrayVar(&f.component, "component", nil, "stacked_bar: field[:label], repeatable")
	return cmd
}

func (f *chartFlags) run(w io.Writer, kind string, opts []engine.Option) error {
	k, err := engine.ParseChartKind(kind)
	if err != nil {
		return err
	}
	req := f.req
	req.Kind = k
	for _, c := range f.component {
		field, label, _ := strings.Cut(c, ":")
		req.Components = append(req.Components, engine.Component{Field: field, Label: label})
	}

	var ds engine.Dataset
	switch k {
	case engine.ChartRadar:
	case engine.ChartNetwork:
		net, err := f.src.network()
		if err != nil {
			return err
		}
		req.Network = &net
	case engine.ChartHeatmap:
		c, err := f.src.correlation()
		if err != nil {
			return err
		}
		req.Columns, req.Matrix = c.Columns, c.Matrix
	default:
		if ds, err = f.src.dataset(); err != nil {
			return err
		}
	}

	res, err := engine.Execute(engine.Request{Type: "chart", Chart: &req, Data: ds}, opts...)
	if err != nil {
		return err
	}
	return writeJSON(w, res.Chart, f.pretty)
}

func runRequest(w io.Writer, path string, pretty bool, opts []engine.Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	var req engine.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request: %w", err)
	}
	res, err := engine.Execute(req, opts...)
	if err != nil {
		return err
	}
	return writeJSON(w, res, pretty)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}
