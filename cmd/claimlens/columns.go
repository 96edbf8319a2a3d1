package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spektr-org/claimlens/engine"
)

func newColumnsCmd(a *app) *cobra.Command {
	var (
		src    dataSource
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Profile the columns of a dataset",
		Long: `Show, for every column of a dataset, its registry label and format class
next to what the data actually holds (numeric, text, mixed, empty).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := src.dataset()
			if err != nil {
				return err
			}
			profiles := engine.ProfileColumns(ds)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), profiles, true)
			}
			label := labelIndex(a.opts)

			data := pterm.TableData{{"Column", "Label", "Format", "Observed", "Nulls", "Distinct", "Samples"}}
			for _, p := range profiles {
				data = append(data, []string{
					p.Key,
					label(p.Key),
					string(p.Format),
					p.Observed,
					strconv.Itoa(p.Nulls),
					strconv.Itoa(p.Distinct),
					strings.Join(p.Samples, ", "),
				})
			}
			return printTable(cmd.OutOrStdout(), data)
		},
	}
	src.bind(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newLabelsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List registered columns with their labels and format classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cols := engine.DescribeColumns(a.opts...)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), cols, true)
			}
			data := pterm.TableData{{"Column", "Label", "Format"}}
			for _, c := range cols {
				data = append(data, []string{c.Key, c.Label, string(c.Format)})
			}
			return printTable(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// labelIndex returns a label lookup. Unregistered keys are their own label.
func labelIndex(opts []engine.Option) func(key string) string {
	known := make(map[string]string)
	for _, c := range engine.DescribeColumns(opts...) {
		known[c.Key] = c.Label
	}
	return func(key string) string {
		if l, ok := known[key]; ok {
			return l
		}
		return key
	}
}

func printTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
