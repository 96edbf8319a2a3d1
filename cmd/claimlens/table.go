package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/claimlens/engine"
	"github.com/spektr-org/claimlens/helpers"
)

func newTableCmd(a *app) *cobra.Command {
	var (
		src       dataSource
		columns   []string
		container string
		pageSize  int
		format    string
		outFile   string
		sheet     string
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build a table spec",
		Long: `Build a DataTables table spec from a dataset.

Formats:
  json   TableSpec JSON (default)
  text   boxed terminal table
  csv    headers and formatted cells
  xlsx   Excel workbook (requires --out)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := src.dataset()
			if err != nil {
				return err
			}
			opts := append([]engine.Option(nil), a.opts...)
			if container != "" {
				opts = append(opts, engine.WithContainer(container))
			}
			if pageSize > 0 {
				opts = append(opts, engine.WithPageSize(pageSize))
			}
			spec := engine.BuildTable(ds, columns, opts...)

			return withOutput(cmd.OutOrStdout(), outFile, func(w io.Writer) error {
				switch format {
				case "json":
					return writeJSON(w, spec, pretty)
				case "text":
					out, err := helpers.RenderText(spec)
					if err != nil {
						return err
					}
					_, err = io.WriteString(w, out)
					return err
				case "csv":
					return helpers.WriteCSV(w, spec)
				case "xlsx":
					if outFile == "" {
						return fmt.Errorf("--format xlsx needs --out")
					}
					return helpers.WriteXLSX(w, spec, sheet)
				default:
					return fmt.Errorf("unknown format %q (json, text, csv, xlsx)", format)
				}
			})
		},
	}

	fl := cmd.Flags()
	src.bind(fl)
	fl.StringSliceVar(&columns, "columns", nil, "columns to show, in order (default: keys of the first row)")
	fl.StringVar(&container, "container", "", "table element id suffix")
	fl.IntVar(&pageSize, "page-size", 0, "rows per page (default from config)")
	fl.StringVarP(&format, "format", "f", "json", "output format: json, text, csv, xlsx")
	fl.StringVarP(&outFile, "out", "o", "", "write output to file instead of stdout")
	fl.StringVar(&sheet, "out-sheet", "", "xlsx sheet name (default Sheet1)")
	fl.BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

// withOutput runs write against outFile when set, else against stdout.
func withOutput(stdout io.Writer, outFile string, write func(io.Writer) error) error {
	if outFile == "" {
		return write(stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
