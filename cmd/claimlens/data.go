package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/spektr-org/claimlens/engine"
	"github.com/spektr-org/claimlens/helpers"
)

// dataSource is the --data/--path pair shared by the data commands.
type dataSource struct {
	file  string
	path  string
	sheet string
	text  []string
}

func (d *dataSource) bind(flags *pflag.FlagSet) {
	flags.StringVar(&d.file, "data", "", "data file: .json, .csv or .xlsx (- for JSON on stdin)")
	flags.StringVar(&d.path, "path", "", "JSON path of the rows inside the document (gjson syntax)")
	flags.StringVar(&d.sheet, "sheet", "", "sheet to read from an .xlsx file (default: first)")
	flags.StringSliceVar(&d.text, "text-columns", nil, "CSV/XLSX columns kept as text (identifiers)")
}

func (d *dataSource) read() ([]byte, error) {
	if d.file == "" {
		return nil, fmt.Errorf("--data is required")
	}
	if d.file == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(d.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return data, nil
}

// dataset loads rows, picking the reader from the file extension.
func (d *dataSource) dataset() (engine.Dataset, error) {
	data, err := d.read()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(d.file)) {
	case ".csv":
		return helpers.ParseCSV(bytes.NewReader(data), helpers.CSVOptions{TextColumns: d.text})
	case ".tsv":
		return helpers.ParseCSV(bytes.NewReader(data), helpers.CSVOptions{Comma: '\t', TextColumns: d.text})
	case ".xlsx":
		return helpers.ReadXLSX(bytes.NewReader(data), d.sheet, d.text...)
	default:
		return engine.DatasetFromJSON(data, d.path)
	}
}

func (d *dataSource) network() (engine.Network, error) {
	data, err := d.read()
	if err != nil {
		return engine.Network{}, err
	}
	return engine.NetworkFromJSON(data, d.path)
}

// correlation is the heatmap input document.
type correlation struct {
	Columns []string     `json:"columns"`
	Matrix  [][]*float64 `json:"matrix"`
}

func (d *dataSource) correlation() (correlation, error) {
	var c correlation
	data, err := d.read()
	if err != nil {
		return c, err
	}
	if d.path != "" {
		sub, err := selectPath(data, d.path)
		if err != nil {
			return c, err
		}
		data = sub
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode correlation matrix: %w", err)
	}
	return c, nil
}

func selectPath(data []byte, path string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("path %q not found", path)
	}
	return []byte(res.Raw), nil
}
