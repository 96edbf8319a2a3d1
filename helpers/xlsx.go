package helpers

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/claimlens/engine"
)

// ============================================================================
// XLSX HELPER — Excel in and out
// ============================================================================
// ReadXLSX loads one sheet as a Dataset with the same cell typing as the
// CSV reader. WriteXLSX exports a rendered TableSpec: a bold header row,
// frozen, followed by the formatted display strings.
// ============================================================================

// DefaultSheet is used when no sheet name is given.
const DefaultSheet = "Sheet1"

// ReadXLSX reads sheet (empty → the first sheet) from r.
func ReadXLSX(r io.Reader, sheet string, textColumns ...string) (engine.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return datasetFromRows(rows, textColumns), nil
}

// WriteXLSX writes spec as a single-sheet workbook.
func WriteXLSX(w io.Writer, spec *engine.TableSpec, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if spec.Placeholder != nil {
		if err := f.SetCellValue(sheet, "A1", spec.Placeholder.Text); err != nil {
			return err
		}
		return writeWorkbook(f, w)
	}

	if err := f.SetSheetRow(sheet, "A1", &spec.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, row := range spec.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return writeWorkbook(f, w)
}

func writeWorkbook(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
