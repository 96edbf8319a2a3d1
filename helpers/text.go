package helpers

import (
	"github.com/pterm/pterm"

	"github.com/spektr-org/claimlens/engine"
)

// RenderText draws a rendered table as a boxed terminal table. Color codes
// follow pterm's global output settings.
func RenderText(spec *engine.TableSpec) (string, error) {
	if spec.Placeholder != nil {
		return spec.Placeholder.Text + "\n", nil
	}
	data := make(pterm.TableData, 0, len(spec.Rows)+1)
	data = append(data, spec.Headers)
	data = append(data, spec.Rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}
