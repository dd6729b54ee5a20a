// Package export renders tower ledger listings into downloadable artefacts:
// Excel workbooks and printable PDF documents.
package export

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/printing"
	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned when an export is requested over an empty listing.
var ErrNoRows = shared.NewDomainError("VALIDATION_ERROR", "There are no rows to export")

// Column describes one table column of an exportable listing. Value renders
// the cell for a row. NoExport columns are skipped in Excel output, NoPrint
// columns in PDF output.
type Column[T any] struct {
	Name     string
	Value    func(T) string
	NoExport bool
	NoPrint  bool
}

// Excel builds an .xlsx workbook with a header row and one row per record.
func Excel[T any](sheet string, columns []Column[T], rows []T) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	visible := make([]Column[T], 0, len(columns))
	for _, col := range columns {
		if !col.NoExport {
			visible = append(visible, col)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range visible {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, col := range visible {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, col.Value(row)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// TableHTML builds the printable HTML fragment for a listing: a title and a
// bordered table.
func TableHTML[T any](title string, columns []Column[T], rows []T) string {
	visible := make([]Column[T], 0, len(columns))
	for _, col := range columns {
		if !col.NoPrint {
			visible = append(visible, col)
		}
	}

	var b strings.Builder
	b.WriteString(`<style>
body { font-family: sans-serif; }
h1 { font-size: 16px; }
table { border-collapse: collapse; width: 100%; font-size: 11px; }
th, td { border: 1px solid #444; padding: 4px 6px; text-align: left; }
th { background: #eee; }
</style>`)

	if title != "" {
		b.WriteString("<h1>")
		b.WriteString(html.EscapeString(title))
		b.WriteString("</h1>")
	}

	b.WriteString("<table><thead><tr>")
	for _, col := range visible {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(col.Name))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range rows {
		b.WriteString("<tr>")
		for _, col := range visible {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(col.Value(row)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	return b.String()
}

// PDF renders a listing through the configured renderer.
func PDF[T any](ctx context.Context, renderer printing.PDFRenderer, title string, columns []Column[T], rows []T) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return renderer.Render(ctx, TableHTML(title, columns, rows), title)
}
