package render

import (
	"fmt"
	"io"
	"strings"

	"CashflowSuite/api/constants"
	"CashflowSuite/internal/cashflow"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// formatMoney renders an amount the way the workbook's "$ #,##0" format
// does: rounded to whole units with thousand separators.
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	out := "$ " + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// WritePDF renders the report grid as a landscape paginated table. The
// highlight contract matches the Excel and JSON outputs exactly: coverage
// cells go green when positive and red when negative.
func WritePDF(w io.Writer, grid *cashflow.Grid) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 12)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	labelW := 48.0
	colW := (usable - labelW) / float64(len(grid.Header)-1)
	rowH := 6.0

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 7)
		pdf.SetFillColor(237, 125, 49)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range grid.Header {
			cw := colW
			if i == 0 {
				cw = labelW
			}
			label := strings.ReplaceAll(h, "\n", " ")
			pdf.CellFormat(cw, rowH, tr(label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(rowH)
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(usable, 8, tr(grid.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(usable, 6,
		fmt.Sprintf(constants.FormatCurrentDate, grid.Today.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	writeHeader()

	for _, gr := range grid.Rows {
		if pdf.GetY()+rowH > 190 {
			pdf.AddPage()
			writeHeader()
		}
		fillLabel := false
		switch gr.Kind {
		case cashflow.RowSubtotal:
			pdf.SetFont("Arial", "B", 7)
			pdf.SetFillColor(252, 228, 214)
			fillLabel = true
		case cashflow.RowGrandTotal:
			pdf.SetFont("Arial", "B", 7)
			pdf.SetFillColor(191, 191, 191)
			fillLabel = true
		default:
			pdf.SetFont("Arial", "", 7)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(labelW, rowH, tr(gr.Label), "1", 0, "L", fillLabel, 0, "")
		for _, c := range gr.Cells {
			fill := fillLabel
			switch {
			case gr.Kind == cashflow.RowBank && c.Flag == cashflow.FlagGood:
				pdf.SetFillColor(198, 239, 206)
				pdf.SetTextColor(0, 97, 0)
				fill = true
			case gr.Kind == cashflow.RowBank && c.Flag == cashflow.FlagBad:
				pdf.SetFillColor(255, 199, 206)
				pdf.SetTextColor(156, 0, 6)
				fill = true
			default:
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.CellFormat(colW, rowH, formatMoney(c.Value), "1", 0, "R", fill, 0, "")
			switch gr.Kind {
			case cashflow.RowSubtotal:
				pdf.SetFillColor(252, 228, 214)
			case cashflow.RowGrandTotal:
				pdf.SetFillColor(191, 191, 191)
			}
		}
		pdf.Ln(rowH)
	}
	return pdf.Output(w)
}
