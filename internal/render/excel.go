package render

import (
	"fmt"
	"io"

	"CashflowSuite/api/constants"
	"CashflowSuite/internal/cashflow"

	"github.com/xuri/excelize/v2"
)

const currencyFmt = "$ #,##0"

func borders() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	bs := make([]excelize.Border, len(sides))
	for i, s := range sides {
		bs[i] = excelize.Border{Type: s, Color: "000000", Style: 1}
	}
	return bs
}

type workbookStyles struct {
	title    int
	header   int
	text     int
	currency int
	subtotal int
	grand    int
	good     int
	bad      int
}

func buildStyles(f *excelize.File) (workbookStyles, error) {
	var st workbookStyles
	var err error
	numFmt := currencyFmt

	st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return st, err
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"ED7D31"}, Pattern: 1},
		Border:    borders(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return st, err
	}
	st.text, err = f.NewStyle(&excelize.Style{Border: borders()})
	if err != nil {
		return st, err
	}
	st.currency, err = f.NewStyle(&excelize.Style{Border: borders(), CustomNumFmt: &numFmt})
	if err != nil {
		return st, err
	}
	st.subtotal, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"FCE4D6"}, Pattern: 1},
		Border:       borders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return st, err
	}
	st.grand, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"BFBFBF"}, Pattern: 1},
		Border:       borders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return st, err
	}
	st.good, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Color: "006100"},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Border:       borders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return st, err
	}
	st.bad, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Color: "9C0006"},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Border:       borders(),
		CustomNumFmt: &numFmt,
	})
	return st, err
}

// WriteExcel renders the report grid, and optionally the flat audit
// extract, into an xlsx workbook. Styling follows the reference report:
// orange header band, per-company subtotal rows, one grand-total row and
// sign-driven coloring on the coverage columns.
func WriteExcel(w io.Writer, grid *cashflow.Grid, base []cashflow.BaseRow) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := constants.ReportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	st, err := buildStyles(f)
	if err != nil {
		return err
	}

	set := func(row, col int, v interface{}, style int) error {
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell, cell, style)
	}

	if err := set(0, 0, grid.Title, st.title); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A2",
		fmt.Sprintf(constants.FormatCurrentDate, grid.Today.Format("02/01/2006"))); err != nil {
		return err
	}

	headerRow := 3
	for i, h := range grid.Header {
		if err := set(headerRow, i, h, st.header); err != nil {
			return err
		}
	}

	row := headerRow + 1
	for _, gr := range grid.Rows {
		labelStyle := st.text
		cellStyle := func(c cashflow.Cell) int {
			switch c.Flag {
			case cashflow.FlagGood:
				return st.good
			case cashflow.FlagBad:
				return st.bad
			default:
				return st.currency
			}
		}
		switch gr.Kind {
		case cashflow.RowSubtotal:
			labelStyle = st.subtotal
			cellStyle = func(cashflow.Cell) int { return st.subtotal }
		case cashflow.RowGrandTotal:
			labelStyle = st.grand
			cellStyle = func(cashflow.Cell) int { return st.grand }
		}
		if err := set(row, 0, gr.Label, labelStyle); err != nil {
			return err
		}
		for i, c := range gr.Cells {
			if err := set(row, i+1, c.Value.InexactFloat64(), cellStyle(c)); err != nil {
				return err
			}
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(grid.Header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", lastCol, 15); err != nil {
		return err
	}

	if base != nil {
		if err := writeBaseSheet(f, base); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeBaseSheet(f *excelize.File, base []cashflow.BaseRow) error {
	sheet := constants.BaseSheetName
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, h := range cashflow.BaseColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, br := range base {
		vals := []interface{}{br.Company, br.Bank, br.Date, br.Amount.InexactFloat64(),
			string(br.Origin), br.Detail, br.ChequeNumber}
		for c, v := range vals {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
