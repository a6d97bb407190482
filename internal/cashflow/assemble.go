package cashflow

import (
	"time"

	"CashflowSuite/api/constants"

	"github.com/shopspring/decimal"
)

// Flag is the presentation highlight on a grid cell. The rule is the sign
// of the coverage value and must render identically across every output
// format: positive good, negative bad, zero neutral.
type Flag string

const (
	FlagNone Flag = ""
	FlagGood Flag = "good"
	FlagBad  Flag = "bad"
)

// Cell is one numeric grid cell with its highlight flag.
type Cell struct {
	Value decimal.Decimal `json:"value"`
	Flag  Flag            `json:"flag,omitempty"`
}

// GridRow is one presentation row: the row label (bank name, "Total X" or
// the grand-total label) plus the numeric cells in column order.
type GridRow struct {
	Kind  RowKind `json:"kind"`
	Label string  `json:"label"`
	Cells []Cell  `json:"cells"`
}

// Grid is the presentation-ready projection of a Report, consumed as-is by
// the JSON response and by the Excel and PDF writers. It owns no business
// logic beyond shaping.
type Grid struct {
	Title  string    `json:"title"`
	Today  time.Time `json:"today"`
	Header []string  `json:"header"`
	Rows   []GridRow `json:"rows"`
}

func coverageFlag(v decimal.Decimal) Flag {
	switch {
	case v.IsPositive():
		return FlagGood
	case v.IsNegative():
		return FlagBad
	default:
		return FlagNone
	}
}

// BuildGrid shapes an aggregated report into a renderable grid. Coverage
// flags apply to bank rows only; subtotal and grand-total rows render in
// their own style without conditional coloring.
func BuildGrid(rep *Report) *Grid {
	cols := rep.Columns()
	g := &Grid{
		Title:  constants.ReportTitle,
		Today:  rep.Today,
		Header: append([]string{constants.LabelRowHeader}, cols...),
	}
	coverageFrom := len(cols) - 2
	for i := range rep.Rows {
		row := &rep.Rows[i]
		vals := row.Values()
		cells := make([]Cell, len(vals))
		for j, v := range vals {
			c := Cell{Value: v}
			if row.Kind == RowBank && j >= coverageFrom {
				c.Flag = coverageFlag(v)
			}
			cells[j] = c
		}
		g.Rows = append(g.Rows, GridRow{Kind: row.Kind, Label: row.Label, Cells: cells})
	}
	return g
}

// BaseColumns is the header of the flat audit extract.
var BaseColumns = []string{"Empresa", "Banco", "Fecha", "Importe", "Origen", "Detalle", "Nro Cheque"}

// BaseRow is one audit line tracing a normalized record back to its source.
type BaseRow struct {
	Company      string          `json:"company"`
	Bank         string          `json:"bank"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Origin       Origin          `json:"origin"`
	Detail       string          `json:"detail,omitempty"`
	ChequeNumber string          `json:"cheque_number,omitempty"`
}

// BuildBase flattens every normalized record into the audit extract, in
// input order.
func BuildBase(records []Record) []BaseRow {
	rows := make([]BaseRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, BaseRow{
			Company:      rec.Company,
			Bank:         rec.Bank,
			Date:         rec.Date.Format(constants.DateFormat),
			Amount:       rec.Amount,
			Origin:       rec.Origin,
			Detail:       rec.Detail,
			ChequeNumber: rec.ChequeNumber,
		})
	}
	return rows
}
