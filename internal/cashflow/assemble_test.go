package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid_HeaderAndShape(t *testing.T) {
	rep := Aggregate(sampleRecords(), sampleBalances(), today, UniverseBalances)
	g := BuildGrid(rep)

	assert.Equal(t, "Resumen Cashflow", g.Title)
	require.Equal(t, len(rep.Columns())+1, len(g.Header))
	assert.Equal(t, "Etiquetas de fila", g.Header[0])
	assert.Equal(t, "A Cubrir Semana", g.Header[len(g.Header)-1])

	require.Equal(t, len(rep.Rows), len(g.Rows))
	for i, gr := range g.Rows {
		assert.Equal(t, rep.Rows[i].Label, gr.Label)
		assert.Len(t, gr.Cells, len(rep.Columns()))
	}
}

func TestBuildGrid_CoverageFlagsOnBankRowsOnly(t *testing.T) {
	rep := Aggregate(sampleRecords(), sampleBalances(), today, UniverseBalances)
	g := BuildGrid(rep)

	for _, gr := range g.Rows {
		n := len(gr.Cells)
		for j, c := range gr.Cells {
			if gr.Kind != RowBank || j < n-2 {
				assert.Equal(t, FlagNone, c.Flag, "row %q col %d", gr.Label, j)
				continue
			}
			switch {
			case c.Value.IsPositive():
				assert.Equal(t, FlagGood, c.Flag, "row %q col %d", gr.Label, j)
			case c.Value.IsNegative():
				assert.Equal(t, FlagBad, c.Flag, "row %q col %d", gr.Label, j)
			default:
				assert.Equal(t, FlagNone, c.Flag, "row %q col %d", gr.Label, j)
			}
		}
	}
}

func TestBuildGrid_NegativeCoverageFlaggedBad(t *testing.T) {
	records := []Record{
		item("BYC", "Bco BBVA BYC SA", OriginCheck, date(2025, time.June, 1), "9000"),
	}
	balances := []Balance{bal("BYC", "Bco BBVA BYC SA", "100", "0")}
	g := BuildGrid(Aggregate(records, balances, today, UniverseBalances))

	row := g.Rows[0]
	n := len(row.Cells)
	assert.Equal(t, FlagBad, row.Cells[n-2].Flag)
	assert.Equal(t, FlagBad, row.Cells[n-1].Flag)
}

func TestBuildBase(t *testing.T) {
	records := []Record{
		{Company: "BYC", Bank: "Bco BBVA BYC SA", Date: date(2025, time.June, 12),
			Amount: dec("300.50"), Origin: OriginCheck, Detail: "proveedor X", ChequeNumber: "1234"},
		{Company: "MBZ", Bank: "Bco Credicoop MBZ SRL", Date: date(2025, time.June, 10),
			Amount: dec("-80"), Origin: OriginProjection},
	}
	rows := BuildBase(records)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Empresa", "Banco", "Fecha", "Importe", "Origen", "Detalle", "Nro Cheque"}, BaseColumns)
	assert.Equal(t, "2025-06-12", rows[0].Date)
	assert.Equal(t, OriginCheck, rows[0].Origin)
	assert.Equal(t, "1234", rows[0].ChequeNumber)
	assert.Equal(t, "", rows[1].ChequeNumber)
	assert.True(t, rows[1].Amount.Equal(dec("-80")))
}
