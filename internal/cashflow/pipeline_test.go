package cashflow

import (
	"testing"

	"CashflowSuite/internal/tabular"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceRow(bank, fci, bankBal string) []string {
	return []string{bank, fci, bankBal}
}

func testInputs() Inputs {
	return Inputs{
		Projection: tabular.New([][]string{
			header(12),
			projRow("Bco BBVA BYC SA", "alquiler", "2025-06-12", "1500", ""),
			projRow("Bco BBVA BYC SA", "sueldos", "2025-06-02", "400", ""),
		}),
		Checks: tabular.New([][]string{
			header(15),
			checkRow("1234", "2025-06-30", "BBVA FRANCES BYC", "proveedor", "250"),
		}),
		Balances: tabular.New([][]string{
			header(3),
			balanceRow("Bco BBVA BYC SA", "700", "5000"),
			balanceRow("Bco Credicoop MBZ SRL", "0", "90"),
		}),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	res, err := Run(testInputs(), Options{Today: today, Universe: UniverseBalances}, testResolver())
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	r := findRow(t, res.Report, RowBank, "BYC", "Bco BBVA BYC SA")
	assert.True(t, r.Overdue.Equal(dec("400")))
	assert.True(t, r.Days[2].Equal(dec("1500")))
	assert.True(t, r.Issued.Equal(dec("250")), "check spelling resolved to canonical before grouping")
	assert.True(t, r.BankBalance.Equal(dec("5000")))

	// Balance-only bank still shows up as a zero-activity row.
	m := findRow(t, res.Report, RowBank, "MBZ", "Bco Credicoop MBZ SRL")
	assert.True(t, m.TotalWeek.IsZero())
	assert.True(t, m.BankBalance.Equal(dec("90")))

	require.NotNil(t, res.Grid)
	assert.Len(t, res.Base, 3)
	assert.Zero(t, res.Dropped)
	assert.Empty(t, res.Unmapped)
}

func TestRun_BucketPartitionPreservesTotals(t *testing.T) {
	res, err := Run(testInputs(), Options{Today: today, Universe: UniverseBalances}, testResolver())
	require.NoError(t, err)

	var want decimal.Decimal
	for _, rec := range res.Records {
		if Classify(rec, today) == BucketNone {
			continue
		}
		want = want.Add(rec.Amount)
	}
	var got decimal.Decimal
	for _, r := range res.Report.Rows {
		if r.Kind != RowBank {
			continue
		}
		got = got.Add(r.Overdue).Add(r.TotalWeek).Add(r.Issued)
	}
	assert.True(t, got.Equal(want), "got %s want %s", got, want)
}

func TestRun_MissingBalances(t *testing.T) {
	in := testInputs()
	in.Balances = nil
	_, err := Run(in, Options{Today: today, Universe: UniverseBalances}, testResolver())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balances")
}

func TestRun_ManualUniverseOverridesBalances(t *testing.T) {
	in := testInputs()
	in.ManualBalances = []Balance{bal("BYC", "Bco BBVA BYC SA", "42", "0")}
	res, err := Run(in, Options{Today: today, Universe: UniverseManual}, testResolver())
	require.NoError(t, err)

	r := findRow(t, res.Report, RowBank, "BYC", "Bco BBVA BYC SA")
	assert.True(t, r.BankBalance.Equal(dec("42")))
	assert.True(t, r.FciBalance.Equal(dec("700")), "FCI balance kept from the file")
}

func TestRun_UnsettledOnly(t *testing.T) {
	in := testInputs()
	in.Projection = tabular.New([][]string{
		header(12),
		projRow("Bco BBVA BYC SA", "pendiente", "2025-06-12", "100", ""),
		projRow("Bco BBVA BYC SA", "liquidado", "2025-06-12", "999", "SI"),
	})
	in.UnsettledOnly = true
	res, err := Run(in, Options{Today: today, Universe: UniverseBalances}, testResolver())
	require.NoError(t, err)

	r := findRow(t, res.Report, RowBank, "BYC", "Bco BBVA BYC SA")
	assert.True(t, r.Days[2].Equal(dec("100")))
	assert.Equal(t, 1, res.Stats[KindProjection].Filtered)
}

func TestRun_TaxOptionalAndUnmappedUnion(t *testing.T) {
	in := testInputs()
	in.Checks = tabular.New([][]string{
		header(15),
		checkRow("9", "2025-06-11", "Banco Rarísimo", "x", "10"),
	})
	res, err := Run(in, Options{Today: today, Universe: UniverseRecords}, testResolver())
	require.NoError(t, err)

	assert.Equal(t, []string{"Banco Rarísimo"}, res.Unmapped)
	r := findRow(t, res.Report, RowBank, "UNKNOWN", "Banco Rarísimo")
	assert.True(t, r.Days[1].Equal(dec("10")))
}

func TestSpecFor_NamedHeaderDetection(t *testing.T) {
	named := tabular.New([][]string{
		{"Banco", "Fecha", "Importe", "Detalle"},
		{"Bco BBVA BYC SA", "2025-06-10", "5", ""},
	})
	res, err := Run(Inputs{
		Projection: named,
		Balances: tabular.New([][]string{
			header(3),
			balanceRow("Bco BBVA BYC SA", "0", "100"),
		}),
	}, Options{Today: today, Universe: UniverseBalances}, testResolver())
	require.NoError(t, err)

	r := findRow(t, res.Report, RowBank, "BYC", "Bco BBVA BYC SA")
	assert.True(t, r.Days[0].Equal(dec("5")))
}
