package cashflow

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"CashflowSuite/api/constants"

	"github.com/shopspring/decimal"
)

// Universe is the explicit row-universe policy for one report run. The
// variants differ on which (company, bank) pairs form the report rows; the
// drop/keep behavior at the boundary is part of the contract, not a bug.
type Universe string

const (
	// UniverseRecords keys rows off the line items. Banks present only
	// in the balances file are dropped.
	UniverseRecords Universe = "records"
	// UniverseBalances keys rows off the balances file, left-joining
	// activity. Banks with activity but no balance entry are dropped.
	UniverseBalances Universe = "balances"
	// UniverseManual behaves like UniverseBalances with user-entered
	// opening balances overriding the balances file.
	UniverseManual Universe = "manual"
)

// ParseUniverse validates a client-supplied universe value. Empty defaults
// to UniverseBalances, the reference report's behavior.
func ParseUniverse(s string) (Universe, error) {
	switch Universe(s) {
	case "":
		return UniverseBalances, nil
	case UniverseRecords, UniverseBalances, UniverseManual:
		return Universe(s), nil
	}
	return "", errors.New(constants.ErrInvalidUniverse)
}

// RowKind distinguishes bank rows from the derived total rows.
type RowKind int

const (
	RowBank RowKind = iota
	RowSubtotal
	RowGrandTotal
)

// Row is the aggregation unit keyed by (Company, Bank), one wide row per
// bank with one column per bucket plus balances and coverage. Subtotal and
// grand-total rows reuse the shape with Bank empty.
type Row struct {
	Kind    RowKind `json:"kind"`
	Company string  `json:"company"`
	Bank    string  `json:"bank,omitempty"`
	Label   string  `json:"label"`

	BankBalance decimal.Decimal            `json:"bank_balance"`
	FciBalance  decimal.Decimal            `json:"fci_balance"`
	Overdue     decimal.Decimal            `json:"overdue"`
	Days        [WindowDays]decimal.Decimal `json:"days"`
	TotalWeek   decimal.Decimal            `json:"total_week"`
	Issued      decimal.Decimal            `json:"issued"`

	CoverageOverdue decimal.Decimal `json:"coverage_overdue"`
	CoverageFuture  decimal.Decimal `json:"coverage_future"`
}

// Values returns the row's numeric cells in the fixed column order:
// BankBalance, FciBalance, Overdue, Day0..Day5, TotalWeek, Issued,
// CoverageOverdue, CoverageFuture. The two coverage columns are always
// last; Columns must stay in step with this.
func (r *Row) Values() []decimal.Decimal {
	vals := make([]decimal.Decimal, 0, 12+WindowDays)
	vals = append(vals, r.BankBalance, r.FciBalance, r.Overdue)
	vals = append(vals, r.Days[:]...)
	vals = append(vals, r.TotalWeek, r.Issued, r.CoverageOverdue, r.CoverageFuture)
	return vals
}

// Report is the aggregated cashflow table: bank rows grouped by company,
// one subtotal row per company, one grand-total row. Read-only once built.
type Report struct {
	Today     time.Time          `json:"today"`
	Universe  Universe           `json:"universe"`
	DayLabels [WindowDays]string `json:"day_labels"`
	Rows      []Row              `json:"rows"`
}

// Columns returns the report's column labels in contract order.
func (rep *Report) Columns() []string {
	cols := make([]string, 0, 12+WindowDays)
	cols = append(cols, "Saldo Banco", "Saldo FCI", "Vencido")
	cols = append(cols, rep.DayLabels[:]...)
	cols = append(cols, "Total Semana", "Emitidos", "A Cubrir Vencido", "A Cubrir Semana")
	return cols
}

type groupKey struct {
	company string
	bank    string
}

// MergeManual overlays user-entered opening balances onto the balances
// file: a matching (company, bank) pair gets its bank balance replaced,
// an unmatched manual entry is appended.
func MergeManual(balances, manual []Balance) []Balance {
	merged := make([]Balance, len(balances))
	copy(merged, balances)
	index := make(map[groupKey]int, len(merged))
	for i, b := range merged {
		index[groupKey{b.Company, b.Bank}] = i
	}
	for _, m := range manual {
		if i, ok := index[groupKey{m.Company, m.Bank}]; ok {
			merged[i].BankBalance = m.BankBalance
			continue
		}
		merged = append(merged, m)
	}
	return merged
}

// Aggregate groups bucketed records by (company, bank), pivots buckets into
// columns, merges balances per the universe policy, zero-fills every cell
// missing after the merges, and derives the coverage columns:
// CoverageOverdue = BankBalance - Overdue,
// CoverageFuture  = BankBalance - Overdue - TotalWeek.
func Aggregate(records []Record, balances []Balance, today time.Time, universe Universe) *Report {
	today = dateOnly(today)

	type sums struct {
		overdue decimal.Decimal
		days    [WindowDays]decimal.Decimal
		issued  decimal.Decimal
		active  bool
	}
	acc := make(map[groupKey]*sums)
	get := func(k groupKey) *sums {
		s, ok := acc[k]
		if !ok {
			s = &sums{}
			acc[k] = s
		}
		return s
	}
	for _, rec := range records {
		b := Classify(rec, today)
		if b == BucketNone {
			continue
		}
		s := get(groupKey{rec.Company, rec.Bank})
		s.active = true
		switch {
		case b == BucketOverdue:
			s.overdue = s.overdue.Add(rec.Amount)
		case b.IsDay():
			i := b.DayOffset()
			s.days[i] = s.days[i].Add(rec.Amount)
		case b == BucketIssued:
			s.issued = s.issued.Add(rec.Amount)
		}
	}

	balanceIndex := make(map[groupKey]Balance, len(balances))
	for _, b := range balances {
		balanceIndex[groupKey{b.Company, b.Bank}] = b
	}

	// Row universe per policy.
	var keys []groupKey
	switch universe {
	case UniverseRecords:
		for k, s := range acc {
			if s.active {
				keys = append(keys, k)
			}
		}
	default: // balances and manual: balances file is the base
		for _, b := range balances {
			keys = append(keys, groupKey{b.Company, b.Bank})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].company != keys[j].company {
			return keys[i].company < keys[j].company
		}
		return keys[i].bank < keys[j].bank
	})

	rep := &Report{Today: today, Universe: universe, DayLabels: DayLabels(today)}

	var grand Row
	grand.Kind = RowGrandTotal
	grand.Label = constants.LabelGrandTotal

	flushSubtotal := func(sub *Row) {
		if sub.Company == "" {
			return
		}
		rep.Rows = append(rep.Rows, *sub)
	}

	var sub Row
	for _, k := range keys {
		if k.company != sub.Company {
			flushSubtotal(&sub)
			sub = Row{Kind: RowSubtotal, Company: k.company,
				Label: fmt.Sprintf(constants.FormatSubtotal, k.company)}
		}
		row := Row{Kind: RowBank, Company: k.company, Bank: k.bank, Label: k.bank}
		// Cells start at zero; anything absent from a merge stays
		// zero-filled here rather than per column downstream.
		if s, ok := acc[k]; ok {
			row.Overdue = s.overdue
			row.Days = s.days
			row.Issued = s.issued
		}
		if b, ok := balanceIndex[k]; ok {
			row.BankBalance = b.BankBalance
			row.FciBalance = b.FciBalance
		}
		for _, d := range row.Days {
			row.TotalWeek = row.TotalWeek.Add(d)
		}
		row.CoverageOverdue = row.BankBalance.Sub(row.Overdue)
		row.CoverageFuture = row.BankBalance.Sub(row.Overdue).Sub(row.TotalWeek)

		addInto(&sub, &row)
		addInto(&grand, &row)
		rep.Rows = append(rep.Rows, row)
	}
	flushSubtotal(&sub)
	if len(keys) > 0 {
		rep.Rows = append(rep.Rows, grand)
	}
	return rep
}

// addInto accumulates a bank row into a subtotal or grand-total row. Every
// numeric column is summed arithmetically, coverage included.
func addInto(total, row *Row) {
	total.BankBalance = total.BankBalance.Add(row.BankBalance)
	total.FciBalance = total.FciBalance.Add(row.FciBalance)
	total.Overdue = total.Overdue.Add(row.Overdue)
	for i := range total.Days {
		total.Days[i] = total.Days[i].Add(row.Days[i])
	}
	total.TotalWeek = total.TotalWeek.Add(row.TotalWeek)
	total.Issued = total.Issued.Add(row.Issued)
	total.CoverageOverdue = total.CoverageOverdue.Add(row.CoverageOverdue)
	total.CoverageFuture = total.CoverageFuture.Add(row.CoverageFuture)
}
