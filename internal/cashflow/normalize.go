package cashflow

import (
	"fmt"
	"sort"
	"strings"

	"CashflowSuite/api/constants"
	"CashflowSuite/internal/correlation"
	"CashflowSuite/internal/tabular"
)

// SourceKind names an input file variant.
type SourceKind string

const (
	KindProjection SourceKind = "proyeccion"
	KindCheck      SourceKind = "cheques"
	KindTax        SourceKind = "impuestos"
	KindBalance    SourceKind = "saldos"
)

// FieldRef addresses one column of a source table. Exporting systems are
// not under our control: the projection and check files are stable by
// position, the tax calendar by column letter, and newer variants carry
// named headers, so all three modes are supported.
type FieldRef struct {
	index  int
	letter string
	name   string
	set    bool
}

// ByIndex addresses a column positionally (zero-based).
func ByIndex(i int) FieldRef { return FieldRef{index: i, set: true} }

// ByLetter addresses a column by its spreadsheet letter ("A", "G", ...).
func ByLetter(l string) FieldRef { return FieldRef{letter: l, set: true} }

// ByName addresses a column by header name (normalized lookup).
func ByName(n string) FieldRef { return FieldRef{name: n, set: true} }

// resolve turns the reference into a column index for the given table.
func (f FieldRef) resolve(t *tabular.Table) (int, bool) {
	switch {
	case f.name != "":
		return t.ColumnByName(f.name)
	case f.letter != "":
		i := tabular.ColIndex(f.letter)
		return i, i >= 0 && i < t.Width()
	default:
		return f.index, f.index >= 0 && f.index < t.Width()
	}
}

// Spec is the column contract for one source kind. Bank, Date and Amount
// are required; the rest are optional extras per variant.
type Spec struct {
	Kind   SourceKind
	Origin Origin

	Bank   FieldRef
	Date   FieldRef
	Amount FieldRef
	Detail FieldRef
	Cheque FieldRef

	// Status restricts tax rows to due/overdue entries.
	Status FieldRef
	// Settled, when set, keeps only rows whose settled marker is empty
	// (unsettled projected payments).
	Settled FieldRef
}

// ProjectionSpec is the column contract of the Proyeccion Pagos export.
func ProjectionSpec() Spec {
	return Spec{
		Kind:   KindProjection,
		Origin: OriginProjection,
		Bank:   ByIndex(0),
		Date:   ByIndex(2),
		Amount: ByIndex(9),
		Detail: ByIndex(1),
	}
}

// ProjectionUnsettledSpec is the report variant that pre-filters the
// projection to unsettled payments via the marker column.
func ProjectionUnsettledSpec() Spec {
	s := ProjectionSpec()
	s.Settled = ByIndex(11)
	return s
}

// CheckSpec is the column contract of the Cheques register export.
func CheckSpec() Spec {
	return Spec{
		Kind:   KindCheck,
		Origin: OriginCheck,
		Bank:   ByIndex(3),
		Date:   ByIndex(1),
		Amount: ByIndex(14),
		Detail: ByIndex(5),
		Cheque: ByIndex(0),
	}
}

// TaxSpec is the column contract of the tax-due calendar, which is stable
// by column letter rather than position.
func TaxSpec() Spec {
	return Spec{
		Kind:   KindTax,
		Origin: OriginTax,
		Bank:   ByLetter("B"),
		Date:   ByLetter("D"),
		Amount: ByLetter("G"),
		Detail: ByLetter("C"),
		Status: ByLetter("F"),
	}
}

// NamedSpec is the newer export variant that carries named headers. The
// status filter only applies to the tax calendar.
func NamedSpec(kind SourceKind, origin Origin) Spec {
	s := Spec{
		Kind:   kind,
		Origin: origin,
		Bank:   ByName("banco"),
		Date:   ByName("fecha"),
		Amount: ByName("importe"),
		Detail: ByName("detalle"),
		Cheque: ByName("nro_cheque"),
	}
	if kind == KindTax {
		s.Status = ByName("estado")
	}
	return s
}

// Stats reports on silent data-quality degradation during normalization:
// rows dropped for unparsable required fields, and distinct bank labels
// that had no correlation entry.
type Stats struct {
	RowsIn   int      `json:"rows_in"`
	Kept     int      `json:"kept"`
	Dropped  int      `json:"dropped"`
	Filtered int      `json:"filtered"`
	Unmapped []string `json:"unmapped,omitempty"`
}

// MissingColumnError names a required column absent from an input table.
// It aborts the run for that input.
type MissingColumnError struct {
	Kind  SourceKind
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf(constants.FormatMissingColumn, e.Kind, e.Field)
}

func taxStatusRetained(status string) bool {
	s := strings.ToUpper(strings.TrimSpace(status))
	return s == "OVERDUE" || s == "DUE"
}

// Normalize maps one source table into Records. Rows missing a parsable
// amount, date or bank label are dropped silently; that is expected ragged
// source data, not a failure. Each bank label is resolved exactly once and
// the canonical bank and company are stored on the record.
func Normalize(t *tabular.Table, spec Spec, resolver *correlation.Resolver) ([]Record, Stats, error) {
	required := []struct {
		ref  FieldRef
		name string
	}{
		{spec.Bank, "banco"},
		{spec.Date, "fecha"},
		{spec.Amount, "importe"},
	}
	cols := make([]int, len(required))
	for i, r := range required {
		idx, ok := r.ref.resolve(t)
		if !ok {
			return nil, Stats{}, &MissingColumnError{Kind: spec.Kind, Field: r.name}
		}
		cols[i] = idx
	}
	bankCol, dateCol, amountCol := cols[0], cols[1], cols[2]

	detailCol, hasDetail := optional(spec.Detail, t)
	chequeCol, hasCheque := optional(spec.Cheque, t)

	// The status and settled columns gate which rows enter the report.
	// Skipping a declared gate would let paid taxes or settled payments
	// through, so an unresolvable gate column aborts the input instead.
	statusCol, hasStatus, err := gate(spec.Status, t, spec.Kind, "estado")
	if err != nil {
		return nil, Stats{}, err
	}
	settledCol, hasSettled, err := gate(spec.Settled, t, spec.Kind, "liquidado")
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{RowsIn: len(t.Rows)}
	unmapped := make(map[string]bool)
	records := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		if hasStatus && !taxStatusRetained(t.Cell(i, statusCol)) {
			stats.Filtered++
			continue
		}
		if hasSettled && t.Cell(i, settledCol) != "" {
			stats.Filtered++
			continue
		}
		rawBank := t.Cell(i, bankCol)
		amount, amountOK := tabular.ParseAmount(t.Cell(i, amountCol))
		date, dateOK := tabular.ParseDate(t.Cell(i, dateCol))
		if rawBank == "" || !amountOK || !dateOK {
			stats.Dropped++
			continue
		}
		bank, company := resolver.Resolve(rawBank)
		if company == constants.UnknownCompany {
			unmapped[bank] = true
		}
		rec := Record{
			Company: company,
			Bank:    bank,
			Date:    date,
			Amount:  amount,
			Origin:  spec.Origin,
		}
		if hasDetail {
			rec.Detail = t.Cell(i, detailCol)
		}
		if hasCheque {
			rec.ChequeNumber = t.Cell(i, chequeCol)
		}
		records = append(records, rec)
	}
	stats.Kept = len(records)
	for label := range unmapped {
		stats.Unmapped = append(stats.Unmapped, label)
	}
	sort.Strings(stats.Unmapped)
	return records, stats, nil
}

func optional(ref FieldRef, t *tabular.Table) (int, bool) {
	if !ref.set {
		return -1, false
	}
	idx, ok := ref.resolve(t)
	if !ok {
		return -1, false
	}
	return idx, true
}

// gate resolves a row-filter column. A spec that never declares the gate
// gets no filtering; a spec that declares it must find the column.
func gate(ref FieldRef, t *tabular.Table, kind SourceKind, name string) (int, bool, error) {
	if !ref.set {
		return -1, false, nil
	}
	idx, ok := ref.resolve(t)
	if !ok {
		return -1, false, &MissingColumnError{Kind: kind, Field: name}
	}
	return idx, true, nil
}

// NormalizeBalances maps the Saldos export (column A bank, B FCI balance,
// C bank balance) into Balance entries. Rows where either balance fails
// coercion are dropped; duplicate (company, bank) pairs keep the first
// occurrence.
func NormalizeBalances(t *tabular.Table, resolver *correlation.Resolver) ([]Balance, Stats, error) {
	if t.Width() < 3 {
		return nil, Stats{}, &MissingColumnError{Kind: KindBalance, Field: "saldo_banco"}
	}
	stats := Stats{RowsIn: len(t.Rows)}
	unmapped := make(map[string]bool)
	seen := make(map[string]bool)
	balances := make([]Balance, 0, len(t.Rows))
	for i := range t.Rows {
		rawBank := t.Cell(i, 0)
		fci, fciOK := tabular.ParseAmount(t.Cell(i, 1))
		bal, balOK := tabular.ParseAmount(t.Cell(i, 2))
		if rawBank == "" || !fciOK || !balOK {
			stats.Dropped++
			continue
		}
		bank, company := resolver.Resolve(rawBank)
		if company == constants.UnknownCompany {
			unmapped[bank] = true
		}
		key := company + "\x00" + bank
		if seen[key] {
			stats.Filtered++
			continue
		}
		seen[key] = true
		balances = append(balances, Balance{
			Company:     company,
			Bank:        bank,
			FciBalance:  fci,
			BankBalance: bal,
		})
	}
	stats.Kept = len(balances)
	for label := range unmapped {
		stats.Unmapped = append(stats.Unmapped, label)
	}
	sort.Strings(stats.Unmapped)
	return balances, stats, nil
}
