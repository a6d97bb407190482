package cashflow

import (
	"errors"
	"sort"
	"time"

	"CashflowSuite/api/constants"
	"CashflowSuite/internal/correlation"
	"CashflowSuite/internal/tabular"
)

// Inputs are the parsed source tables for one report run. Projection,
// Checks and Balances are required; Tax is optional. ManualBalances apply
// under UniverseManual only.
type Inputs struct {
	Projection     *tabular.Table
	Checks         *tabular.Table
	Balances       *tabular.Table
	Tax            *tabular.Table
	ManualBalances []Balance

	// UnsettledOnly pre-filters the projection to rows whose settled
	// marker column is empty.
	UnsettledOnly bool
}

// Options are the per-run knobs: the evaluation date (overridable for
// reproducible runs) and the row-universe policy.
type Options struct {
	Today    time.Time
	Universe Universe
}

// Result is everything one run produces. Stats keep the silent data-quality
// degradation visible: per-source drop counts and the union of unmapped
// bank labels.
type Result struct {
	Report  *Report
	Grid    *Grid
	Base    []BaseRow
	Records []Record

	Stats    map[SourceKind]Stats
	Dropped  int
	Unmapped []string
}

// specFor picks the addressing mode for a source table: the newer exports
// carry named headers, the legacy ones are positional or letter-stable.
func specFor(kind SourceKind, origin Origin, t *tabular.Table, unsettledOnly bool) Spec {
	if _, okBank := t.ColumnByName("banco"); okBank {
		if _, okAmount := t.ColumnByName("importe"); okAmount {
			return NamedSpec(kind, origin)
		}
	}
	switch kind {
	case KindCheck:
		return CheckSpec()
	case KindTax:
		return TaxSpec()
	default:
		if unsettledOnly {
			return ProjectionUnsettledSpec()
		}
		return ProjectionSpec()
	}
}

// Run executes the whole pipeline synchronously: normalize each source,
// bucket by time, aggregate by (company, bank) under the universe policy,
// and shape the presentation grid plus the audit extract. It is a pure
// function of the inputs and options; rerunning with identical inputs and
// the same today yields identical aggregates.
func Run(in Inputs, opts Options, resolver *correlation.Resolver) (*Result, error) {
	res := &Result{Stats: make(map[SourceKind]Stats)}

	sources := []struct {
		kind   SourceKind
		origin Origin
		table  *tabular.Table
	}{
		{KindProjection, OriginProjection, in.Projection},
		{KindCheck, OriginCheck, in.Checks},
		{KindTax, OriginTax, in.Tax},
	}
	unmapped := make(map[string]bool)
	for _, src := range sources {
		if src.table == nil {
			continue
		}
		spec := specFor(src.kind, src.origin, src.table, in.UnsettledOnly)
		recs, stats, err := Normalize(src.table, spec, resolver)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, recs...)
		res.Stats[src.kind] = stats
		res.Dropped += stats.Dropped
		for _, label := range stats.Unmapped {
			unmapped[label] = true
		}
	}

	if in.Balances == nil {
		return nil, errors.New(constants.ErrMissingBalancesFile)
	}
	balances, balStats, err := NormalizeBalances(in.Balances, resolver)
	if err != nil {
		return nil, err
	}
	res.Stats[KindBalance] = balStats
	res.Dropped += balStats.Dropped
	for _, label := range balStats.Unmapped {
		unmapped[label] = true
	}

	if opts.Universe == UniverseManual {
		balances = MergeManual(balances, in.ManualBalances)
	}

	res.Report = Aggregate(res.Records, balances, opts.Today, opts.Universe)
	res.Grid = BuildGrid(res.Report)
	res.Base = BuildBase(res.Records)
	for label := range unmapped {
		res.Unmapped = append(res.Unmapped, label)
	}
	sort.Strings(res.Unmapped)
	return res, nil
}
