package correlation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"CashflowSuite/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

// Entry is one static reference triple: the spelling used by the check
// register export, the spelling used by the payment projection export, and
// the company that owns the account. The projection spelling is the
// canonical bank name.
type Entry struct {
	CheckLabel      string `yaml:"cheques"`
	ProjectionLabel string `yaml:"proyeccion"`
	Company         string `yaml:"empresa"`
}

type pair struct {
	bank    string
	company string
}

// Resolver maps every known raw bank spelling, from any source vocabulary,
// to one canonical (bank, company) pair. Built once, immutable afterwards.
type Resolver struct {
	mapping map[string]pair
}

// NewResolver builds the lookup dictionary. Both the check spelling and the
// canonical projection spelling key the same pair, so resolution is
// idempotent under re-resolution. A spelling that collides after trimming is
// an authoring error in the table; last entry wins, deterministically.
func NewResolver(entries []Entry) *Resolver {
	m := make(map[string]pair, len(entries)*2)
	for _, e := range entries {
		canonical := strings.TrimSpace(e.ProjectionLabel)
		company := strings.TrimSpace(e.Company)
		if canonical == "" {
			continue
		}
		p := pair{bank: canonical, company: company}
		if raw := strings.TrimSpace(e.CheckLabel); raw != "" {
			m[raw] = p
		}
		m[canonical] = p
	}
	return &Resolver{mapping: m}
}

// Resolve canonicalizes a raw bank label. Lookup is exact-match on the
// trimmed string. Unknown labels pass through unchanged under company
// UNKNOWN so they stay visible and auditable in the report.
func (r *Resolver) Resolve(raw string) (bank, company string) {
	key := strings.TrimSpace(raw)
	if p, ok := r.mapping[key]; ok {
		return p.bank, p.company
	}
	return key, constants.UnknownCompany
}

// Known reports whether a trimmed label has a correlation entry.
func (r *Resolver) Known(raw string) bool {
	_, ok := r.mapping[strings.TrimSpace(raw)]
	return ok
}

// Len returns the number of distinct spellings in the dictionary.
func (r *Resolver) Len() int {
	return len(r.mapping)
}

type fileFormat struct {
	Entries []Entry `yaml:"correlations"`
}

// LoadFile reads correlation entries from a YAML file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("correlation file %s: %w", path, err)
	}
	return f.Entries, nil
}

// LoadDB reads correlation entries from the master table. Used when the
// deployment keeps reference data in Postgres instead of a YAML file.
func LoadDB(ctx context.Context, pool *pgxpool.Pool) ([]Entry, error) {
	rows, err := pool.Query(ctx,
		`SELECT check_label, projection_label, company FROM master_bank_correlation WHERE active_status = 'Active'`)
	if err != nil {
		return nil, fmt.Errorf("correlation master query: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.CheckLabel, &e.ProjectionLabel, &e.Company); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
