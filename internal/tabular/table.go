package tabular

import (
	"strings"
	"time"

	"CashflowSuite/api/constants"

	"github.com/shopspring/decimal"
)

// Table is a parsed spreadsheet: one header row plus data rows, as strings.
// Source files are not controlled by us, so rows may be ragged; cell access
// is bounds-checked and returns "" past the end of a row.
type Table struct {
	Headers []string
	Rows    [][]string

	headerIndex map[string]int
}

// New builds a Table from raw sheet rows. The first row is taken as the
// header row; header keys are normalized (trim, lower, spaces to
// underscores) for name lookups.
func New(records [][]string) *Table {
	t := &Table{headerIndex: make(map[string]int)}
	if len(records) == 0 {
		return t
	}
	t.Headers = records[0]
	t.Rows = records[1:]
	for i, h := range t.Headers {
		key := NormalizeHeader(h)
		if _, exists := t.headerIndex[key]; !exists && key != "" {
			t.headerIndex[key] = i
		}
	}
	return t
}

// NormalizeHeader normalizes a header cell for lookup: trim surrounding
// whitespace and quoting, lowercase, spaces to underscores.
func NormalizeHeader(h string) string {
	hn := strings.TrimSpace(h)
	hn = strings.Trim(hn, ", \t\n\r")
	hn = strings.Trim(hn, "'\"`")
	hn = strings.ToLower(hn)
	hn = strings.ReplaceAll(hn, " ", "_")
	return hn
}

// ColumnByName returns the index of a named header, using normalized keys.
func (t *Table) ColumnByName(name string) (int, bool) {
	i, ok := t.headerIndex[NormalizeHeader(name)]
	return i, ok
}

// Width returns the widest row seen, headers included. Positional column
// contracts are validated against this.
func (t *Table) Width() int {
	w := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Cell returns the trimmed cell at (row, col), "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ColIndex converts a spreadsheet column letter ("A", "B", ... "AA") to a
// zero-based index. Returns -1 for anything that is not a letter run.
func ColIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return -1
	}
	n := 0
	for _, c := range letter {
		if c < 'A' || c > 'Z' {
			return -1
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1
}

// ParseAmount coerces a cell to a decimal amount. A leading currency sign
// and comma thousand separators are tolerated; anything else unparsable
// reports ok=false so the caller can drop the row.
func ParseAmount(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		var ok bool
		if s, ok = stripThousands(s); !ok {
			return decimal.Zero, false
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// stripThousands removes comma separators when the commas form a valid
// grouping ("1,234,567" or "1,234.56"). Comma-decimal notation such as
// "1.234,56" or "1234,56" reports ok=false; dropping the row is safer
// than storing an amount off by orders of magnitude.
func stripThousands(s string) (string, bool) {
	intPart := s
	if i := strings.Index(s, "."); i >= 0 {
		intPart = s[:i]
		if strings.Contains(s[i+1:], ",") {
			return "", false
		}
	}
	intPart = strings.TrimPrefix(intPart, "-")
	groups := strings.Split(intPart, ",")
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	return strings.ReplaceAll(s, ",", ""), true
}

var dateLayouts = []string{
	constants.DateFormat,
	constants.DateFormatAlt,
	constants.DateFormatUS,
	constants.DateTimeFormat,
	"2006-01-02T15:04:05",
	"2/1/2006",
	"02-01-06",
	"2-Jan-06",
	"02-Jan-06",
	"2 Jan 2006",
	"2006/01/02",
}

// ParseDate coerces a cell to a calendar date, discarding any time of day.
// Layouts cover the formats seen across the exporting systems.
func ParseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
