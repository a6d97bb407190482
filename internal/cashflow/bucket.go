package cashflow

import (
	"fmt"
	"time"

	"CashflowSuite/api/constants"
)

// Bucket classifies a record relative to the evaluation date. The window is
// fixed: overdue, one bucket per day for today through today+5 inclusive,
// and issued-but-not-yet-due beyond that (check-origin items only).
type Bucket int

const (
	// BucketNone marks records excluded from every bucket: non-check
	// items dated beyond the six-day window.
	BucketNone Bucket = iota - 1
	BucketOverdue
	BucketDay0
	BucketDay1
	BucketDay2
	BucketDay3
	BucketDay4
	BucketDay5
	BucketIssued
)

// WindowDays is the number of per-day buckets after the evaluation date.
const WindowDays = 6

var spanishWeekdays = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// DayLabel renders the column label for one day bucket:
// "{dd-MMM}\n{Spanish weekday}".
func DayLabel(d time.Time) string {
	return fmt.Sprintf("%s\n%s", d.Format(constants.DayLabelFormat), spanishWeekdays[d.Weekday()])
}

// DayLabels returns the six day-bucket labels starting at today.
func DayLabels(today time.Time) [WindowDays]string {
	var labels [WindowDays]string
	for i := 0; i < WindowDays; i++ {
		labels[i] = DayLabel(today.AddDate(0, 0, i))
	}
	return labels
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify assigns a record to its bucket. Pure function of the record and
// today; both ends of the six-day window are inclusive.
func Classify(rec Record, today time.Time) Bucket {
	today = dateOnly(today)
	date := dateOnly(rec.Date)
	limit := today.AddDate(0, 0, WindowDays-1)
	switch {
	case date.Before(today):
		return BucketOverdue
	case !date.After(limit):
		offset := int(date.Sub(today).Hours() / 24)
		return BucketDay0 + Bucket(offset)
	case rec.Origin == OriginCheck:
		return BucketIssued
	default:
		return BucketNone
	}
}

// IsDay reports whether b is one of the six per-day buckets.
func (b Bucket) IsDay() bool {
	return b >= BucketDay0 && b <= BucketDay5
}

// DayOffset returns 0..5 for day buckets, -1 otherwise.
func (b Bucket) DayOffset() int {
	if !b.IsDay() {
		return -1
	}
	return int(b - BucketDay0)
}
