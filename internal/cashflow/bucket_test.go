package cashflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var today = date(2025, time.June, 10)

func rec(origin Origin, d time.Time, amount string) Record {
	a, _ := decimal.NewFromString(amount)
	return Record{Company: "BYC", Bank: "Bco BBVA BYC SA", Date: d, Amount: a, Origin: origin}
}

func TestClassify_OverdueCheck(t *testing.T) {
	b := Classify(rec(OriginCheck, date(2025, time.June, 9), "1000"), today)
	assert.Equal(t, BucketOverdue, b)
}

func TestClassify_DayBucket(t *testing.T) {
	b := Classify(rec(OriginProjection, date(2025, time.June, 12), "500"), today)
	assert.Equal(t, BucketDay2, b)
	assert.True(t, b.IsDay())
	assert.Equal(t, 2, b.DayOffset())
}

func TestClassify_WindowInclusiveBothEnds(t *testing.T) {
	assert.Equal(t, BucketDay0, Classify(rec(OriginProjection, today, "1"), today))
	assert.Equal(t, BucketDay5, Classify(rec(OriginProjection, date(2025, time.June, 15), "1"), today))
}

func TestClassify_IssuedChecksOnly(t *testing.T) {
	beyond := date(2025, time.June, 20)
	assert.Equal(t, BucketIssued, Classify(rec(OriginCheck, beyond, "300"), today))
	assert.Equal(t, BucketNone, Classify(rec(OriginProjection, beyond, "300"), today))
	assert.Equal(t, BucketNone, Classify(rec(OriginTax, beyond, "300"), today))
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2025, time.June, 10, 12, 30, 0, 0, time.UTC)
	withTime := rec(OriginProjection, time.Date(2025, time.June, 11, 23, 0, 0, 0, time.UTC), "1")
	assert.Equal(t, BucketDay1, Classify(withTime, noon))
}

func TestDayLabels_SpanishWeekdays(t *testing.T) {
	labels := DayLabels(today) // 2025-06-10 is a Tuesday
	assert.Equal(t, "10-Jun\nMartes", labels[0])
	assert.Equal(t, "11-Jun\nMiércoles", labels[1])
	assert.Equal(t, "14-Jun\nSábado", labels[4])
	assert.Equal(t, "15-Jun\nDomingo", labels[5])
}
