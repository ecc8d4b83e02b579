package valueobject

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPeriodOf(t *testing.T) {
	p := PeriodOf(time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, Period{Month: time.March, Year: 2026}, p)
}

func TestPeriodsOfDedupes(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	periods := PeriodsOf(dates)
	require.Len(t, periods, 2)
	assert.Equal(t, Period{Month: time.March, Year: 2026}, periods[0])
	assert.Equal(t, Period{Month: time.April, Year: 2026}, periods[1])
}

func TestPeriodBounds(t *testing.T) {
	start, end := Period{Month: time.December, Year: 2026}.Bounds(time.UTC)
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodNext(t *testing.T) {
	assert.Equal(t, Period{Month: time.February, Year: 2026}, Period{Month: time.January, Year: 2026}.Next())
	assert.Equal(t, Period{Month: time.January, Year: 2027}, Period{Month: time.December, Year: 2026}.Next())
}

func TestResolvePeriodRange(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		fromMonth *int
		fromYear  *int
		toMonth   *int
		toYear    *int
		wantFrom  Period
		wantTo    Period
		wantErr   bool
	}{
		{
			name:     "nothing defaults to current month",
			wantFrom: Period{Month: time.August, Year: 2026},
			wantTo:   Period{Month: time.August, Year: 2026},
		},
		{
			name:     "year only spans the whole year",
			fromYear: intPtr(2025),
			wantFrom: Period{Month: time.January, Year: 2025},
			wantTo:   Period{Month: time.December, Year: 2025},
		},
		{
			name:      "month only uses the current year",
			fromMonth: intPtr(3),
			wantFrom:  Period{Month: time.March, Year: 2026},
			wantTo:    Period{Month: time.March, Year: 2026},
		},
		{
			name:      "full range",
			fromMonth: intPtr(11),
			fromYear:  intPtr(2025),
			toMonth:   intPtr(2),
			toYear:    intPtr(2026),
			wantFrom:  Period{Month: time.November, Year: 2025},
			wantTo:    Period{Month: time.February, Year: 2026},
		},
		{
			name:      "reversed range rejected",
			fromMonth: intPtr(6),
			toMonth:   intPtr(2),
			wantErr:   true,
		},
		{
			name:      "month out of range rejected",
			fromMonth: intPtr(13),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolvePeriodRange(tt.fromMonth, tt.fromYear, tt.toMonth, tt.toYear, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, r.From)
			assert.Equal(t, tt.wantTo, r.To)
		})
	}
}

func TestPeriodRangePeriods(t *testing.T) {
	r := PeriodRange{
		From: Period{Month: time.November, Year: 2025},
		To:   Period{Month: time.February, Year: 2026},
	}
	periods := r.Periods()
	require.Len(t, periods, 4)
	assert.Equal(t, Period{Month: time.November, Year: 2025}, periods[0])
	assert.Equal(t, Period{Month: time.February, Year: 2026}, periods[3])
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2026, time.May, 7, 18, 45, 12, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2026, time.May, 7, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetweenCeil(from, from))
	assert.Equal(t, 0, DaysBetweenCeil(from, from.Add(-time.Hour)))
	assert.Equal(t, 1, DaysBetweenCeil(from, from.Add(6*time.Hour)))
	assert.Equal(t, 3, DaysBetweenCeil(from, from.Add(49*time.Hour)))

	assert.Equal(t, 0, DaysBetweenFloor(from, from.Add(6*time.Hour)))
	assert.Equal(t, 2, DaysBetweenFloor(from, from.Add(49*time.Hour)))
}

func TestSplitEvenly(t *testing.T) {
	parts := SplitEvenly(decimal.NewFromInt(1600), 3)
	require.Len(t, parts, 3)
	assert.True(t, parts[0].Equal(decimal.RequireFromString("533.33")))
	assert.True(t, parts[1].Equal(decimal.RequireFromString("533.33")))
	assert.True(t, parts[2].Equal(decimal.RequireFromString("533.34")))

	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1600)))
}

func TestSplitEvenlySinglePart(t *testing.T) {
	parts := SplitEvenly(decimal.RequireFromString("99.99"), 1)
	require.Len(t, parts, 1)
	assert.True(t, parts[0].Equal(decimal.RequireFromString("99.99")))
}

func TestSplitEvenlyInvalidCount(t *testing.T) {
	assert.Nil(t, SplitEvenly(decimal.NewFromInt(100), 0))
}
