package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies a calendar month bucket. It is the key every financial
// summary is aggregated under.
type Period struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// PeriodOf returns the period the given date falls into
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// PeriodsOf dedupes a set of dates into their distinct periods,
// preserving first-seen order.
func PeriodsOf(dates []time.Time) []Period {
	seen := make(map[Period]struct{}, len(dates))
	periods := make([]Period, 0, len(dates))
	for _, d := range dates {
		p := PeriodOf(d)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		periods = append(periods, p)
	}
	return periods
}

// Bounds returns the half-open interval [monthStart, nextMonthStart)
// covering the period, in the given location.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// Before reports whether p is strictly earlier than other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// Next returns the following calendar month
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Month: time.January, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// String returns e.g. "2026-03"
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// PeriodRange is an inclusive range of periods
type PeriodRange struct {
	From Period
	To   Period
}

// ResolvePeriodRange normalizes a partial range specification into an explicit
// inclusive range. Callers may supply any combination of month and year for
// each endpoint; missing pieces are filled in relative to "now":
//
//   - month only: that month of the current year
//   - year only: January..December of that year
//   - nothing: the current month
//
// A reversed range is rejected.
func ResolvePeriodRange(fromMonth, fromYear, toMonth, toYear *int, now time.Time) (PeriodRange, error) {
	from := Period{Month: now.Month(), Year: now.Year()}
	to := from

	switch {
	case fromYear != nil && fromMonth != nil:
		from = Period{Month: time.Month(*fromMonth), Year: *fromYear}
	case fromYear != nil:
		from = Period{Month: time.January, Year: *fromYear}
	case fromMonth != nil:
		from = Period{Month: time.Month(*fromMonth), Year: now.Year()}
	}

	switch {
	case toYear != nil && toMonth != nil:
		to = Period{Month: time.Month(*toMonth), Year: *toYear}
	case toYear != nil:
		to = Period{Month: time.December, Year: *toYear}
	case toMonth != nil:
		to = Period{Month: time.Month(*toMonth), Year: now.Year()}
	default:
		// Year-only "from" spans the whole year when no "to" is given.
		if fromYear != nil && fromMonth == nil {
			to = Period{Month: time.December, Year: *fromYear}
		} else {
			to = from
		}
	}

	if from.Month < time.January || from.Month > time.December ||
		to.Month < time.January || to.Month > time.December {
		return PeriodRange{}, fmt.Errorf("month out of range")
	}
	if to.Before(from) {
		return PeriodRange{}, fmt.Errorf("range end %s precedes start %s", to, from)
	}
	return PeriodRange{From: from, To: to}, nil
}

// Periods enumerates every period in the inclusive range
func (r PeriodRange) Periods() []Period {
	periods := []Period{r.From}
	for p := r.From; p != r.To; {
		p = p.Next()
		periods = append(periods, p)
	}
	return periods
}

// SameCalendarDay reports whether two instants fall on the same calendar day
// in the given location.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates an instant to midnight in the given location
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetweenCeil returns the number of days from "from" until "to", rounded
// up, clamped to zero. Used for "days until due" annotations.
func DaysBetweenCeil(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// DaysBetweenFloor returns the number of whole days from "from" until "to",
// clamped to zero. Used for "days overdue" annotations.
func DaysBetweenFloor(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// SplitEvenly divides total into n parts rounded to MoneyScale, with the last
// part absorbing the rounding remainder so the parts sum to total exactly.
func SplitEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	per := total.Div(decimal.NewFromInt(int64(n))).Round(MoneyScale)
	parts := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		parts[i] = per
	}
	parts[n-1] = total.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))
	return parts
}
