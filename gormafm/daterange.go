package gormafm

import (
	"time"

	"github.com/pkg/errors"

	"github.com/theplant/afm"
)

const dateLayout = "2006-01-02"

// absoluteRange resolves an absolute date filter to a half-open [start, end)
// range. From and To are inclusive calendar dates, so end is the day after To.
// Boundaries are midnight UTC; store timestamps accordingly or map the filter
// onto a date column.
func absoluteRange(f afm.AbsoluteDateFilter) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, f.From, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(err, "parse absolute date %q", f.From)
	}
	end, err := time.ParseInLocation(dateLayout, f.To, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(err, "parse absolute date %q", f.To)
	}
	return start, end.AddDate(0, 0, 1), nil
}

// periodRange resolves a relative period window to a half-open [start, end)
// range. Offsets count whole periods from the one containing now: 0 is the
// current period, -1 the previous one.
func periodRange(now time.Time, granularity afm.Granularity, from, to int) (time.Time, time.Time, error) {
	if to < from {
		return time.Time{}, time.Time{}, errors.Errorf("invalid period range: from %d after to %d", from, to)
	}
	start, ok := periodStart(now, granularity)
	if !ok {
		return time.Time{}, time.Time{}, errors.Errorf("unsupported granularity %q", granularity)
	}
	return shiftPeriods(start, granularity, from), shiftPeriods(start, granularity, to+1), nil
}

// periodStart truncates t to the beginning of the period containing it.
// Weeks begin on Monday.
func periodStart(t time.Time, granularity afm.Granularity) (time.Time, bool) {
	switch granularity {
	case afm.GranularityDate:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
	case afm.GranularityWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), true
	case afm.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), true
	case afm.GranularityQuarter:
		month := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), month, 1, 0, 0, 0, 0, t.Location()), true
	case afm.GranularityYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()), true
	default:
		return time.Time{}, false
	}
}

func shiftPeriods(start time.Time, granularity afm.Granularity, n int) time.Time {
	switch granularity {
	case afm.GranularityDate:
		return start.AddDate(0, 0, n)
	case afm.GranularityWeek:
		return start.AddDate(0, 0, 7*n)
	case afm.GranularityMonth:
		return start.AddDate(0, n, 0)
	case afm.GranularityQuarter:
		return start.AddDate(0, 3*n, 0)
	case afm.GranularityYear:
		return start.AddDate(n, 0, 0)
	}
	return start
}
