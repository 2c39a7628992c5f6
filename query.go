package afm

import "github.com/samber/lo"

// GlobalDateFilters returns the date filters of the AFM-level filter
// sequence in their original order. Filters attached to measures are not
// included.
func GlobalDateFilters(a AFM) []DateFilter {
	return lo.FilterMap(a.Filters, func(f Filter, _ int) (DateFilter, bool) {
		date, ok := f.(DateFilter)
		return date, ok
	})
}

// HasGlobalDateFilter reports whether the AFM-level filter sequence contains
// at least one date filter.
func HasGlobalDateFilter(a AFM) bool {
	return lo.SomeBy(a.Filters, IsDateFilter)
}

// MeasureDateFilters returns the date filters attached to simple measures,
// in measure order and then per-measure filter order. Period-over-period
// measures carry no filters of their own and contribute nothing.
func MeasureDateFilters(a AFM) []DateFilter {
	filters := []DateFilter{}
	for _, m := range a.Measures {
		simple, ok := m.Definition.(SimpleMeasureDefinition)
		if !ok {
			continue
		}
		for _, f := range simple.Filters {
			if date, ok := f.(DateFilter); ok {
				filters = append(filters, date)
			}
		}
	}
	return filters
}

// HasMeasureDateFilters reports whether any simple measure carries at least
// one date filter.
func HasMeasureDateFilters(a AFM) bool {
	return len(MeasureDateFilters(a)) > 0
}

// IsExecutable reports whether the AFM describes something to compute: at
// least one measure or one attribute. Filters and native totals alone only
// restrict, they never compute.
func IsExecutable(a AFM) bool {
	return len(a.Measures) > 0 || len(a.Attributes) > 0
}
