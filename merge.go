package afm

import "github.com/samber/lo"

// AppendFilters merges additional filters into the AFM-level filter sequence
// and returns the resulting AFM; the input is left untouched. Attribute
// filters are appended after the ones already present, without
// deduplication. dateFilter may be nil.
//
// A non-nil dateFilter replaces every existing date filter restricting the
// same dataset; date filters for other datasets survive. A dateFilter
// carrying AllTimeGranularity clears the restriction for its dataset:
// matching filters are dropped and nothing is added in their place. Dataset
// comparison resolves both qualifiers; when either side resolves to nothing
// the two filters are unrelated and both survive.
//
// The result orders filters as: existing attribute filters, new attribute
// filters, the new date filter (unless all-time), surviving existing date
// filters. Nil entries are dropped.
func AppendFilters(a AFM, attributeFilters []AttributeFilter, dateFilter DateFilter) AFM {
	merged := Normalize(a)

	var dateFilters []DateFilter
	if dateFilter != nil && !isAllTime(dateFilter) {
		dateFilters = append(dateFilters, dateFilter)
	}
	for _, existing := range GlobalDateFilters(merged) {
		if dateFilter != nil && existing.DateDataSet().Matches(dateFilter.DateDataSet()) {
			continue
		}
		dateFilters = append(dateFilters, existing)
	}

	filters := lo.Filter(merged.Filters, func(f Filter, _ int) bool {
		return f != nil && !IsDateFilter(f)
	})
	for _, f := range attributeFilters {
		if f != nil {
			filters = append(filters, f)
		}
	}
	for _, f := range dateFilters {
		filters = append(filters, f)
	}

	merged.Filters = filters
	return merged
}
