package afm

// Granularity is the time unit of a relative date filter.
type Granularity string

const (
	GranularityDate    Granularity = "GDC.time.date"
	GranularityWeek    Granularity = "GDC.time.week"
	GranularityMonth   Granularity = "GDC.time.month"
	GranularityQuarter Granularity = "GDC.time.quarter"
	GranularityYear    Granularity = "GDC.time.year"

	// AllTimeGranularity is the reserved sentinel meaning "no date
	// restriction". A relative date filter carrying it clears the restriction
	// for its dataset instead of adding one.
	AllTimeGranularity Granularity = "ALL_TIME_GRANULARITY"
)

// Filter is one filter item of an AFM, either an attribute filter or a date
// filter. The union is sealed: only the four variants in this package
// implement it, so a type switch over them is exhaustive.
type Filter interface {
	filterItem()
}

// AttributeFilter narrows Filter to the positive and negative attribute
// variants.
type AttributeFilter interface {
	Filter
	attributeFilter()
}

// DateFilter narrows Filter to the absolute and relative date variants.
// Every date filter restricts exactly one date dataset.
type DateFilter interface {
	Filter
	DateDataSet() ObjQualifier
}

// PositiveAttributeFilter keeps rows whose attribute value is one of In.
type PositiveAttributeFilter struct {
	DisplayForm ObjQualifier
	In          []string
}

func (PositiveAttributeFilter) filterItem()      {}
func (PositiveAttributeFilter) attributeFilter() {}

// NegativeAttributeFilter drops rows whose attribute value is one of NotIn.
type NegativeAttributeFilter struct {
	DisplayForm ObjQualifier
	NotIn       []string
}

func (NegativeAttributeFilter) filterItem()      {}
func (NegativeAttributeFilter) attributeFilter() {}

// AbsoluteDateFilter restricts a date dataset to a closed calendar range.
// From and To are dates in "2006-01-02" form, both inclusive.
type AbsoluteDateFilter struct {
	DataSet ObjQualifier
	From    string
	To      string
}

func (AbsoluteDateFilter) filterItem() {}

func (f AbsoluteDateFilter) DateDataSet() ObjQualifier { return f.DataSet }

// RelativeDateFilter restricts a date dataset to a period window relative to
// now. Offsets count whole periods: granularity month with From -3 and To 0
// means the last three months plus the current one.
type RelativeDateFilter struct {
	DataSet     ObjQualifier
	Granularity Granularity
	From        int
	To          int
}

func (RelativeDateFilter) filterItem() {}

func (f RelativeDateFilter) DateDataSet() ObjQualifier { return f.DataSet }

// IsAttributeFilter reports whether f is a positive or negative attribute
// filter. Nil reports false.
func IsAttributeFilter(f Filter) bool {
	_, ok := f.(AttributeFilter)
	return ok
}

// IsDateFilter reports whether f is an absolute or relative date filter.
// Nil reports false.
func IsDateFilter(f Filter) bool {
	_, ok := f.(DateFilter)
	return ok
}

// isAllTime reports whether f asks to clear the date restriction for its
// dataset rather than impose one.
func isAllTime(f DateFilter) bool {
	relative, ok := f.(RelativeDateFilter)
	return ok && relative.Granularity == AllTimeGranularity
}
