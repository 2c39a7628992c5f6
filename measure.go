package afm

// Measure is one computed value of an AFM. Its Definition decides the
// variant: a simple measure computed from a metadata item, or a derived
// period-over-period measure referencing another measure.
type Measure struct {
	LocalIdentifier string
	Definition      MeasureDefinition
	Alias           string
	Format          string
}

// MeasureDefinition is the sealed measure variant union.
type MeasureDefinition interface {
	measureDefinition()
}

// SimpleMeasureDefinition computes a measure from a metadata item, optionally
// aggregated, converted to a ratio, and restricted by measure-local filters.
type SimpleMeasureDefinition struct {
	Item         ObjQualifier
	Aggregation  string
	Filters      []Filter
	ComputeRatio bool
}

func (SimpleMeasureDefinition) measureDefinition() {}

// PopMeasureDefinition derives a measure from another measure of the same AFM
// compared over a shifted period. It carries no filters of its own; date
// restrictions come from the base measure and the global filters.
type PopMeasureDefinition struct {
	MeasureIdentifier string
	PopAttribute      ObjQualifier
}

func (PopMeasureDefinition) measureDefinition() {}

// IsPeriodOverPeriod reports whether the measure is the derived
// period-over-period variant.
func IsPeriodOverPeriod(m Measure) bool {
	_, ok := m.Definition.(PopMeasureDefinition)
	return ok
}
