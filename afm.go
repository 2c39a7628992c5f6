// Package afm models the Analytical Form Model (AFM), a declarative
// description of an analytical query: which attributes to slice by, which
// measures to compute, and which filters restrict the data. The package
// normalizes partial models, classifies and merges filters, and answers
// structural questions; executing the query is the caller's concern.
package afm

// AFM is the Analytical Form Model. Every collection is optional on input;
// Normalize substitutes empty ones. Operations in this package treat AFM as
// an immutable value and return a new AFM instead of mutating their input.
type AFM struct {
	Attributes   []Attribute
	Measures     []Measure
	Filters      []Filter
	NativeTotals []NativeTotal
}

// Attribute slices the result by the values of one display form.
type Attribute struct {
	LocalIdentifier string       `json:"localIdentifier"`
	DisplayForm     ObjQualifier `json:"displayForm"`
	Alias           string       `json:"alias,omitempty"`
}

// NativeTotal requests a database-computed total of one measure grouped by
// the named attributes.
type NativeTotal struct {
	MeasureIdentifier    string   `json:"measureIdentifier"`
	AttributeIdentifiers []string `json:"attributeIdentifiers"`
}

// Normalize returns a copy of a with every absent collection replaced by an
// empty one, so callers can range and append without nil checks. Element
// contents are not validated. Normalizing an already normalized AFM returns
// an equal value.
func Normalize(a AFM) AFM {
	return AFM{
		Attributes:   emptyIfNil(a.Attributes),
		Measures:     emptyIfNil(a.Measures),
		Filters:      emptyIfNil(a.Filters),
		NativeTotals: emptyIfNil(a.NativeTotals),
	}
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
