package afm

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ensure that the order of keys in emitted JSON is consistent
var jsoniterAFM = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Marshal encodes the AFM in its JSON wire form. Union variants are wrapped
// in single-key envelopes naming the variant, e.g.
// {"relativeDateFilter":{...}} or {"popMeasure":{...}}.
func Marshal(a AFM) ([]byte, error) {
	data, err := jsoniterAFM.Marshal(a)
	if err != nil {
		return nil, errors.Wrap(err, "marshal afm")
	}
	return data, nil
}

// Unmarshal decodes an AFM from its JSON wire form.
func Unmarshal(data []byte) (AFM, error) {
	var a AFM
	if err := jsoniterAFM.Unmarshal(data, &a); err != nil {
		return AFM{}, errors.Wrap(err, "unmarshal afm")
	}
	return a, nil
}

type afmWire struct {
	Attributes   []Attribute   `json:"attributes,omitempty"`
	Measures     []Measure     `json:"measures,omitempty"`
	Filters      filterList    `json:"filters,omitempty"`
	NativeTotals []NativeTotal `json:"nativeTotals,omitempty"`
}

func (a AFM) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(afmWire{
		Attributes:   a.Attributes,
		Measures:     a.Measures,
		Filters:      filterList(a.Filters),
		NativeTotals: a.NativeTotals,
	})
}

func (a *AFM) UnmarshalJSON(data []byte) error {
	var wire afmWire
	if err := jsoniterAFM.Unmarshal(data, &wire); err != nil {
		return err
	}
	*a = AFM{
		Attributes:   wire.Attributes,
		Measures:     wire.Measures,
		Filters:      []Filter(wire.Filters),
		NativeTotals: wire.NativeTotals,
	}
	return nil
}

// filterList decodes a JSON array of filter envelopes into the Filter union.
// Encoding needs no help, the variants marshal themselves.
type filterList []Filter

func (l *filterList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raws []jsoniter.RawMessage
	if err := jsoniterAFM.Unmarshal(data, &raws); err != nil {
		return err
	}
	filters := make([]Filter, 0, len(raws))
	for i, raw := range raws {
		f, err := UnmarshalFilter(raw)
		if err != nil {
			return errors.Wrapf(err, "filter %d", i)
		}
		filters = append(filters, f)
	}
	*l = filters
	return nil
}

type positiveAttributeFilterBody struct {
	DisplayForm ObjQualifier `json:"displayForm"`
	In          []string     `json:"in"`
}

type negativeAttributeFilterBody struct {
	DisplayForm ObjQualifier `json:"displayForm"`
	NotIn       []string     `json:"notIn"`
}

type absoluteDateFilterBody struct {
	DataSet ObjQualifier `json:"dataSet"`
	From    string       `json:"from"`
	To      string       `json:"to"`
}

type relativeDateFilterBody struct {
	DataSet     ObjQualifier `json:"dataSet"`
	Granularity Granularity  `json:"granularity"`
	From        int          `json:"from"`
	To          int          `json:"to"`
}

type filterEnvelope struct {
	PositiveAttributeFilter *positiveAttributeFilterBody `json:"positiveAttributeFilter,omitempty"`
	NegativeAttributeFilter *negativeAttributeFilterBody `json:"negativeAttributeFilter,omitempty"`
	AbsoluteDateFilter      *absoluteDateFilterBody      `json:"absoluteDateFilter,omitempty"`
	RelativeDateFilter      *relativeDateFilterBody      `json:"relativeDateFilter,omitempty"`
}

func (f PositiveAttributeFilter) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(filterEnvelope{
		PositiveAttributeFilter: &positiveAttributeFilterBody{
			DisplayForm: f.DisplayForm,
			In:          emptyIfNil(f.In),
		},
	})
}

func (f NegativeAttributeFilter) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(filterEnvelope{
		NegativeAttributeFilter: &negativeAttributeFilterBody{
			DisplayForm: f.DisplayForm,
			NotIn:       emptyIfNil(f.NotIn),
		},
	})
}

func (f AbsoluteDateFilter) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(filterEnvelope{
		AbsoluteDateFilter: &absoluteDateFilterBody{
			DataSet: f.DataSet,
			From:    f.From,
			To:      f.To,
		},
	})
}

func (f RelativeDateFilter) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(filterEnvelope{
		RelativeDateFilter: &relativeDateFilterBody{
			DataSet:     f.DataSet,
			Granularity: f.Granularity,
			From:        f.From,
			To:          f.To,
		},
	})
}

// UnmarshalFilter decodes one filter item from its envelope form.
func UnmarshalFilter(data []byte) (Filter, error) {
	var envelope filterEnvelope
	if err := jsoniterAFM.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "unmarshal filter envelope")
	}
	switch {
	case envelope.PositiveAttributeFilter != nil:
		body := envelope.PositiveAttributeFilter
		return PositiveAttributeFilter{DisplayForm: body.DisplayForm, In: body.In}, nil
	case envelope.NegativeAttributeFilter != nil:
		body := envelope.NegativeAttributeFilter
		return NegativeAttributeFilter{DisplayForm: body.DisplayForm, NotIn: body.NotIn}, nil
	case envelope.AbsoluteDateFilter != nil:
		body := envelope.AbsoluteDateFilter
		return AbsoluteDateFilter{DataSet: body.DataSet, From: body.From, To: body.To}, nil
	case envelope.RelativeDateFilter != nil:
		body := envelope.RelativeDateFilter
		return RelativeDateFilter{DataSet: body.DataSet, Granularity: body.Granularity, From: body.From, To: body.To}, nil
	default:
		return nil, errors.New("filter matches no known variant")
	}
}

type simpleMeasureBody struct {
	Item         ObjQualifier `json:"item"`
	Aggregation  string       `json:"aggregation,omitempty"`
	Filters      filterList   `json:"filters,omitempty"`
	ComputeRatio bool         `json:"computeRatio,omitempty"`
}

type popMeasureBody struct {
	MeasureIdentifier string       `json:"measureIdentifier"`
	PopAttribute      ObjQualifier `json:"popAttribute"`
}

type measureDefinitionEnvelope struct {
	Measure    *simpleMeasureBody `json:"measure,omitempty"`
	PopMeasure *popMeasureBody    `json:"popMeasure,omitempty"`
}

func (d SimpleMeasureDefinition) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(measureDefinitionEnvelope{
		Measure: &simpleMeasureBody{
			Item:         d.Item,
			Aggregation:  d.Aggregation,
			Filters:      filterList(d.Filters),
			ComputeRatio: d.ComputeRatio,
		},
	})
}

func (d PopMeasureDefinition) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(measureDefinitionEnvelope{
		PopMeasure: &popMeasureBody{
			MeasureIdentifier: d.MeasureIdentifier,
			PopAttribute:      d.PopAttribute,
		},
	})
}

// UnmarshalMeasureDefinition decodes one measure definition from its
// envelope form.
func UnmarshalMeasureDefinition(data []byte) (MeasureDefinition, error) {
	var envelope measureDefinitionEnvelope
	if err := jsoniterAFM.Unmarshal(data, &envelope); err != nil {
		return nil, errors.Wrap(err, "unmarshal measure definition envelope")
	}
	switch {
	case envelope.Measure != nil:
		body := envelope.Measure
		return SimpleMeasureDefinition{
			Item:         body.Item,
			Aggregation:  body.Aggregation,
			Filters:      []Filter(body.Filters),
			ComputeRatio: body.ComputeRatio,
		}, nil
	case envelope.PopMeasure != nil:
		body := envelope.PopMeasure
		return PopMeasureDefinition{
			MeasureIdentifier: body.MeasureIdentifier,
			PopAttribute:      body.PopAttribute,
		}, nil
	default:
		return nil, errors.New("measure definition matches no known variant")
	}
}

type measureOut struct {
	LocalIdentifier string            `json:"localIdentifier"`
	Definition      MeasureDefinition `json:"definition"`
	Alias           string            `json:"alias,omitempty"`
	Format          string            `json:"format,omitempty"`
}

func (m Measure) MarshalJSON() ([]byte, error) {
	return jsoniterAFM.Marshal(measureOut(m))
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	var wire struct {
		LocalIdentifier string              `json:"localIdentifier"`
		Definition      jsoniter.RawMessage `json:"definition"`
		Alias           string              `json:"alias"`
		Format          string              `json:"format"`
	}
	if err := jsoniterAFM.Unmarshal(data, &wire); err != nil {
		return err
	}
	*m = Measure{
		LocalIdentifier: wire.LocalIdentifier,
		Alias:           wire.Alias,
		Format:          wire.Format,
	}
	if len(wire.Definition) == 0 || string(wire.Definition) == "null" {
		return nil
	}
	definition, err := UnmarshalMeasureDefinition(wire.Definition)
	if err != nil {
		return errors.Wrapf(err, "measure %q", wire.LocalIdentifier)
	}
	m.Definition = definition
	return nil
}
