package afm

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// UpgradeLegacyJSON rewrites an AFM wire payload emitted by older producers
// that spelled the date filter dataset key "dataset" instead of "dataSet".
// The legacy key is moved in both the AFM-level filters and the filters of
// simple measures; when both spellings are present the current one wins and
// the legacy one is dropped. Payloads without legacy keys come back
// unchanged.
func UpgradeLegacyJSON(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid afm json")
	}
	out, err := upgradeFilterList(data, "filters")
	if err != nil {
		return nil, err
	}
	for i := range gjson.GetBytes(out, "measures").Array() {
		out, err = upgradeFilterList(out, fmt.Sprintf("measures.%d.definition.measure.filters", i))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func upgradeFilterList(data []byte, listPath string) ([]byte, error) {
	list := gjson.GetBytes(data, listPath)
	if !list.IsArray() {
		return data, nil
	}
	out := data
	for i, item := range list.Array() {
		envelope := dateFilterEnvelopeKey(item)
		if envelope == "" {
			continue
		}
		legacyRaw, hasCurrent := datasetKeys(item.Get(envelope))
		if legacyRaw == "" {
			continue
		}
		var err error
		if !hasCurrent {
			currentPath := fmt.Sprintf("%s.%d.%s.dataSet", listPath, i, envelope)
			out, err = sjson.SetRawBytes(out, currentPath, []byte(legacyRaw))
			if err != nil {
				return nil, errors.Wrapf(err, "set %s", currentPath)
			}
		}
		legacyPath := fmt.Sprintf("%s.%d.%s.dataset", listPath, i, envelope)
		out, err = sjson.DeleteBytes(out, legacyPath)
		if err != nil {
			return nil, errors.Wrapf(err, "delete %s", legacyPath)
		}
	}
	return out, nil
}

func dateFilterEnvelopeKey(item gjson.Result) string {
	var envelope string
	item.ForEach(func(key, _ gjson.Result) bool {
		if key.Str == "absoluteDateFilter" || key.Str == "relativeDateFilter" {
			envelope = key.Str
			return false
		}
		return true
	})
	return envelope
}

// datasetKeys inspects the exact keys of a date filter body and returns the
// raw legacy "dataset" value, if any, and whether "dataSet" is already
// present.
func datasetKeys(body gjson.Result) (legacyRaw string, hasCurrent bool) {
	body.ForEach(func(key, value gjson.Result) bool {
		switch key.Str {
		case "dataset":
			legacyRaw = value.Raw
		case "dataSet":
			hasCurrent = true
		}
		return true
	})
	return legacyRaw, hasCurrent
}
