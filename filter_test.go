package afm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterClassification(t *testing.T) {
	displayForm := ObjQualifier{URI: "/gdc/md/project/obj/1"}
	dataSet := ObjQualifier{URI: "/gdc/md/project/obj/727"}

	tests := []struct {
		name        string
		filter      Filter
		isAttribute bool
		isDate      bool
	}{
		{
			name:        "positive attribute filter",
			filter:      PositiveAttributeFilter{DisplayForm: displayForm, In: []string{"a"}},
			isAttribute: true,
		},
		{
			name:        "negative attribute filter",
			filter:      NegativeAttributeFilter{DisplayForm: displayForm, NotIn: []string{"a"}},
			isAttribute: true,
		},
		{
			name:   "absolute date filter",
			filter: AbsoluteDateFilter{DataSet: dataSet, From: "2024-01-01", To: "2024-03-31"},
			isDate: true,
		},
		{
			name:   "relative date filter",
			filter: RelativeDateFilter{DataSet: dataSet, Granularity: GranularityMonth, From: -3, To: 0},
			isDate: true,
		},
		{
			name:   "nil filter",
			filter: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAttribute, IsAttributeFilter(tt.filter))
			assert.Equal(t, tt.isDate, IsDateFilter(tt.filter))
		})
	}
}

func TestDateDataSet(t *testing.T) {
	dataSet := ObjQualifier{Identifier: "date.dataset.closed"}

	var f DateFilter = AbsoluteDateFilter{DataSet: dataSet, From: "2024-01-01", To: "2024-12-31"}
	assert.Equal(t, dataSet, f.DateDataSet())

	f = RelativeDateFilter{DataSet: dataSet, Granularity: GranularityYear, From: -1, To: -1}
	assert.Equal(t, dataSet, f.DateDataSet())
}

func TestIsAllTime(t *testing.T) {
	dataSet := ObjQualifier{URI: "/gdc/md/project/obj/727"}

	tests := []struct {
		name     string
		filter   DateFilter
		expected bool
	}{
		{
			name:     "relative filter with the all time granularity",
			filter:   RelativeDateFilter{DataSet: dataSet, Granularity: AllTimeGranularity},
			expected: true,
		},
		{
			name:     "relative filter with a regular granularity",
			filter:   RelativeDateFilter{DataSet: dataSet, Granularity: GranularityMonth, From: -3, To: 0},
			expected: false,
		},
		{
			name:     "absolute filter",
			filter:   AbsoluteDateFilter{DataSet: dataSet, From: "2024-01-01", To: "2024-03-31"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAllTime(tt.filter))
		})
	}
}
