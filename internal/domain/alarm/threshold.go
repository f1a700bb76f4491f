package alarm

import (
	"sort"
)

// Threshold is the resolved configuration of one alarm kind.
type Threshold struct {
	// Value is the raw configured value. Numeric kinds are validated to parse as a float.
	Value string `json:"value" yaml:"value"`
	// PeriodMinutes is the evaluation period length, at least 1.
	PeriodMinutes uint16 `json:"period_minutes" yaml:"period_minutes"`
	// DataPoints is the number of periods in the evaluation window, at least 1.
	DataPoints uint16 `json:"data_points" yaml:"data_points"`
	// DataPointsToAlarm is how many breaching periods trigger the alarm, at least 1.
	DataPointsToAlarm uint16 `json:"data_points_to_alarm" yaml:"data_points_to_alarm"`
}

// Float re-derives the numeric value of the threshold with ParseValue.
func (t Threshold) Float() (float64, error) {
	return ParseValue(t.Value)
}

// Thresholds maps alarm kinds to their resolved configuration.
type Thresholds map[Kind]Threshold

// Kinds returns the kinds present in the mapping, catalog kinds first in
// catalog order, then unknown kinds sorted by name.
func (t Thresholds) Kinds() []Kind {
	kinds := make([]Kind, 0, len(t))
	for kind := range t {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool {
		pi, pj := position(kinds[i]), position(kinds[j])
		switch {
		case pi >= 0 && pj >= 0:
			return pi < pj
		case pi >= 0:
			return true
		case pj >= 0:
			return false
		default:
			return kinds[i].Name < kinds[j].Name
		}
	})

	return kinds
}

// Names returns the names of the present kinds in the order of Kinds.
func (t Thresholds) Names() []string {
	kinds := t.Kinds()

	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.Name)
	}

	return names
}

// ByName returns a copy of the mapping keyed by kind name.
func (t Thresholds) ByName() map[string]Threshold {
	result := make(map[string]Threshold, len(t))
	for kind, threshold := range t {
		result[kind.Name] = threshold
	}

	return result
}
