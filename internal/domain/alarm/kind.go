package alarm

// Category tells how the base value of a kind is interpreted.
type Category uint8

const (
	// CategoryNumeric kinds carry a floating-point threshold.
	CategoryNumeric Category = iota
	// CategorySignal kinds carry an opaque value that is not validated numerically.
	CategorySignal
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryNumeric:
		return "numeric"
	case CategorySignal:
		return "signal"
	default:
		return "unknown"
	}
}

// Bound tells on which side of the threshold a numeric alarm fires.
type Bound uint8

const (
	// BoundUpper fires when the metric rises above the threshold.
	BoundUpper Bound = iota
	// BoundLower fires when the metric falls below the threshold.
	BoundLower
)

// Suffixes of the kind-scoped tunable keys.
const (
	PeriodMinutesSuffix     = "_PERIOD_MINUTES"
	DataPointsSuffix        = "_DATA_POINTS"
	DataPointsToAlarmSuffix = "_DATA_POINTS_TO_ALARM"
)

// Kind identifies one monitorable condition.
type Kind struct {
	// Name is the stable identifier; it is also the base configuration key.
	Name string
	// Category defines how the base value is validated.
	Category Category
	// Bound is the firing side for numeric kinds.
	Bound Bound
	// Metric is the metric the alarm watches once registered.
	Metric string
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	return k.Name
}

// MarshalText lets kinds act as keys in encoded maps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Name), nil
}

// IsNumeric reports whether the base value must parse as a float.
func (k Kind) IsNumeric() bool {
	return k.Category == CategoryNumeric
}

// PeriodMinutesKey returns the kind-scoped period key.
func (k Kind) PeriodMinutesKey() string {
	return k.Name + PeriodMinutesSuffix
}

// DataPointsKey returns the kind-scoped data points key.
func (k Kind) DataPointsKey() string {
	return k.Name + DataPointsSuffix
}

// DataPointsToAlarmKey returns the kind-scoped data points to alarm key.
func (k Kind) DataPointsToAlarmKey() string {
	return k.Name + DataPointsToAlarmSuffix
}
