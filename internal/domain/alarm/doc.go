// Package alarm contains core domain types for alarm thresholds.
//
// It defines Kind (a monitorable condition with a stable name and a numeric
// or signal category), Threshold (the resolved settings of one kind) and the
// closed catalog of kinds known to the binaries.
package alarm
