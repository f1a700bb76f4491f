package resolver

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/oshokin/alarm-thresholds/internal/config"
	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
	"github.com/oshokin/alarm-thresholds/internal/logger"
)

// Global tunable keys.
const (
	PeriodMinutesKey     = "PERIOD_MINUTES"
	DataPointsKey        = "DATA_POINTS"
	DataPointsToAlarmKey = "DATA_POINTS_TO_ALARM"
)

// Built-in defaults and minimums of the tunables.
const (
	DefaultPeriodMinutes = 1
	MinPeriodMinutes     = 1

	DefaultDataPoints = 5
	MinDataPoints     = 1

	DefaultDataPointsToAlarm = 3
	MinDataPointsToAlarm     = 1
)

// Defaults holds the global fallback of each tunable.
type Defaults struct {
	PeriodMinutes     uint16
	DataPoints        uint16
	DataPointsToAlarm uint16
}

// Resolve builds the thresholds of every kind whose base key is present.
// Kinds are visited once in the given order; the first malformed key aborts
// resolution and no partial result is returned.
func Resolve(ctx context.Context, lookup config.Lookup, kinds []alarm.Kind) (alarm.Thresholds, error) {
	defaults, err := LoadDefaults(lookup)
	if err != nil {
		return nil, err
	}

	thresholds := make(alarm.Thresholds, len(kinds))

	for _, kind := range kinds {
		threshold, ok, err := resolveKind(ctx, lookup, kind, defaults)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		thresholds[kind] = threshold
	}

	logger.DebugKV(ctx, "Resolved thresholds", "count", len(thresholds), "thresholds", thresholds)

	return thresholds, nil
}

// LoadDefaults reads the global tunables, falling back to the built-in defaults.
// Global values are not clamped here: clamping happens per kind.
func LoadDefaults(lookup config.Lookup) (Defaults, error) {
	periodMinutes, err := lookupUint16(lookup, PeriodMinutesKey, DefaultPeriodMinutes)
	if err != nil {
		return Defaults{}, err
	}

	dataPoints, err := lookupUint16(lookup, DataPointsKey, DefaultDataPoints)
	if err != nil {
		return Defaults{}, err
	}

	dataPointsToAlarm, err := lookupUint16(lookup, DataPointsToAlarmKey, DefaultDataPointsToAlarm)
	if err != nil {
		return Defaults{}, err
	}

	return Defaults{
		PeriodMinutes:     periodMinutes,
		DataPoints:        dataPoints,
		DataPointsToAlarm: dataPointsToAlarm,
	}, nil
}

// resolveKind resolves a single kind. It reports false when the base key is absent.
func resolveKind(
	ctx context.Context,
	lookup config.Lookup,
	kind alarm.Kind,
	defaults Defaults,
) (alarm.Threshold, bool, error) {
	value, ok := lookup(kind.Name)
	if !ok {
		return alarm.Threshold{}, false, nil
	}

	if kind.IsNumeric() {
		if _, err := alarm.ParseValue(value); err != nil {
			return alarm.Threshold{}, false, &ParseError{Key: kind.Name, Kind: ErrInvalidFloat, Err: err}
		}
	}

	periodMinutes, err := resolveTunable(ctx, lookup, kind.PeriodMinutesKey(), defaults.PeriodMinutes, MinPeriodMinutes)
	if err != nil {
		return alarm.Threshold{}, false, err
	}

	dataPoints, err := resolveTunable(ctx, lookup, kind.DataPointsKey(), defaults.DataPoints, MinDataPoints)
	if err != nil {
		return alarm.Threshold{}, false, err
	}

	dataPointsToAlarm, err := resolveTunable(
		ctx,
		lookup,
		kind.DataPointsToAlarmKey(),
		defaults.DataPointsToAlarm,
		MinDataPointsToAlarm,
	)
	if err != nil {
		return alarm.Threshold{}, false, err
	}

	return alarm.Threshold{
		Value:             value,
		PeriodMinutes:     periodMinutes,
		DataPoints:        dataPoints,
		DataPointsToAlarm: dataPointsToAlarm,
	}, true, nil
}

// resolveTunable reads a kind-scoped tunable and clamps it to minimum.
// The warning names the scoped key even when the value came from the global default.
func resolveTunable(ctx context.Context, lookup config.Lookup, key string, fallback, minimum uint16) (uint16, error) {
	value, err := lookupUint16(lookup, key, fallback)
	if err != nil {
		return 0, err
	}

	if value < minimum {
		logger.WarnKV(ctx, "Tunable below minimum, clamping", "key", key, "value", value, "minimum", minimum)

		return minimum, nil
	}

	return value, nil
}

// lookupUint16 parses key as an unsigned 16-bit integer or returns fallback when absent.
func lookupUint16(lookup config.Lookup, key string, fallback uint16) (uint16, error) {
	raw, ok := lookup(key)
	if !ok {
		return fallback, nil
	}

	value, err := parseUint16(raw)
	if err != nil {
		return 0, &ParseError{Key: key, Kind: ErrInvalidInteger, Err: err}
	}

	return value, nil
}

// parseUint16 parses decimal digits with at most one leading plus sign.
func parseUint16(raw string) (uint16, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(raw, "+"), 10, 16)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			numErr.Num = raw
		}

		return 0, err
	}

	return uint16(value), nil
}
