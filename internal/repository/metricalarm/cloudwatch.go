package metricalarm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/oshokin/alarm-thresholds/internal/config"
	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
)

// API covers the CloudWatch operations required for alarm registration.
type API interface {
	PutMetricAlarm(
		ctx context.Context,
		params *cloudwatch.PutMetricAlarmInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.PutMetricAlarmOutput, error)
}

// Treat-missing-data modes understood by CloudWatch.
const (
	treatMissingDataMissing   = "missing"
	treatMissingDataBreaching = "breaching"
)

// signalThreshold is the metric value at which a signal kind fires.
const signalThreshold = 1.0

var (
	// ErrDatapointsExceedEvaluation is returned when more breaching data points
	// are required than the evaluation window holds.
	ErrDatapointsExceedEvaluation = errors.New("data points to alarm exceed data points")
	// errNonFiniteThreshold is returned for NaN or infinite numeric values.
	errNonFiniteThreshold = errors.New("threshold must be a finite number")
	// errSettingsRequired is returned when the repository is built without settings.
	errSettingsRequired = errors.New("settings must be provided")
)

// Repository puts metric alarms through the CloudWatch API.
type Repository struct {
	// api is the CloudWatch client, real or fake.
	api API
	// settings hold the namespace, dimensions and actions shared by all alarms.
	settings *config.Config
}

// NewRepository creates a repository that registers alarms with the provided settings.
func NewRepository(api API, settings *config.Config) (*Repository, error) {
	if settings == nil {
		return nil, errSettingsRequired
	}

	return &Repository{
		api:      api,
		settings: settings,
	}, nil
}

// Put creates or updates the alarm of kind.
func (r *Repository) Put(ctx context.Context, kind alarm.Kind, threshold alarm.Threshold) error {
	input, err := Build(r.settings, kind, threshold)
	if err != nil {
		return err
	}

	if _, err = r.api.PutMetricAlarm(ctx, input); err != nil {
		return fmt.Errorf("put metric alarm %s: %w", aws.ToString(input.AlarmName), err)
	}

	return nil
}

// AlarmName returns the registered name of the alarm of kind.
func AlarmName(settings *config.Config, kind alarm.Kind) string {
	return settings.AlarmPrefix + kind.Name
}

// Build converts a resolved threshold into a PutMetricAlarm request.
func Build(settings *config.Config, kind alarm.Kind, threshold alarm.Threshold) (*cloudwatch.PutMetricAlarmInput, error) {
	if settings == nil {
		return nil, errSettingsRequired
	}

	name := AlarmName(settings, kind)

	if threshold.DataPointsToAlarm > threshold.DataPoints {
		return nil, fmt.Errorf("alarm %s: %w (%d > %d)",
			name, ErrDatapointsExceedEvaluation, threshold.DataPointsToAlarm, threshold.DataPoints)
	}

	input := &cloudwatch.PutMetricAlarmInput{
		AlarmName:         aws.String(name),
		AlarmDescription:  aws.String(description(kind, threshold)),
		ActionsEnabled:    aws.Bool(true),
		AlarmActions:      settings.AlarmActions,
		OKActions:         settings.OKActions,
		Namespace:         aws.String(settings.Namespace),
		MetricName:        aws.String(kind.Metric),
		Dimensions:        toDimensions(settings.Dimensions),
		Period:            aws.Int32(int32(threshold.PeriodMinutes) * 60),
		EvaluationPeriods: aws.Int32(int32(threshold.DataPoints)),
		DatapointsToAlarm: aws.Int32(int32(threshold.DataPointsToAlarm)),
	}

	if !kind.IsNumeric() {
		input.Statistic = cwtypes.StatisticMaximum
		input.ComparisonOperator = cwtypes.ComparisonOperatorGreaterThanOrEqualToThreshold
		input.Threshold = aws.Float64(signalThreshold)
		input.TreatMissingData = aws.String(treatMissingDataBreaching)

		return input, nil
	}

	value, err := threshold.Float()
	if err != nil {
		return nil, fmt.Errorf("alarm %s: parse threshold: %w", name, err)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("alarm %s: %w", name, errNonFiniteThreshold)
	}

	input.Statistic = cwtypes.StatisticAverage
	input.ComparisonOperator = comparison(kind.Bound)
	input.Threshold = aws.Float64(value)
	input.TreatMissingData = aws.String(treatMissingDataMissing)

	return input, nil
}

// comparison maps the firing side of a numeric kind to a CloudWatch operator.
func comparison(bound alarm.Bound) cwtypes.ComparisonOperator {
	if bound == alarm.BoundLower {
		return cwtypes.ComparisonOperatorLessThanThreshold
	}

	return cwtypes.ComparisonOperatorGreaterThanThreshold
}

// description explains the alarm in the console.
func description(kind alarm.Kind, threshold alarm.Threshold) string {
	return fmt.Sprintf("%s = %s, %d of %d periods of %d minute(s)",
		kind.Name,
		threshold.Value,
		threshold.DataPointsToAlarm,
		threshold.DataPoints,
		threshold.PeriodMinutes,
	)
}

// toDimensions converts settings dimensions into SDK dimensions sorted by name.
func toDimensions(dimensions map[string]string) []cwtypes.Dimension {
	if len(dimensions) == 0 {
		return nil
	}

	names := make([]string, 0, len(dimensions))
	for name := range dimensions {
		names = append(names, name)
	}

	sort.Strings(names)

	result := make([]cwtypes.Dimension, 0, len(names))
	for _, name := range names {
		result = append(result, cwtypes.Dimension{
			Name:  aws.String(name),
			Value: aws.String(dimensions[name]),
		})
	}

	return result
}
