package register

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-thresholds/internal/config"
	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
	"github.com/oshokin/alarm-thresholds/internal/logger"
	"github.com/oshokin/alarm-thresholds/internal/repository/metricalarm"
	"github.com/oshokin/alarm-thresholds/internal/service/resolve"
)

// Options controls the register command.
type Options struct {
	// ConfigPath specifies the path to the registration settings YAML file.
	ConfigPath string
	// EnvFile is an optional YAML file whose keys take precedence over the environment.
	EnvFile string
	// DryRun prints the planned alarms instead of registering them.
	DryRun bool
	// Output receives the dry-run plan, stdout by default.
	Output io.Writer
	// API overrides the CloudWatch client built from the default credential chain.
	API metricalarm.API
}

// planEntry is the dry-run view of one PutMetricAlarm request.
type planEntry struct {
	AlarmName          string            `yaml:"alarm_name"`
	Namespace          string            `yaml:"namespace"`
	MetricName         string            `yaml:"metric_name"`
	Dimensions         map[string]string `yaml:"dimensions,omitempty"`
	Statistic          string            `yaml:"statistic"`
	ComparisonOperator string            `yaml:"comparison_operator"`
	Threshold          float64           `yaml:"threshold"`
	PeriodSeconds      int32             `yaml:"period_seconds"`
	EvaluationPeriods  int32             `yaml:"evaluation_periods"`
	DatapointsToAlarm  int32             `yaml:"datapoints_to_alarm"`
	TreatMissingData   string            `yaml:"treat_missing_data"`
}

// errNoThresholds is returned when there is nothing to register.
var errNoThresholds = errors.New("no alarm thresholds configured")

// Run resolves thresholds and registers one metric alarm per present kind, in catalog order.
// Registration stops at the first failed call.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "register")

	// Load settings from configuration file.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	thresholds, err := resolve.Thresholds(ctx, opts.EnvFile, nil)
	if err != nil {
		return err
	}

	if len(thresholds) == 0 {
		return errNoThresholds
	}

	if opts.DryRun {
		output := opts.Output
		if output == nil {
			output = os.Stdout
		}

		return writePlan(output, settings, thresholds)
	}

	api := opts.API
	if api == nil {
		if api, err = newCloudWatchClient(ctx, settings); err != nil {
			return err
		}
	}

	repo, err := metricalarm.NewRepository(api, settings)
	if err != nil {
		return err
	}

	for _, kind := range thresholds.Kinds() {
		if err = put(ctx, repo, settings, kind, thresholds[kind]); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Registered metric alarm", "alarm", metricalarm.AlarmName(settings, kind), "kind", kind.Name)
	}

	logger.InfoKV(ctx, "Registration completed", "count", len(thresholds))

	return nil
}

// put registers one alarm with the per-call timeout from the settings.
func put(
	ctx context.Context,
	repo *metricalarm.Repository,
	settings *config.Config,
	kind alarm.Kind,
	threshold alarm.Threshold,
) error {
	callCtx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	return repo.Put(callCtx, kind, threshold)
}

// writePlan renders the requests that would be sent, validating every one of them.
func writePlan(w io.Writer, settings *config.Config, thresholds alarm.Thresholds) error {
	plan := make([]planEntry, 0, len(thresholds))

	for _, kind := range thresholds.Kinds() {
		input, err := metricalarm.Build(settings, kind, thresholds[kind])
		if err != nil {
			return err
		}

		plan = append(plan, toPlanEntry(input))
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	return encoder.Close()
}

// toPlanEntry flattens the SDK request for display.
func toPlanEntry(input *cloudwatch.PutMetricAlarmInput) planEntry {
	var dimensions map[string]string
	if len(input.Dimensions) > 0 {
		dimensions = make(map[string]string, len(input.Dimensions))
		for _, dimension := range input.Dimensions {
			dimensions[aws.ToString(dimension.Name)] = aws.ToString(dimension.Value)
		}
	}

	return planEntry{
		AlarmName:          aws.ToString(input.AlarmName),
		Namespace:          aws.ToString(input.Namespace),
		MetricName:         aws.ToString(input.MetricName),
		Dimensions:         dimensions,
		Statistic:          string(input.Statistic),
		ComparisonOperator: string(input.ComparisonOperator),
		Threshold:          aws.ToFloat64(input.Threshold),
		PeriodSeconds:      aws.ToInt32(input.Period),
		EvaluationPeriods:  aws.ToInt32(input.EvaluationPeriods),
		DatapointsToAlarm:  aws.ToInt32(input.DatapointsToAlarm),
		TreatMissingData:   aws.ToString(input.TreatMissingData),
	}
}

// newCloudWatchClient builds the production client from the default credential chain.
func newCloudWatchClient(ctx context.Context, settings *config.Config) (*cloudwatch.Client, error) {
	var loadOptions []func(*awsconfig.LoadOptions) error
	if settings.Region != "" {
		loadOptions = append(loadOptions, awsconfig.WithRegion(settings.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return cloudwatch.NewFromConfig(cfg), nil
}
