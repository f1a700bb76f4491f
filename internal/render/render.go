package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
)

// Format selects the output encoding.
type Format string

const (
	// FormatYAML renders a mapping of kind names to thresholds.
	FormatYAML Format = "yaml"
	// FormatJSON renders the same mapping as JSON.
	FormatJSON Format = "json"
	// FormatTable renders an aligned plain-text table.
	FormatTable Format = "table"
)

// errUnknownFormat is returned for unsupported output formats.
var errUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatTable}
}

// ParseFormat converts user input into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if format == known {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w %q", errUnknownFormat, s)
}

// Write renders thresholds to w. YAML and table output follow catalog order;
// JSON objects are emitted with keys sorted by name, as protojson does for Struct.
func Write(w io.Writer, format Format, thresholds alarm.Thresholds) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, thresholds)
	case FormatJSON:
		return writeJSON(w, thresholds)
	case FormatTable:
		return writeTable(w, thresholds)
	default:
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}

// writeYAML encodes thresholds as an ordered YAML mapping.
func writeYAML(w io.Writer, thresholds alarm.Thresholds) error {
	document := &yaml.Node{
		Kind: yaml.MappingNode,
	}

	for _, kind := range thresholds.Kinds() {
		var value yaml.Node
		if err := value.Encode(thresholds[kind]); err != nil {
			return fmt.Errorf("encode %s: %w", kind, err)
		}

		document.Content = append(document.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kind.Name},
			&value,
		)
	}

	// An empty mapping renders as "{}".
	if len(document.Content) == 0 {
		document.Style = yaml.FlowStyle
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}

	return encoder.Close()
}

// writeJSON encodes thresholds through structpb so the output matches protojson conventions.
// Kind names come out sorted alphabetically rather than in catalog order.
func writeJSON(w io.Writer, thresholds alarm.Thresholds) error {
	fields := make(map[string]any, len(thresholds))
	for kind, threshold := range thresholds {
		fields[kind.Name] = map[string]any{
			"value":                threshold.Value,
			"period_minutes":       int(threshold.PeriodMinutes),
			"data_points":          int(threshold.DataPoints),
			"data_points_to_alarm": int(threshold.DataPointsToAlarm),
		}
	}

	document, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("build json document: %w", err)
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline:       true,
		Indent:          "  ",
		EmitUnpopulated: true,
	}

	data, err := marshalOptions.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}

// writeTable renders one row per kind.
func writeTable(w io.Writer, thresholds alarm.Thresholds) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "KIND\tVALUE\tPERIOD\tDATA POINTS\tTO ALARM")

	for _, kind := range thresholds.Kinds() {
		threshold := thresholds[kind]
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%dm\t%d\t%d\n",
			kind.Name,
			threshold.Value,
			threshold.PeriodMinutes,
			threshold.DataPoints,
			threshold.DataPointsToAlarm,
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
