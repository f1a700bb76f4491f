// Package metricalarm registers resolved thresholds as CloudWatch metric alarms.
//
// Build converts one kind and its threshold into a PutMetricAlarm request;
// Repository sends it through a narrow API interface so tests can swap the
// SDK client for a fake.
package metricalarm
