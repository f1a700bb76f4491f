// Package register implements the register command: it resolves thresholds and
// creates or updates one CloudWatch metric alarm per configured kind, or prints
// the planned alarms in dry-run mode.
package register
