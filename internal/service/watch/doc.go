// Package watch implements the watch command: it resolves thresholds from an
// env file and resolves them again every time the file changes.
package watch
