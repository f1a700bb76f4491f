// Package render writes resolved thresholds in human and machine readable formats.
package render
