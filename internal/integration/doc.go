// Package integration holds end-to-end tests that drive the services through
// real files and the process environment.
package integration
