// Package config defines where configuration comes from.
//
// Lookup abstracts "read a key" over the process environment, in-memory maps
// and YAML env files, so the threshold resolver never touches process state
// directly. Config holds the YAML settings for metric alarm registration.
package config
