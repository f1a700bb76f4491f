// Package resolve implements the resolve command: it reads threshold keys from
// the environment (optionally layered with an env file), resolves them over the
// alarm catalog and renders the result.
package resolve
