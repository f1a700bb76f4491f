// Package resolver turns flat configuration keys into per-kind alarm thresholds.
//
// Resolution layers three sources for every tunable (kind-scoped key, global
// key, built-in default), validates the base value of numeric kinds, clamps
// tunables below their minimum with a warning and stops at the first
// malformed key with an error naming it. Kinds without a base key are left
// out of the result.
package resolver
