// Package runtime implements the transition engine: a Machine that owns a
// tape, a head position and a control state, and advances them one rule at
// a time against a shared rules.Table.
package runtime
