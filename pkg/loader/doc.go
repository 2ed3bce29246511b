// Package loader turns rule files and program documents into domain values.
//
// Rule files use one "state,symbol,write,move,next" row per line. Program
// documents (YAML or JSON) add a name, an initial state and a tape. Loading
// is all-or-nothing: every malformed row is reported and no partial rule
// list is returned.
package loader
