// Package layout inspects Go types to decide whether their values may be
// overlaid on raw mapped bytes.
//
// A type qualifies when it is built only from booleans, fixed-size numbers,
// arrays and structs. Anything holding a reference (pointers, slices, maps,
// strings, interfaces, channels, functions) is rejected, because the
// referenced memory does not travel with the bytes.
package layout
