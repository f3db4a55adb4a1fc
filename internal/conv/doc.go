// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when converting between file sizes (int64), type sizes (uintptr) and
// mapping lengths (int).
//
// For conversions that are provably safe by domain constraints, use direct
// type casts instead to avoid overhead.
package conv
