// Package testutil provides testing utilities for mmapcell.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible random records.
//
// # Random Records
//
//	rng := testutil.NewRNG(seed)
//	rec := testutil.Record[Header](rng)   // every byte random
//	raw := testutil.RecordBytes(&rec)     // view of rec as []byte
package testutil
