// Package mmapcell maps a file, or anonymous memory, to exactly the size of a
// fixed-layout Go type and hands out that memory as a *T.
//
// It replaces the usual open / truncate / mmap / unsafe cast sequence with a
// single generic constructor while keeping the invariants the cast depends
// on: the mapping is always unsafe.Sizeof(T) bytes, its address is aligned
// for T, and the pointer is valid until Close.
//
// # Quick Start
//
//	type Counters struct {
//	    Requests uint64
//	    Errors   uint64
//	}
//
//	cell, err := mmapcell.NewNamed[Counters]("counters.bin")
//	if err != nil { ... }
//	defer cell.Close()
//
//	cell.GetMut().Requests++   // writes go straight to the file's pages
//	snapshot := cell.Get()     // copy of the current record
//	err = cell.Flush()         // durable against OS crash
//
// # Caller Obligations
//
// The constructors are the unsafe boundary. Calling one attests that the
// mapped bytes form a valid T:
//
//   - A new file or anonymous region is all zeros, so the zero T must be
//     valid, or its fields must be set right after construction.
//   - An existing file must have been written with the same layout of T.
//     The file holds nothing but the raw bytes of T: there is no header,
//     magic number or version tag.
//
// T is checked by reflection. Types embedding references (pointers, slices,
// maps, strings, interfaces, channels, functions) are rejected.
// [WithStrictLayout] also rejects int, uint, uintptr and implicit padding,
// which makes the layout identical across architectures.
//
// # Durability and Visibility
//
// Named cells use a shared mapping. A write through GetMut is visible to
// every other mapping of the file at once, in this process or another.
// Flush only matters for durability against crashes. Close flushes by
// default; see [WithFlushOnClose].
//
// # Concurrency
//
// The package provides no synchronization for the record. Goroutines or
// processes sharing a cell or a file must coordinate access themselves.
//
// # Platform Notes
//
// Extending a file zero-fills on POSIX systems (ftruncate) and on Windows
// (SetEndOfFile). Anonymous cells are private to the process; whether a
// forked child inherits them is platform-dependent.
package mmapcell
