// Package mmap provides fixed-length read-write memory mappings.
//
// # Overview
//
// A [Mapping] is either backed by a file ([Map], shared with every other
// mapping of that file) or anonymous ([MapAnon], private to the process).
// The length is fixed when the mapping is created; there is no remap.
//
// # Usage
//
//	m, err := mmap.Map(f.Fd(), size)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()   // direct access to the file contents
//	err = m.Sync()      // msync(MS_SYNC)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2), msync(2), madvise(2), mlock(2)
//   - Windows: CreateFileMapping/MapViewOfFile, FlushViewOfFile,
//     VirtualAlloc for anonymous memory (madvise is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must ensure
// no goroutines access Bytes() after Close() returns.
package mmap
