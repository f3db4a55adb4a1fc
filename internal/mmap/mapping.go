package mmap

import (
	"sync/atomic"
)

// Mapping represents a read-write memory mapping of fixed length.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	anon   bool
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// Map maps the first size bytes of the file behind fd read-write and shared:
// writes are visible to every other mapping of the same file, including
// mappings held by other processes.
//
// The caller keeps ownership of fd; the mapping stays valid after fd is closed.
func Map(fd uintptr, size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, unmapFunc, err := osMap(fd, size)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	return &Mapping{
		data:  data,
		unmap: unmapFunc,
	}, nil
}

// MapAnon creates a private read-write anonymous mapping of size bytes.
// The memory is zeroed and lives outside the Go heap.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, &Error{Op: "mmap anon", Err: err}
	}

	return &Mapping{
		data:  data,
		anon:  true,
		unmap: unmapFunc,
	}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		if err := m.unmap(m.data); err != nil {
			return &Error{Op: "munmap", Err: err}
		}
	}
	return nil
}

// Bytes returns the underlying byte slice.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// Anonymous reports whether the mapping has no backing file.
func (m *Mapping) Anonymous() bool {
	return m.anon
}

// Sync writes dirty pages back to the backing file and waits for completion.
// It is a no-op for anonymous mappings.
func (m *Mapping) Sync() error {
	return m.sync(false)
}

// SyncAsync schedules dirty pages for write-back without waiting.
func (m *Mapping) SyncAsync() error {
	return m.sync(true)
}

func (m *Mapping) sync(async bool) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.anon {
		return nil
	}
	if err := osSync(m.data, async); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return osAdvise(m.data, pattern)
}

// Lock pins the mapped pages in physical memory.
func (m *Mapping) Lock() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if err := osLock(m.data); err != nil {
		return &Error{Op: "mlock", Err: err}
	}
	return nil
}

// Unlock releases pages pinned by Lock.
func (m *Mapping) Unlock() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if err := osUnlock(m.data); err != nil {
		return &Error{Op: "munlock", Err: err}
	}
	return nil
}
