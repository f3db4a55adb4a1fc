package mmapcell

import (
	"fmt"
	"os"
	"reflect"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/hupe1980/mmapcell/internal/conv"
	"github.com/hupe1980/mmapcell/internal/fs"
	"github.com/hupe1980/mmapcell/internal/layout"
	"github.com/hupe1980/mmapcell/internal/mmap"
)

// AccessPattern provides hints to the kernel about how the record will be accessed.
type AccessPattern = mmap.AccessPattern

const (
	AccessDefault    = mmap.AccessDefault
	AccessSequential = mmap.AccessSequential
	AccessRandom     = mmap.AccessRandom
	AccessWillNeed   = mmap.AccessWillNeed
	AccessDontNeed   = mmap.AccessDontNeed
)

// noCopy may be embedded into structs which must not be copied after first use.
// See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Cell is a value of type T that lives in a memory mapping of exactly
// unsafe.Sizeof(T) bytes.
//
// A Cell exclusively owns its mapping and backing file. Always use it through
// the pointer returned by a constructor and release it with Close.
type Cell[T any] struct {
	noCopy noCopy

	m            *mmap.Mapping
	file         fs.File // nil for anonymous cells
	path         string
	ptr          *T
	logger       *Logger
	metrics      MetricsCollector
	flushOnClose bool
	closed       atomic.Bool
}

type record struct {
	name  string
	size  uintptr
	align uintptr
	len   int
}

func (r record) layoutError(err error) *LayoutError {
	return &LayoutError{Type: r.name, Size: r.size, Align: r.align, Err: err}
}

func inspect[T any](strict bool) (record, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	r := record{
		name:  typ.String(),
		size:  typ.Size(),
		align: uintptr(typ.Align()),
	}
	if r.size == 0 {
		return r, r.layoutError(ErrZeroSize)
	}
	if r.align > uintptr(os.Getpagesize()) {
		return r, r.layoutError(ErrAlignment)
	}
	if err := layout.Check(typ, strict); err != nil {
		return r, r.layoutError(err)
	}
	n, err := conv.UintptrToInt(r.size)
	if err != nil {
		return r, r.layoutError(err)
	}
	r.len = n
	return r, nil
}

// CheckLayout reports whether T can be used as a cell record type, without
// touching the filesystem. strict applies the same rules as WithStrictLayout.
func CheckLayout[T any](strict bool) error {
	_, err := inspect[T](strict)
	return err
}

// NewNamed maps the file at path as a T, creating the file if it does not
// exist and resizing it to exactly unsafe.Sizeof(T) bytes if its length
// differs. Extending a file zero-fills the new bytes; shrinking it discards
// the tail.
//
// Calling NewNamed is an attestation by the caller: the bytes currently in
// the file must form a valid T. For a freshly created file that means the
// all-zero T must be valid, or the fields must be initialized immediately.
// For an existing file it means the file was last written with the same
// layout of T. Neither is checked. T itself is checked: types that embed
// references (pointers, slices, maps, strings, interfaces, channels,
// functions) are rejected, because the memory they point to does not travel
// with the bytes and the garbage collector does not scan mapped memory.
//
// The mapping is shared: writes through GetMut are immediately visible to
// every other mapping of the same file, in this or any other process.
func NewNamed[T any](path string, opts ...Option) (*Cell[T], error) {
	o := applyOptions(opts)
	start := time.Now()
	c, err := openNamed[T](path, os.O_RDWR|os.O_CREATE, true, o)
	o.metricsCollector.RecordOpen(BackingFile, time.Since(start), err)
	return c, err
}

// OpenNamed maps an existing file at path as a T. Unlike NewNamed it never
// creates or resizes the file: a missing file is an *IOError and a file whose
// length differs from unsafe.Sizeof(T) is a *LayoutError wrapping
// ErrSizeMismatch.
//
// OpenNamed carries the same caller attestation as NewNamed.
func OpenNamed[T any](path string, opts ...Option) (*Cell[T], error) {
	o := applyOptions(opts)
	start := time.Now()
	c, err := openNamed[T](path, os.O_RDWR, false, o)
	o.metricsCollector.RecordOpen(BackingFile, time.Since(start), err)
	return c, err
}

func openNamed[T any](path string, flag int, resize bool, o options) (_ *Cell[T], err error) {
	logger := o.logger.WithPath(path)
	r, err := inspect[T](o.strictLayout)
	defer func() { logger.LogOpen(r.name, int(r.size), err) }()
	if err != nil {
		return nil, err
	}

	f, err := o.fs.OpenFile(path, flag, o.fileMode)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	want := int64(r.len)
	if have := fi.Size(); have != want {
		if !resize {
			return nil, r.layoutError(fmt.Errorf("%w: file has %d bytes", ErrSizeMismatch, have))
		}
		if err := f.Truncate(want); err != nil {
			return nil, &IOError{Op: "truncate", Path: path, Err: err}
		}
		logger.LogResize(have, want)
	}

	m, err := mmap.Map(f.Fd(), r.len)
	if err != nil {
		return nil, mappingError("mmap", path, err)
	}

	c, err := newCell[T](m, r, o)
	if err != nil {
		return nil, err
	}
	c.file = f
	c.path = path
	c.logger = logger
	return c, nil
}

// NewAnonymous maps unsafe.Sizeof(T) bytes of zeroed anonymous memory as a T.
//
// The mapping is private to the process and never touches the filesystem.
// Whether a child process created by fork inherits it depends on the
// platform and is not guaranteed. The all-zero T must be valid, as with a
// freshly created NewNamed file.
func NewAnonymous[T any](opts ...Option) (*Cell[T], error) {
	o := applyOptions(opts)
	start := time.Now()
	c, err := openAnonymous[T](o)
	o.metricsCollector.RecordOpen(BackingAnonymous, time.Since(start), err)
	return c, err
}

func openAnonymous[T any](o options) (_ *Cell[T], err error) {
	logger := o.logger.WithPath("")
	r, err := inspect[T](o.strictLayout)
	defer func() { logger.LogOpen(r.name, int(r.size), err) }()
	if err != nil {
		return nil, err
	}

	m, err := mmap.MapAnon(r.len)
	if err != nil {
		return nil, mappingError("mmap", "", err)
	}

	c, err := newCell[T](m, r, o)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return c, nil
}

// newCell overlays T on m. On error m is unmapped.
func newCell[T any](m *mmap.Mapping, r record, o options) (*Cell[T], error) {
	base := unsafe.Pointer(unsafe.SliceData(m.Bytes()))
	if uintptr(base)%r.align != 0 {
		_ = m.Close()
		return nil, r.layoutError(fmt.Errorf("%w: address %#x", ErrMisaligned, uintptr(base)))
	}
	return &Cell[T]{
		m:            m,
		ptr:          (*T)(base),
		metrics:      o.metricsCollector,
		flushOnClose: o.flushOnClose,
	}, nil
}

// Get returns a copy of the record.
//
// Get panics with ErrClosed if the cell has been closed.
func (c *Cell[T]) Get() T {
	p := c.GetMut()
	if p == nil {
		panic(ErrClosed)
	}
	return *p
}

// GetMut returns a pointer to the record inside the mapping. Writes through
// it change the backing storage directly and are visible to other mappings
// of the same file without a flush.
//
// The pointer is valid until Close. It returns nil once the cell is closed.
// No synchronization is provided: concurrent access from several goroutines
// or processes must be coordinated by the caller.
func (c *Cell[T]) GetMut() *T {
	if c.closed.Load() {
		return nil
	}
	return c.ptr
}

// Bytes returns the raw mapped bytes of the record, len == Size().
// Returns nil once the cell is closed.
func (c *Cell[T]) Bytes() []byte {
	return c.m.Bytes()
}

// Size returns the record size in bytes.
func (c *Cell[T]) Size() int {
	return c.m.Size()
}

// Path returns the backing file path, or "" for anonymous cells.
func (c *Cell[T]) Path() string {
	return c.path
}

// Anonymous reports whether the cell has no backing file.
func (c *Cell[T]) Anonymous() bool {
	return c.m.Anonymous()
}

// Flush synchronously writes the record back to the backing file and syncs
// the file. It only affects durability against crashes; other mappings of
// the file see writes without it.
//
// Flush on an anonymous cell does nothing and returns nil.
func (c *Cell[T]) Flush() error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.flush()
}

func (c *Cell[T]) flush() error {
	return c.flushMode(false)
}

// flushMode syncs a file-backed cell and reports the outcome. An
// asynchronous flush only schedules write-back of the mapping; the file
// itself is synced by the kernel later.
func (c *Cell[T]) flushMode(async bool) error {
	if c.file == nil {
		return nil
	}
	start := time.Now()
	var err error
	if async {
		if serr := c.m.SyncAsync(); serr != nil {
			err = mappingError("msync", c.path, serr)
		}
	} else {
		err = c.sync()
	}
	c.metrics.RecordFlush(time.Since(start), err)
	c.logger.LogFlush(async, err)
	return err
}

func (c *Cell[T]) sync() error {
	if err := c.m.Sync(); err != nil {
		return mappingError("msync", c.path, err)
	}
	if err := c.file.Sync(); err != nil {
		return &IOError{Op: "fsync", Path: c.path, Err: err}
	}
	return nil
}

// FlushAsync schedules write-back of the record without waiting for it.
// It is metered and logged like Flush; the recorded duration covers only
// the scheduling. Flush on an anonymous cell does nothing and returns nil.
func (c *Cell[T]) FlushAsync() error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.flushMode(true)
}

// Advise provides hints to the kernel about how the record will be accessed.
func (c *Cell[T]) Advise(pattern AccessPattern) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.m.Advise(pattern); err != nil {
		return mappingError("madvise", c.path, err)
	}
	return nil
}

// Lock pins the record's pages in physical memory.
func (c *Cell[T]) Lock() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.m.Lock(); err != nil {
		return mappingError("mlock", c.path, err)
	}
	return nil
}

// Unlock releases pages pinned by Lock.
func (c *Cell[T]) Unlock() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.m.Unlock(); err != nil {
		return mappingError("munlock", c.path, err)
	}
	return nil
}
