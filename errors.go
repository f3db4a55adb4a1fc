package mmapcell

import (
	"errors"
	"fmt"

	"github.com/hupe1980/mmapcell/internal/layout"
	"github.com/hupe1980/mmapcell/internal/mmap"
)

var (
	// ErrIO matches every *IOError via errors.Is.
	ErrIO = errors.New("mmapcell: i/o error")
	// ErrLayout matches every *LayoutError via errors.Is.
	ErrLayout = errors.New("mmapcell: unsupported layout")
	// ErrClosed is returned when operating on a closed cell.
	ErrClosed = errors.New("mmapcell: cell is closed")

	// ErrZeroSize indicates a record type that occupies no bytes.
	ErrZeroSize = errors.New("zero-sized type")
	// ErrAlignment indicates a record type whose alignment exceeds the page size.
	ErrAlignment = errors.New("alignment exceeds page size")
	// ErrMisaligned indicates the platform returned a mapping not aligned for the type.
	ErrMisaligned = errors.New("mapping is not aligned for type")
	// ErrSizeMismatch indicates an existing file whose length differs from the type size.
	ErrSizeMismatch = errors.New("file size does not match type size")

	// ErrUnsupportedType indicates a record type embedding pointers, slices,
	// maps, strings, interfaces, channels or functions.
	ErrUnsupportedType = layout.ErrUnsupportedType
	// ErrPlatformSized indicates int, uint or uintptr under strict layout.
	ErrPlatformSized = layout.ErrPlatformSized
	// ErrPadding indicates implicit padding under strict layout.
	ErrPadding = layout.ErrPadding
)

// IOError reports a failed platform operation on the backing file or mapping.
//
// The original underlying error can be accessed via errors.Unwrap.
type IOError struct {
	Op   string
	Path string // empty for anonymous cells
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("mmapcell: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("mmapcell: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) hold for every IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// LayoutError reports a record type that cannot be overlaid on the mapping.
//
// Err is one of ErrZeroSize, ErrAlignment, ErrMisaligned, ErrSizeMismatch,
// ErrUnsupportedType, ErrPlatformSized or ErrPadding, possibly wrapped.
type LayoutError struct {
	Type  string
	Size  uintptr
	Align uintptr
	Err   error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("mmapcell: layout of %s (size %d, align %d): %v", e.Type, e.Size, e.Align, e.Err)
}

func (e *LayoutError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLayout) hold for every LayoutError.
func (e *LayoutError) Is(target error) bool { return target == ErrLayout }

// mappingError wraps a failure of the mapping layer. The layer's own
// operation tag is dropped so the message names the operation once.
func mappingError(op, path string, err error) *IOError {
	var me *mmap.Error
	if errors.As(err, &me) && me.Err != nil {
		err = me.Err
	}
	return &IOError{Op: op, Path: path, Err: err}
}
