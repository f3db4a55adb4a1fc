package fs

import (
	"io"
	"os"
)

// File represents an open backing file of a mapped cell.
type File interface {
	io.ReadWriteCloser
	Name() string
	Fd() uintptr
	Sync() error
	Stat() (os.FileInfo, error)
	Truncate(size int64) error
}

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
