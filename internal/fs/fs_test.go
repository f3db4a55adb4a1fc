package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	fpath := filepath.Join(tmp, "test.bin")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())
	assert.Equal(t, fpath, f.Name())
	assert.NotZero(t, f.Fd())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	// Extend zero-fills
	require.NoError(t, f.Truncate(16))
	info, err = f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(16), info.Size())

	assert.NoError(t, f.Close())

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("hello"), make([]byte, 11)...), data)
}

func TestFaultyFS(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("truncate", Fault{FailOnTruncate: true})
	ffs.AddRule("sync", Fault{FailOnSync: true})

	f, err := ffs.OpenFile(filepath.Join(tmp, "truncate.bin"), os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)
	assert.Equal(t, 1, ffs.OpenFiles())
	assert.ErrorIs(t, f.Truncate(8), ErrInjected)
	assert.NoError(t, f.Sync())
	require.NoError(t, f.Close())
	assert.Equal(t, 0, ffs.OpenFiles())

	f, err = ffs.OpenFile(filepath.Join(tmp, "sync.bin"), os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)
	assert.NoError(t, f.Truncate(8))
	assert.ErrorIs(t, f.Sync(), ErrInjected)
	require.NoError(t, f.Close())
}

func TestFaultyFS_OpenAndClose(t *testing.T) {
	tmp := t.TempDir()
	boom := errors.New("boom")
	ffs := NewFaultyFS(nil)
	ffs.AddRule("noopen", Fault{FailOnOpen: true, Err: boom})
	ffs.AddRule("noclose", Fault{FailOnClose: true})

	_, err := ffs.OpenFile(filepath.Join(tmp, "noopen.bin"), os.O_CREATE|os.O_RDWR, 0600)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, ffs.OpenFiles())

	_, statErr := os.Stat(filepath.Join(tmp, "noopen.bin"))
	assert.True(t, os.IsNotExist(statErr))

	f, err := ffs.OpenFile(filepath.Join(tmp, "noclose.bin"), os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ErrInjected)
	// The underlying file is released even when the close fault fires.
	assert.Equal(t, 0, ffs.OpenFiles())
	// Second close does not double count
	_ = f.Close()
	assert.Equal(t, 0, ffs.OpenFiles())
}

func TestFaultyFS_InvalidFd(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("badfd", Fault{InvalidFd: true})

	f, err := ffs.OpenFile(filepath.Join(tmp, "badfd.bin"), os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)
	assert.Equal(t, ^uintptr(0), f.Fd())
	require.NoError(t, f.Close())

	f, err = ffs.OpenFile(filepath.Join(tmp, "good.bin"), os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)
	assert.NotEqual(t, ^uintptr(0), f.Fd())
	require.NoError(t, f.Close())
	assert.Equal(t, 0, ffs.OpenFiles())
}
