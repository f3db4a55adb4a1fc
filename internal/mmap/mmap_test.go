package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSized(t *testing.T, size int64) *os.File {
	t.Helper()
	f, err := os.OpenFile(filepath.Join(t.TempDir(), "mapping.bin"), os.O_CREATE|os.O_RDWR, 0600)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	t.Cleanup(func() { f.Close() })
	return f
}

func TestMap_WriteThrough(t *testing.T) {
	f := createSized(t, 4096)

	m, err := Map(f.Fd(), 4096)
	require.NoError(t, err)
	assert.Equal(t, 4096, m.Size())
	assert.False(t, m.Anonymous())

	copy(m.Bytes(), []byte("modified"))
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, []byte("modified"), data[:8])
	assert.Len(t, data, 4096)
}

func TestMap_SharedBetweenMappings(t *testing.T) {
	f := createSized(t, 64)

	a, err := Map(f.Fd(), 64)
	require.NoError(t, err)
	defer a.Close()
	b, err := Map(f.Fd(), 64)
	require.NoError(t, err)
	defer b.Close()

	a.Bytes()[10] = 0xAB
	assert.Equal(t, byte(0xAB), b.Bytes()[10])
}

func TestMap_InvalidSize(t *testing.T) {
	f := createSized(t, 0)

	_, err := Map(f.Fd(), 0)
	assert.Equal(t, ErrInvalidSize, err)

	_, err = Map(f.Fd(), -1)
	assert.Equal(t, ErrInvalidSize, err)

	_, err = MapAnon(0)
	assert.Equal(t, ErrInvalidSize, err)
}

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(128)
	require.NoError(t, err)
	assert.True(t, m.Anonymous())
	assert.Equal(t, make([]byte, 128), m.Bytes())

	m.Bytes()[0] = 7
	assert.NoError(t, m.Sync())
	assert.NoError(t, m.SyncAsync())
	assert.Equal(t, byte(7), m.Bytes()[0])

	assert.NoError(t, m.Close())
}

func TestMapping_Advise(t *testing.T) {
	f := createSized(t, 4096)

	m, err := Map(f.Fd(), 4096)
	require.NoError(t, err)
	defer m.Close()

	for _, p := range []AccessPattern{AccessDefault, AccessSequential, AccessRandom, AccessWillNeed} {
		assert.NoError(t, m.Advise(p))
	}
	assert.NoError(t, m.SyncAsync())
}

func TestMapping_LockUnlock(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	if err := m.Lock(); err != nil {
		t.Skipf("mlock not permitted here: %v", err)
	}
	assert.NoError(t, m.Unlock())
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := MapAnon(64)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	// Double close should be safe
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Sync(), ErrClosed)
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
	assert.ErrorIs(t, m.Lock(), ErrClosed)
	assert.ErrorIs(t, m.Unlock(), ErrClosed)
}

func TestError(t *testing.T) {
	err := &Error{Op: "mmap", Err: os.ErrPermission}
	assert.Equal(t, "mmap: mmap: "+os.ErrPermission.Error(), err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "mmap: munmap", (&Error{Op: "munmap"}).Error())
}
