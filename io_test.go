package concordevm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIOManagerReadOnlyLeavesNoTmpFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	mgr := NewIOManager()
	id, f := mgr.Open(path)
	require.Nil(t, f)

	buf := make([]byte, 5)
	n, f := mgr.Read(id, buf)
	require.Nil(t, f)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	require.Nil(t, mgr.Close(id))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "read-only stream must not create a .tmp sibling")
}

func TestIOManagerWriteAtomicallyReplacesOnClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	mgr := NewIOManager()
	id, f := mgr.Open(path)
	require.Nil(t, f)

	n, f := mgr.Write(id, []byte("new contents"))
	require.Nil(t, f)
	assert.Equal(t, len("new contents"), n)

	// Original content must be unchanged until Close.
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(before))

	require.Nil(t, mgr.Close(id))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new contents", string(after))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestIOManagerUnknownStreamFaults(t *testing.T) {
	mgr := NewIOManager()
	_, f := mgr.Read(999, make([]byte, 1))
	require.NotNil(t, f)
	assert.Equal(t, IOError, f.Kind)
}
