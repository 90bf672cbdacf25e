package concordevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadWriteRoundTrip(t *testing.T) {
	m := NewMemory(16)
	require.Nil(t, m.WriteInt64(0, -42))
	v, f := m.ReadInt64(0)
	require.Nil(t, f)
	assert.Equal(t, int64(-42), v)
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := NewMemory(4)
	_, f := m.ReadInt64(0)
	require.NotNil(t, f)
	assert.Equal(t, OutOfBounds, f.Kind)

	f = m.WriteInt32(2, 7)
	require.NotNil(t, f)
	assert.Equal(t, OutOfBounds, f.Kind)
}

func TestMemoryExtend(t *testing.T) {
	m := NewMemory(0)
	assert.EqualValues(t, 0, m.Len())
	m.Extend(8)
	assert.EqualValues(t, 8, m.Len())
	require.Nil(t, m.WriteInt64(0, 1))
}

func TestMemoryMemCpyOverlapping(t *testing.T) {
	m := NewMemory(8)
	require.Nil(t, m.WriteBytes(0, []byte{1, 2, 3, 4, 5, 6}))
	// Overlapping forward copy: src and dst ranges intersect. A naive
	// byte-by-byte forward copy would clobber source bytes before they are
	// read; MemCpy must not.
	require.Nil(t, m.MemCpy(0, 2, 6))
	got, f := m.ReadBytes(0, 8)
	require.Nil(t, f)
	assert.Equal(t, []byte{1, 2, 1, 2, 3, 4, 5, 6}, got)
}

func TestMemoryDumpIsACopy(t *testing.T) {
	m := NewMemory(4)
	require.Nil(t, m.WriteInt32(0, 99))
	dump := m.Dump()
	dump[0] = 0
	v, f := m.ReadInt32(0)
	require.Nil(t, f)
	assert.EqualValues(t, 99, v)
}

func TestCodecStringNulTerminates(t *testing.T) {
	m := NewMemory(16)
	require.Nil(t, m.WriteString(0, "hi"))
	s, f := m.ReadString(0, 8)
	require.Nil(t, f)
	assert.Equal(t, "hi", s)
}

func TestCodecStringInvalidUTF8Faults(t *testing.T) {
	m := NewMemory(4)
	require.Nil(t, m.WriteBytes(0, []byte{0xff, 0xfe, 0xfd, 0xfc}))
	_, f := m.ReadString(0, 4)
	require.NotNil(t, f)
	assert.Equal(t, TypeParse, f.Kind)
}

func TestCodecBoolAnyNonzeroIsTrue(t *testing.T) {
	m := NewMemory(1)
	require.Nil(t, m.WriteBytes(0, []byte{5}))
	v, f := m.ReadBool(0)
	require.Nil(t, f)
	assert.True(t, v)
}

func TestCodecInt128RoundTrip(t *testing.T) {
	m := NewMemory(16)
	var v [16]byte
	for i := range v {
		v[i] = byte(i)
	}
	require.Nil(t, m.WriteInt128(0, v))
	got, f := m.ReadInt128(0)
	require.Nil(t, f)
	assert.Equal(t, v, got)
}
