package concordevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFutureCompleteWakesAllDependants(t *testing.T) {
	f := NewFuture(1, 100)
	f.addDependant(10)
	f.addDependant(11)

	deps := f.complete([]byte{1, 2, 3})
	assert.Equal(t, Complete, f.State)
	assert.Equal(t, []byte{1, 2, 3}, f.Value)
	assert.Len(t, deps, 2)
	assert.Nil(t, f.Dependants)
}

func TestFutureCancelClearsDependants(t *testing.T) {
	f := NewFuture(1, 100)
	f.addDependant(10)
	deps := f.cancel()
	assert.Equal(t, Cancelled, f.State)
	assert.Len(t, deps, 1)
	assert.Nil(t, f.Dependants)
}

func TestFaultLocationFormatting(t *testing.T) {
	f := NewFaultf(OutOfBounds, "boom")
	assert.False(t, f.HasLocation)
	located := f.at(7, 42)
	assert.True(t, located.HasLocation)
	assert.Contains(t, located.Error(), "coroutine 7")
	assert.Contains(t, located.Error(), "pc 42")
}
