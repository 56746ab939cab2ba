package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddAssignsDenseIDs(t *testing.T) {
	r := New(nil)

	id0 := r.Add("Apple Inc", "AAPL")
	id1 := r.Add("Microsoft Corp", "MSFT")

	assert.Equal(t, uint32(0), id0)
	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_DuplicateNamesAllowed(t *testing.T) {
	r := New(nil)

	id0 := r.Add("SYM", "SYM")
	id1 := r.Add("SYM", "SYM")

	assert.NotEqual(t, id0, id1)
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_LookupUnknownInstrument(t *testing.T) {
	r := New(nil)
	r.Add("Only", "ONE")

	_, ok := r.Lookup(1)
	assert.False(t, ok)
	assert.False(t, r.Registered(1))

	name, ok := r.Name(0)
	require.True(t, ok)
	assert.Equal(t, "Only", name)

	ticker, ok := r.Ticker(0)
	require.True(t, ok)
	assert.Equal(t, "ONE", ticker)
}
