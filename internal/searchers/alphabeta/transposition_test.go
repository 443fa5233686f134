package alphabeta

import (
	"testing"

	. "github.com/janpfeifer/fourGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyAfter(t *testing.T, columns ...int) CanonicalKey {
	t.Helper()
	b := NewBoard()
	var err error
	for _, column := range columns {
		b, err = b.Apply(column)
		require.NoError(t, err)
	}
	return b.CanonicalKey()
}

func TestTranspositionLookupMiss(t *testing.T) {
	tt := newTranspositionTable()
	key := keyAfter(t, 3, 3)
	_, found := tt.lookupCurrent(key)
	assert.False(t, found)
	_, found = tt.lookupPrevious(key)
	assert.False(t, found)
}

func TestTranspositionDepthPreferredReplacement(t *testing.T) {
	tt := newTranspositionTable()
	key := keyAfter(t, 3)

	deep := Entry{Column: 3, Score: 0.5, Bound: BoundExact, Depth: 8}
	tt.storeCurrent(key, deep)

	// A shallower result must not evict the deeper one.
	tt.storeCurrent(key, Entry{Column: 0, Score: -0.1, Bound: BoundExact, Depth: 2})
	entry, found := tt.lookupCurrent(key)
	require.True(t, found)
	assert.Equal(t, deep, entry)

	// A deeper result replaces it.
	deeper := Entry{Column: 2, Score: 0.7, Bound: BoundLower, Depth: 9}
	tt.storeCurrent(key, deeper)
	entry, found = tt.lookupCurrent(key)
	require.True(t, found)
	assert.Equal(t, deeper, entry)
}

func TestTranspositionEqualDepthReplaces(t *testing.T) {
	tt := newTranspositionTable()
	key := keyAfter(t, 0)

	tt.storeCurrent(key, Entry{Column: 1, Score: 0.1, Bound: BoundUpper, Depth: 4})
	refined := Entry{Column: 5, Score: 0.2, Bound: BoundExact, Depth: 4}
	tt.storeCurrent(key, refined)

	entry, found := tt.lookupCurrent(key)
	require.True(t, found)
	assert.Equal(t, refined, entry)
}

func TestTranspositionRotate(t *testing.T) {
	tt := newTranspositionTable()
	key := keyAfter(t, 3, 2)
	entry := Entry{Column: 4, Score: 0.3, Bound: BoundExact, Depth: 5}
	tt.storeCurrent(key, entry)

	tt.rotate()

	// The entry is now only an ordering hint, not authoritative.
	_, found := tt.lookupCurrent(key)
	assert.False(t, found)
	hint, found := tt.lookupPrevious(key)
	require.True(t, found)
	assert.Equal(t, entry, hint)

	// A second rotation drops it entirely.
	tt.rotate()
	_, found = tt.lookupPrevious(key)
	assert.False(t, found)
}

func TestTranspositionReset(t *testing.T) {
	tt := newTranspositionTable()
	key := keyAfter(t, 6)
	tt.storeCurrent(key, Entry{Column: 6, Score: -0.2, Bound: BoundExact, Depth: 3})
	tt.rotate()
	tt.storeCurrent(key, Entry{Column: 6, Score: -0.25, Bound: BoundExact, Depth: 3})

	tt.reset()
	_, found := tt.lookupCurrent(key)
	assert.False(t, found)
	_, found = tt.lookupPrevious(key)
	assert.False(t, found)
}

func TestCanonicalKeySharedByMirrors(t *testing.T) {
	tt := newTranspositionTable()
	left := keyAfter(t, 0, 1)
	right := keyAfter(t, 6, 5)
	require.Equal(t, left, right)

	tt.storeCurrent(left, Entry{Column: 3, Score: 0.4, Bound: BoundExact, Depth: 6})
	_, found := tt.lookupCurrent(right)
	assert.True(t, found)
}
