package alphabeta

import (
	. "github.com/janpfeifer/fourGo/internal/state"
)

// BoundKind qualifies a cached score: an exact value, or a one-sided bound
// left behind by an alpha-beta cutoff.
type BoundKind uint8

const (
	// BoundExact means the stored score is the true value of the position
	// at the stored depth.
	BoundExact BoundKind = iota

	// BoundLower means the true value is >= the stored score (the node
	// failed high).
	BoundLower

	// BoundUpper means the true value is <= the stored score (the node
	// failed low).
	BoundUpper
)

// Entry is one transposition record: the best known column, the score (or
// score bound), the kind of bound and the remaining depth it was searched
// to.
type Entry struct {
	Column int
	Score  float32
	Bound  BoundKind
	Depth  int
}

// transpositionTable keeps two generations of entries keyed by the
// symmetry-normalized position: the current generation, filled and
// authoritative during one top-level search, and a frozen snapshot of the
// previous search used only as a move-ordering hint. The table is owned
// exclusively by one search session, no locking.
type transpositionTable struct {
	current  map[CanonicalKey]Entry
	previous map[CanonicalKey]Entry
}

func newTranspositionTable() *transpositionTable {
	return &transpositionTable{
		current:  make(map[CanonicalKey]Entry),
		previous: make(map[CanonicalKey]Entry),
	}
}

// lookupCurrent returns the entry recorded during the current search, if
// any. A miss is the normal "must compute" path, not an error.
func (tt *transpositionTable) lookupCurrent(key CanonicalKey) (Entry, bool) {
	entry, found := tt.current[key]
	return entry, found
}

// lookupPrevious returns the entry from the previous search's snapshot:
// stale, but empirically a better move-ordering predictor than a static
// heuristic.
func (tt *transpositionTable) lookupPrevious(key CanonicalKey) (Entry, bool) {
	entry, found := tt.previous[key]
	return entry, found
}

// storeCurrent records an entry under the key, unless a deeper entry is
// already present: a shallow result must not evict a deeper, more
// trustworthy one within the same search.
func (tt *transpositionTable) storeCurrent(key CanonicalKey, entry Entry) {
	if existing, found := tt.current[key]; found && existing.Depth > entry.Depth {
		return
	}
	tt.current[key] = entry
}

// rotate demotes the current generation to "previous" and opens a fresh
// empty current one. Called exactly once per top-level search, after the
// result is produced.
func (tt *transpositionTable) rotate() {
	tt.previous = tt.current
	tt.current = make(map[CanonicalKey]Entry, len(tt.previous))
}

// reset drops both generations, e.g. at the start of a new match.
func (tt *transpositionTable) reset() {
	tt.current = make(map[CanonicalKey]Entry)
	tt.previous = make(map[CanonicalKey]Entry)
}
