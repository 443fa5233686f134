// Package searchers defines the interface search algorithms must implement.
package searchers

import (
	. "github.com/janpfeifer/fourGo/internal/state"
)

// SearchResult is the outcome of one search: the chosen column and its
// score, from the perspective of the side to move on the board searched.
type SearchResult struct {
	// Column to play.
	Column int

	// Score of playing Column: +1 is a guaranteed win, -1 a guaranteed
	// loss, values in between are discounted wins/losses or heuristic
	// estimates.
	Score float32
}

// Searcher is the interface any of the search algorithms must adhere to.
//
// Search returns the next column to play on the given board along with its
// expected score. The board must not be terminal and must have at least one
// legal move; every implementation always produces a result for such a
// board.
type Searcher interface {
	Search(board Board) SearchResult
	String() string
}
