// Package alphabeta implements the game's main search engine: a negamax
// search with alpha-beta pruning, a symmetry-folded two-generation
// transposition table, heuristic move presorting and a per-ply discount that
// prefers near wins and far losses.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
package alphabeta

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/janpfeifer/fourGo/internal/ai"
	"github.com/janpfeifer/fourGo/internal/searchers"
	. "github.com/janpfeifer/fourGo/internal/state"
	"k8s.io/klog/v2"
)

const (
	// DefaultMaxDepth of search, in plies.
	DefaultMaxDepth = 15

	// DefaultDiscount is the multiplicative per-ply discount: close wins
	// score strictly higher than far wins, close losses strictly lower
	// than far losses. It must stay extremely close to 1, since it
	// interacts with scores reused from the transposition table.
	DefaultDiscount = float32(0.99999)
)

// scoreGuard is below every reachable score, used to seed maximum searches.
const scoreGuard = float32(-math.MaxFloat32)

// Searcher implements the searchers.Searcher interface with negamax plus
// alpha-beta pruning. It owns its transposition table, so a Searcher must
// not be invoked concurrently; see the session package for running it off
// the interactive path.
type Searcher struct {
	maxDepth int
	discount float32
	scorer   ai.ValueScorer
	tt       *transpositionTable
	stats    Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// Stats collects counters during one search, for benchmarking and
// debugging.
type Stats struct {
	// Nodes expanded, i.e. calls into the recursion that were not resolved
	// by the transposition table or the terminal check.
	Nodes int

	// Evals is the number of static evaluations of the scorer, for leaf
	// scoring and move ordering.
	Evals int

	// TTHits are current-generation exact hits that cut a node short.
	TTHits int

	// TTResolved are children resolved during presorting from the
	// current-generation table.
	TTResolved int

	// OrderedByPrevious are children ordered by the previous-generation
	// table instead of the static evaluator.
	OrderedByPrevious int

	// Prunes are alpha-beta cutoffs.
	Prunes int
}

// New returns an alpha-beta Searcher using the given static evaluator for
// leaf scoring and move ordering. See the With... methods for options.
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		maxDepth: DefaultMaxDepth,
		discount: DefaultDiscount,
		scorer:   scorer,
		tt:       newTranspositionTable(),
	}
}

// WithMaxDepth sets the search depth budget in plies. Values below 1 are
// treated as 1: the search then degrades to a heuristic-only comparison of
// the immediate moves instead of failing.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = maxDepth
	return ab
}

// WithDiscount overrides the per-ply discount factor. It is a tuning
// constant: keep it strictly below 1 and very close to it.
func (ab *Searcher) WithDiscount(discount float32) *Searcher {
	ab.discount = discount
	return ab
}

// String implements fmt.Stringer (and searchers.Searcher).
func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(max_depth=%d, scorer=%s)", ab.maxDepth, ab.scorer)
}

// Stats returns the counters of the last Search call.
func (ab *Searcher) Stats() Stats {
	return ab.stats
}

// Reset drops both transposition generations, e.g. when starting a new
// match from a fresh position.
func (ab *Searcher) Reset() {
	ab.tt.reset()
}

// Search implements the searchers.Searcher interface. The board must be
// non-terminal with at least one legal move. At the end of the call, the
// current transposition generation is demoted to the ordering-hint
// generation for the next call.
func (ab *Searcher) Search(board Board) searchers.SearchResult {
	start := time.Now()
	ab.stats = Stats{}
	depth := ab.maxDepth
	if depth < 1 {
		depth = 1
	}
	score, column := ab.evaluate(board, scoreGuard, -scoreGuard, depth)
	ab.tt.rotate()

	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("Search: move #%d column=%d score=%.5f in %s", board.MoveCount(), column, score, elapsed)
		klog.Infof("  stats: %+v, nodes/s=%.0f", ab.stats, float64(ab.stats.Nodes)/elapsed.Seconds())
	}
	if klog.V(3).Enabled() {
		klog.Infof("Searched board:\n%s", board)
	}
	return searchers.SearchResult{Column: column, Score: score}
}

// moveOption is one playable column during presorting, with the position it
// leads to and its ordering priority, from the perspective of the player
// moving into it.
type moveOption struct {
	column   int
	board    Board
	priority float32
}

// presortResult separates the moves a node can take into already-resolved
// leaves (terminal positions, or exact cache hits deep enough to trust) and
// the pending moves that still need recursion, sorted best-first by their
// ordering priority.
type presortResult struct {
	// resolved is true if at least one move was resolved without
	// recursion; bestScore/bestColumn then hold the best of those, already
	// folded to the moving player's perspective.
	resolved   bool
	bestScore  float32
	bestColumn int

	pending []moveOption
}

// fold converts a child score to the parent's perspective: negamax sign
// flip plus the per-ply discount.
func (ab *Searcher) fold(childScore float32) float32 {
	return -childScore * ab.discount
}

// presortMoves expands every legal column of the board once, without
// recursing: children that are terminal, or whose canonical key has an
// exact, deep-enough entry in the current generation, are resolved
// immediately. The rest are queued for recursion, ordered by the
// previous-generation table when possible and by the static evaluator
// otherwise.
func (ab *Searcher) presortMoves(board Board, depthLeft int) (result presortResult) {
	result.bestScore = scoreGuard
	result.bestColumn = -1

	for _, column := range board.LegalMoves() {
		child, err := board.Apply(column)
		if err != nil {
			// LegalMoves only returns playable columns.
			panic(err)
		}

		if isEnd, score := ai.IsEndGameAndScore(child); isEnd {
			// The next ply would terminate immediately, no recursion
			// needed.
			result.noteResolved(column, ab.fold(score))
			continue
		}

		key := child.CanonicalKey()
		if entry, found := ab.tt.lookupCurrent(key); found &&
			entry.Bound == BoundExact && entry.Depth >= depthLeft-1 {
			ab.stats.TTResolved++
			result.noteResolved(column, ab.fold(entry.Score))
			continue
		}

		var priority float32
		if entry, found := ab.tt.lookupPrevious(key); found {
			// Stale, but empirically a better predictor than the static
			// heuristic.
			ab.stats.OrderedByPrevious++
			priority = ab.fold(entry.Score)
		} else {
			ab.stats.Evals++
			priority = ab.fold(ab.scorer.Score(child))
		}
		result.pending = append(result.pending, moveOption{column: column, board: child, priority: priority})
	}

	sort.SliceStable(result.pending, func(i, j int) bool {
		return result.pending[i].priority > result.pending[j].priority
	})
	return
}

func (r *presortResult) noteResolved(column int, folded float32) {
	if !r.resolved || folded > r.bestScore {
		r.bestScore = folded
		r.bestColumn = column
	}
	r.resolved = true
}

// evaluate is the negamax recursion over the alpha-beta window, with
// depthLeft plies to go. It returns the node's score for the side to move
// (fail-soft: possibly outside the window) and the best column, or -1 when
// no move was chosen (terminal or depth-exhausted node).
func (ab *Searcher) evaluate(board Board, alpha, beta float32, depthLeft int) (score float32, column int) {
	// Terminal nodes are normally resolved by the parent's presort; this
	// check only fires for a terminal board handed to Search itself.
	if isEnd, endScore := ai.IsEndGameAndScore(board); isEnd {
		return endScore, -1
	}
	if depthLeft <= 0 {
		// Out of budget: the static estimate stands in. It is a bound,
		// not an exact value, and is not cached.
		ab.stats.Evals++
		return ab.scorer.Score(board), -1
	}

	key := board.CanonicalKey()
	if entry, found := ab.tt.lookupCurrent(key); found &&
		entry.Bound == BoundExact && entry.Depth >= depthLeft {
		ab.stats.TTHits++
		return entry.Score, entry.Column
	}
	ab.stats.Nodes++

	presorted := ab.presortMoves(board, depthLeft)
	alphaOrig := alpha
	bestScore := scoreGuard
	bestColumn := -1
	if presorted.resolved {
		// Fold the already-resolved leaves into the running best and the
		// window before any recursion.
		bestScore, bestColumn = presorted.bestScore, presorted.bestColumn
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	if alpha < beta {
		for _, option := range presorted.pending {
			childScore, _ := ab.evaluate(option.board, -beta, -alpha, depthLeft-1)
			folded := ab.fold(childScore)
			if folded > bestScore {
				bestScore, bestColumn = folded, option.column
			}
			if folded > alpha {
				alpha = folded
			}
			if alpha >= beta {
				// Cutoff: the remaining moves cannot affect the result.
				ab.stats.Prunes++
				break
			}
		}
	} else {
		ab.stats.Prunes++
	}

	bound := BoundExact
	switch {
	case bestScore <= alphaOrig:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	ab.tt.storeCurrent(key, Entry{Column: bestColumn, Score: bestScore, Bound: bound, Depth: depthLeft})
	return bestScore, bestColumn
}
