// Package threat implements the static board evaluator: a fast,
// non-recursive estimate built from open three-in-a-row threats, adjacent
// pairs and a central-occupancy bonus. It is used by the search to order
// moves and to score leaf positions when the depth budget runs out.
package threat

import (
	"math/bits"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/fourGo/internal/ai"
	. "github.com/janpfeifer/fourGo/internal/state"
)

// Default weights. Tuning constants validated empirically, not derived from
// a formal model.
const (
	// DefaultOpenThreeWeight scores a three-in-a-row with a free completion
	// cell, in any of the four placements of the gap.
	DefaultOpenThreeWeight = float32(0.04)

	// DefaultPairWeight scores any two adjacent own stones, dead or not.
	DefaultPairWeight = float32(0.01)
)

// Scorer is the threat-counting evaluator. The zero value is not useful, use
// New. It implements ai.ValueScorer.
type Scorer struct {
	openThreeWeight float32
	pairWeight      float32
}

var _ ai.ValueScorer = (*Scorer)(nil)

// Default is the evaluator with the default weights, shared and stateless.
var Default = New()

// New returns an evaluator with the default weights. See WithWeights.
func New() *Scorer {
	return &Scorer{
		openThreeWeight: DefaultOpenThreeWeight,
		pairWeight:      DefaultPairWeight,
	}
}

// WithWeights overrides the open-three and pair weights.
func (s *Scorer) WithWeights(openThree, pair float32) *Scorer {
	s.openThreeWeight = openThree
	s.pairWeight = pair
	return s
}

// String implements fmt.Stringer (and ai.ValueScorer).
func (s *Scorer) String() string {
	return "threat"
}

// Score evaluates the board for the side to move. It assumes the position is
// not terminal: win/loss/draw detection is the caller's job and is never
// re-checked here. The result is clamped to ±ai.HeuristicClampScore so that
// even a heavily discounted real win or loss still dominates it. It is
// symmetric: mirrored boards score the same.
func (s *Scorer) Score(b Board) float32 {
	side := b.NextPlayer()
	own := b.Stones(side)
	opp := b.Stones(side.Other())
	free := ^(own | opp) & AllCells

	score := float32(countOpenThrees(own, free))*s.openThreeWeight -
		float32(countOpenThrees(opp, free))*s.openThreeWeight
	score += float32(countPairs(own))*s.pairWeight -
		float32(countPairs(opp))*s.pairWeight
	score += positionalScore(own) - positionalScore(opp)

	return clamp(score, ai.HeuristicClampScore)
}

func clamp(x, limit float32) float32 {
	return math32.Max(-limit, math32.Min(limit, x))
}

// countOpenThrees counts threats: three aligned stones plus one free
// completion cell, over the four gap placements XXX_, XX_X, X_XX and _XXX,
// in each of the four directions.
func countOpenThrees(stones, free uint64) int {
	count := 0
	for _, shift := range DirShifts {
		pairs := ClipShift(stones, shift) & stones
		triples := ClipShift(pairs, shift) & stones

		// XXX_
		count += bits.OnesCount64(ClipShift(triples, shift) & free)
		// XX_X: pair, gap, stone.
		gapAfterPair := ClipShift(pairs, shift) & free
		count += bits.OnesCount64(ClipShift(gapAfterPair, shift) & stones)
		// X_XX: stone, gap, pair.
		gapBeforePair := ClipShiftBack(ClipShiftBack(pairs, shift), shift) & free
		count += bits.OnesCount64(ClipShiftBack(gapBeforePair, shift) & stones)
		// _XXX
		gap := ClipShiftBack(ClipShiftBack(ClipShiftBack(triples, shift), shift), shift) & free
		count += bits.OnesCount64(gap)
	}
	return count
}

// countPairs counts adjacent own pairs in all four directions, whether open
// or dead.
func countPairs(stones uint64) int {
	count := 0
	for _, shift := range DirShifts {
		count += bits.OnesCount64(ClipShift(stones, shift) & stones)
	}
	return count
}

// The positional value table: every cell is valued by its distance from the
// center in columns and from the middle rows, where stones participate in
// more potential alignments. The 12 masks each cover the four symmetric
// reflections of one cell of the lower-left quadrant, so the table is
// mirror-symmetric by construction.
var (
	positionalMasks  [12]uint64
	positionalValues [12]float32
)

func init() {
	// Literature-style cell values for the quadrant, bottom row first,
	// corner to center. Squared and scaled down so the positional bonus
	// stays a tie-breaker below the threat weights.
	base := [12]float32{
		0.0, 1.0, 3.0, 6.0,
		0.5, 2.0, 6.0, 8.0,
		1.5, 3.0, 8.0, 10.0,
	}
	for i, v := range base {
		positionalValues[i] = v * v * 0.001
	}
	for row := 0; row < NumRows/2; row++ {
		for col := 0; col <= NumColumns/2; col++ {
			positionalMasks[col+4*row] = CellMask(col, row) |
				CellMask(NumColumns-1-col, row) |
				CellMask(col, NumRows-1-row) |
				CellMask(NumColumns-1-col, NumRows-1-row)
		}
	}
}

// positionalScore values the stones by board placement, favoring the center.
func positionalScore(stones uint64) float32 {
	var score float32
	for i, mask := range positionalMasks {
		score += positionalValues[i] * float32(bits.OnesCount64(stones&mask))
	}
	return score
}
