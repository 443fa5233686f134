// Package ai defines the standard interfaces the game's AIs implement, and
// the score conventions shared by evaluators and searchers.
package ai

import (
	. "github.com/janpfeifer/fourGo/internal/state"
)

// WinScore for the winning side; the losing side scores -WinScore. Scores
// are always from the perspective of the side to move on the board handed
// in.
const WinScore = float32(1)

// DrawScore for a full board without a winner, for either side.
const DrawScore = float32(0)

// HeuristicClampScore bounds static evaluations strictly below WinScore, so
// a discounted win or loss still dominates any heuristic value.
const HeuristicClampScore = float32(0.97)

// ValueScorer returns a static score (value) for a given board, for the side
// to move: +WinScore is a sure win, -WinScore a sure loss, 0 balanced.
// Implementations must be side-effect free and fast: they are called once
// per expanded node during search.
type ValueScorer interface {
	Score(board Board) float32
	String() string
}

// IsEndGameAndScore returns whether the game is over on b, and if so the
// hard-coded score for the side to move. If isEnd is false the score must be
// ignored.
func IsEndGameAndScore(b Board) (isEnd bool, score float32) {
	outcome, winner := b.Terminal()
	switch outcome {
	case OutcomeOngoing:
		return false, 0
	case OutcomeDraw:
		return true, DrawScore
	}
	if winner == b.NextPlayer() {
		// Cannot happen after a legal move: the side to move never has four
		// already connected. Kept for completeness.
		return true, WinScore
	}
	return true, -WinScore
}
