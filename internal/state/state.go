// Package state holds the Connect Four board representation: a compact
// bitboard with value (copy, don't mutate) semantics, legal move generation,
// terminal detection and the symmetry-normalized key used by the
// transposition table.
package state

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PlayerNum is either 0 or 1, for the first or the second player to move.
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// NumPlayers currently limited to 2.
	NumPlayers = 2
)

// Other returns the opponent of the player.
func (p PlayerNum) Other() PlayerNum {
	return 1 - p
}

// String implements fmt.Stringer.
func (p PlayerNum) String() string {
	if p == PlayerFirst {
		return "First"
	}
	return "Second"
}

// Outcome of a position, see Board.Terminal.
type Outcome uint8

const (
	// OutcomeOngoing means the game is not over.
	OutcomeOngoing Outcome = iota

	// OutcomeDraw means the board is full without a connect-four.
	OutcomeDraw

	// OutcomeWin means one of the players connected four. See the winner
	// returned alongside by Board.Terminal.
	OutcomeWin
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "Ongoing"
	case OutcomeDraw:
		return "Draw"
	default:
		return "Win"
	}
}

// ErrIllegalMove is returned by Board.Apply when the column is out of range
// or already full. It signals a caller bug or stale UI state, and is
// recoverable by rejecting the input.
var ErrIllegalMove = errors.New("illegal move")

// Board is one Connect Four position: the two occupancy bitsets and the move
// counter, from which the side to move is derived. It is a small value type:
// Apply returns a new Board and never mutates the receiver, so callers keep
// old values for undo/history.
type Board struct {
	stones    [2]uint64
	moveCount uint8
}

// NewBoard returns the empty starting position, first player to move.
func NewBoard() Board {
	return Board{}
}

// NextPlayer returns the side to move.
func (b Board) NextPlayer() PlayerNum {
	return PlayerNum(b.moveCount & 1)
}

// MoveCount returns the number of stones on the board.
func (b Board) MoveCount() int {
	return int(b.moveCount)
}

// Stones returns the occupancy bitset of the given player.
func (b Board) Stones(p PlayerNum) uint64 {
	return b.stones[p]
}

// filled returns the union of both players' stones.
func (b Board) filled() uint64 {
	return b.stones[0] | b.stones[1]
}

// IsColumnPlayable reports whether a stone can be dropped in the column.
func (b Board) IsColumnPlayable(col int) bool {
	if col < 0 || col >= NumColumns {
		return false
	}
	return dropTarget(b.filled(), col) != 0
}

// DropRow returns the row where a stone dropped in the column would land.
// Intended for rendering (falling stone animation), not for the search hot
// path. ok is false when the column is full or out of range.
func (b Board) DropRow(col int) (row int, ok bool) {
	if col < 0 || col >= NumColumns {
		return 0, false
	}
	target := dropTarget(b.filled(), col)
	if target == 0 {
		return 0, false
	}
	for row = 0; row < NumRows; row++ {
		if target&CellMask(col, row) != 0 {
			return row, true
		}
	}
	return 0, false
}

// Apply drops a stone for the side to move in the given column and returns
// the resulting position. Returns ErrIllegalMove (wrapped with the column)
// if the column is out of range or full.
func (b Board) Apply(col int) (Board, error) {
	if col < 0 || col >= NumColumns {
		return b, errors.Wrapf(ErrIllegalMove, "column %d out of range [0, %d]", col, NumColumns-1)
	}
	target := dropTarget(b.filled(), col)
	if target == 0 {
		return b, errors.Wrapf(ErrIllegalMove, "column %d is full", col)
	}
	b.stones[b.NextPlayer()] |= target
	b.moveCount++
	return b, nil
}

// centerOrder lists the columns from the center outwards: exploring central
// columns first gives the alpha-beta search earlier cutoffs even before the
// heuristic move ordering kicks in.
var centerOrder = [NumColumns]int{3, 2, 4, 1, 5, 0, 6}

// LegalMoves returns the playable columns, center columns first.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, NumColumns)
	filled := b.filled()
	for _, col := range centerOrder {
		if dropTarget(filled, col) != 0 {
			moves = append(moves, col)
		}
	}
	return moves
}

// Terminal classifies the position: a win for one of the sides, a draw on a
// full board, or an ongoing game. Winner is only meaningful when the outcome
// is OutcomeWin. Branch-light bitwise checks, no per-cell scanning.
func (b Board) Terminal() (outcome Outcome, winner PlayerNum) {
	if hasConnect4(b.stones[PlayerFirst]) {
		return OutcomeWin, PlayerFirst
	}
	if hasConnect4(b.stones[PlayerSecond]) {
		return OutcomeWin, PlayerSecond
	}
	if b.filled() == AllCells {
		return OutcomeDraw, PlayerFirst
	}
	return OutcomeOngoing, PlayerFirst
}

// IsFinished reports whether the game is over, by win or draw.
func (b Board) IsFinished() bool {
	outcome, _ := b.Terminal()
	return outcome != OutcomeOngoing
}

// Draw reports whether the game ended in a draw.
func (b Board) Draw() bool {
	outcome, _ := b.Terminal()
	return outcome == OutcomeDraw
}

// WinningStones returns the mask of the cells forming a run of four (there
// may be more than one), for highlighting in a UI. Zero if nobody won.
func (b Board) WinningStones() uint64 {
	return connect4Cells(b.stones[PlayerFirst]) | connect4Cells(b.stones[PlayerSecond])
}

// StoneAt returns the owner of the stone at the cell, if any.
func (b Board) StoneAt(col, row int) (p PlayerNum, ok bool) {
	bit := CellMask(col, row)
	if b.stones[PlayerFirst]&bit != 0 {
		return PlayerFirst, true
	}
	if b.stones[PlayerSecond]&bit != 0 {
		return PlayerSecond, true
	}
	return 0, false
}

// Mirror returns the position flipped along the central column. The side to
// move is unchanged.
func (b Board) Mirror() Board {
	b.stones[0] = mirrorBits(b.stones[0])
	b.stones[1] = mirrorBits(b.stones[1])
	return b
}

// CanonicalKey identifies a position up to horizontal symmetry, relative to
// the side to move. It is the transposition table key.
type CanonicalKey struct {
	own, opp uint64
}

// CanonicalKey returns the symmetry-normalized key of the position: the
// lexicographically smaller of the raw (own, opponent) encoding and its
// mirrored counterpart, with "own" being the side to move. Mirror-image
// positions collapse to the same key.
func (b Board) CanonicalKey() CanonicalKey {
	side := b.NextPlayer()
	own, opp := b.stones[side], b.stones[side.Other()]
	mirrorOwn, mirrorOpp := mirrorBits(own), mirrorBits(opp)
	if own < mirrorOwn || (own == mirrorOwn && opp < mirrorOpp) {
		return CanonicalKey{own: own, opp: opp}
	}
	return CanonicalKey{own: mirrorOwn, opp: mirrorOpp}
}

// String renders the board as a text grid, top row first: 'X' for the first
// player, 'O' for the second, '.' for empty. For debugging and tests.
func (b Board) String() string {
	var sb strings.Builder
	for row := NumRows - 1; row >= 0; row-- {
		for col := 0; col < NumColumns; col++ {
			switch p, ok := b.StoneAt(col, row); {
			case !ok:
				sb.WriteByte('.')
			case p == PlayerFirst:
				sb.WriteByte('X')
			default:
				sb.WriteByte('O')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("move #%d, %s to play\n", b.moveCount, b.NextPlayer()))
	return sb.String()
}
