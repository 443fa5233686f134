// Package game implements the match bookkeeping around the engine: the
// phase state machine (menu, playing, game over), the move history with
// undo, and the plumbing of terminal outcomes. It is UI-agnostic; front-ends
// drive it and render its state.
package game

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	. "github.com/janpfeifer/fourGo/internal/state"
)

// Phase of the interaction state machine. The phase set is fixed and
// finite, hence a closed enum rather than open-ended dispatch.
type Phase uint8

const (
	// PhaseMenu is before a match starts: the front-end collects who plays
	// first.
	PhaseMenu Phase = iota

	// PhasePlaying while moves are being made.
	PhasePlaying

	// PhaseGameOver after a win or draw, until the match is reset.
	PhaseGameOver
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	default:
		return "GameOver"
	}
}

// ErrWrongPhase is returned when an operation is invoked in a phase it does
// not belong to, e.g. playing a move while in the menu.
var ErrWrongPhase = errors.New("operation not valid in this phase")

// Match tracks one game: the current board, the full position history (the
// boards are values, so history doubles as undo) and the phase.
type Match struct {
	phase   Phase
	history []Board
}

// NewMatch returns a match in the menu phase.
func NewMatch() *Match {
	return &Match{phase: PhaseMenu}
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// Board returns the current position. Only meaningful while playing or game
// over.
func (m *Match) Board() Board {
	if len(m.history) == 0 {
		return NewBoard()
	}
	return m.history[len(m.history)-1]
}

// MoveCount returns the number of moves played so far.
func (m *Match) MoveCount() int {
	return m.Board().MoveCount()
}

// Start leaves the menu and begins a match from the empty board.
func (m *Match) Start() error {
	if m.phase != PhaseMenu {
		return errors.Wrapf(ErrWrongPhase, "Start in phase %s", m.phase)
	}
	m.history = append(m.history[:0], NewBoard())
	m.phase = PhasePlaying
	return nil
}

// Play drops a stone for the side to move in the given column. Returns the
// resulting board. Propagates ErrIllegalMove from the board; transitions to
// PhaseGameOver when the move ends the game.
func (m *Match) Play(column int) (Board, error) {
	if m.phase != PhasePlaying {
		return m.Board(), errors.Wrapf(ErrWrongPhase, "Play in phase %s", m.phase)
	}
	next, err := m.Board().Apply(column)
	if err != nil {
		return m.Board(), err
	}
	m.history = append(m.history, next)
	if next.IsFinished() {
		m.phase = PhaseGameOver
		if klog.V(1).Enabled() {
			outcome, winner := next.Terminal()
			klog.Infof("Match over after %d moves: %s (%s)", next.MoveCount(), outcome, winner)
		}
	}
	return next, nil
}

// Undo takes back the last move and returns to the playing phase (also from
// game over). Reports whether there was a move to take back.
func (m *Match) Undo() bool {
	if len(m.history) < 2 {
		return false
	}
	m.history = m.history[:len(m.history)-1]
	m.phase = PhasePlaying
	return true
}

// Outcome returns the terminal classification of the current board.
func (m *Match) Outcome() (Outcome, PlayerNum) {
	return m.Board().Terminal()
}

// Reset returns to the menu, dropping the history.
func (m *Match) Reset() {
	m.history = m.history[:0]
	m.phase = PhaseMenu
}
