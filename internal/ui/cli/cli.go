// Package cli implements a command-line UI for the game: colored board
// rendering and column input.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/janpfeifer/fourGo/internal/generics"
	. "github.com/janpfeifer/fourGo/internal/state"
)

var (
	firstStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))   // red
	secondStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))  // yellow
	winningStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	frameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue frame
)

// StoneRunes rendered for each player.
var StoneRunes = [NumPlayers]string{"●", "○"}

// UI handles the terminal input/output of a match.
type UI struct {
	color       bool
	clearScreen bool
	reader      *bufio.Reader
}

// New creates a UI. With color false the stones degrade to plain X/O.
func New(color, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(os.Stdin),
	}
}

func (ui *UI) stone(p PlayerNum, winning bool) string {
	if !ui.color {
		if p == PlayerFirst {
			return "X"
		}
		return "O"
	}
	s := StoneRunes[p]
	style := firstStyle
	if p == PlayerSecond {
		style = secondStyle
	}
	if winning {
		style = style.Inherit(winningStyle)
	}
	return style.Render(s)
}

// Print renders the board, highlighting the connecting four when the game
// is over.
func (ui *UI) Print(board Board) {
	if ui.clearScreen {
		fmt.Print("\033[2J\033[H")
	}
	winning := board.WinningStones()

	var sb strings.Builder
	frame := func(s string) string {
		if ui.color {
			return frameStyle.Render(s)
		}
		return s
	}
	sb.WriteString(" ")
	for col := 0; col < NumColumns; col++ {
		sb.WriteString(fmt.Sprintf(" %d", col))
	}
	sb.WriteString("\n")
	for row := NumRows - 1; row >= 0; row-- {
		sb.WriteString(" ")
		sb.WriteString(frame("|"))
		for col := 0; col < NumColumns; col++ {
			if p, ok := board.StoneAt(col, row); ok {
				sb.WriteString(ui.stone(p, winning&CellMask(col, row) != 0))
			} else {
				sb.WriteString(" ")
			}
			sb.WriteString(frame("|"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(frame(" " + strings.Repeat("-", 2*NumColumns+1)))
	sb.WriteString("\n")
	fmt.Print(ui.centered(sb.String()))
}

// centered indents the block to the center of the terminal, when the width
// is known.
func (ui *UI) centered(block string) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return block
	}
	indent := (width - (2*NumColumns + 2)) / 2
	if indent <= 0 {
		return block
	}
	pad := strings.Repeat(" ", indent)
	lines := generics.SliceMap(strings.Split(block, "\n"), func(line string) string {
		if line == "" {
			return line
		}
		return pad + line
	})
	return strings.Join(lines, "\n")
}

// PrintPlayer prints which player is to move.
func (ui *UI) PrintPlayer(board Board) {
	p := board.NextPlayer()
	fmt.Printf("%s %s to move", ui.stone(p, false), p)
}

// ReadColumn prompts for a column to play until a playable one is entered.
// "u" asks for an undo, "q" to quit the match.
func (ui *UI) ReadColumn(board Board) (column int, undo, quit bool, err error) {
	for attempts := 0; attempts < 10; attempts++ {
		fmt.Printf("Column to play %v (u=undo, q=quit): ", board.LegalMoves())
		line, readErr := ui.reader.ReadString('\n')
		if readErr != nil {
			return 0, false, false, errors.Wrap(readErr, "failed to read input")
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "u":
			return 0, true, false, nil
		case "q":
			return 0, false, true, nil
		}
		column, convErr := strconv.Atoi(line)
		if convErr != nil || !board.IsColumnPlayable(column) {
			fmt.Printf("%q is not a playable column.\n", line)
			continue
		}
		return column, false, false, nil
	}
	return 0, false, false, errors.New("failed to read a column 10 times")
}

// PrintOutcome reports the end of the match.
func (ui *UI) PrintOutcome(board Board) {
	outcome, winner := board.Terminal()
	switch outcome {
	case OutcomeDraw:
		fmt.Println("Draw: the board is full.")
	case OutcomeWin:
		fmt.Printf("%s %s player wins after %d moves!\n",
			ui.stone(winner, false), winner, board.MoveCount())
	default:
		fmt.Println("Game is still ongoing.")
	}
}
