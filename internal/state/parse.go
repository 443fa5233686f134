package state

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseBoard builds a Board from a text grid in the format produced by
// Board.String: six rows of seven runes, top row first, 'X' for the first
// player, 'O' for the second and '.' for empty. Leading/trailing blank lines
// and per-line whitespace are ignored. The side to move is derived from the
// stone-count parity. Mostly a convenience for tests and debugging.
func ParseBoard(grid string) (Board, error) {
	var lines []string
	for _, line := range strings.Split(grid, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != NumRows {
		return Board{}, errors.Errorf("board grid must have %d rows, got %d", NumRows, len(lines))
	}

	var b Board
	for lineIdx, line := range lines {
		if len(line) != NumColumns {
			return Board{}, errors.Errorf("board row %q must have %d cells", line, NumColumns)
		}
		row := NumRows - 1 - lineIdx
		for col, cell := range line {
			switch cell {
			case 'X':
				b.stones[PlayerFirst] |= CellMask(col, row)
				b.moveCount++
			case 'O':
				b.stones[PlayerSecond] |= CellMask(col, row)
				b.moveCount++
			case '.':
				// Empty cell.
			default:
				return Board{}, errors.Errorf("invalid cell %q in board row %q", cell, line)
			}
		}
	}
	return b, nil
}
