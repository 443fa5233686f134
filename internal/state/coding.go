package state

// Bitboard coding helpers and the constant masks derived from the fixed 7x6
// geometry. The board is packed into a uint64 with one byte per row:
//
//	(48) (49) (50) (51) (52) (53) (54) (55)
//	 40   41   42   43   44   45   46  (47)
//	 32   33   34   35   36   37   38  (39)
//	 24   25   26   27   28   29   30  (31)
//	 16   17   18   19   20   21   22  (23)
//	  8    9   10   11   12   13   14  (15)
//	  0    1    2    3    4    5    6  ( 7)
//
// Bits in parentheses are sentinel guards: they are never set by a legal
// operation, and every shift-based adjacency check masks against AllCells so
// that bits cannot leak into a neighboring column or above the top row.

const (
	// NumColumns and NumRows of the standard board.
	NumColumns = 7
	NumRows    = 6

	// rowStride is the bit distance between two rows of the same column.
	// It is 8 rather than NumColumns to leave one guard column.
	rowStride = 8
)

// DirShifts are the four alignment directions expressed as left-shift
// amounts: up-left diagonal, vertical, up-right diagonal and horizontal.
var DirShifts = [4]uint{rowStride - 1, rowStride, rowStride + 1, 1}

// CellMask returns the mask with only the bit of the given cell set.
func CellMask(col, row int) uint64 {
	return 1 << (uint(col) + rowStride*uint(row))
}

// buildColumnMask returns the mask of all playable cells of one column.
func buildColumnMask(col int) (mask uint64) {
	for row := 0; row < NumRows; row++ {
		mask |= CellMask(col, row)
	}
	return
}

var (
	// columnMasks flags each of the seven playable columns.
	columnMasks = func() (masks [NumColumns]uint64) {
		for col := range masks {
			masks[col] = buildColumnMask(col)
		}
		return
	}()

	// AllCells flags every playable cell, guards excluded.
	AllCells = func() (mask uint64) {
		for col := 0; col < NumColumns; col++ {
			mask |= columnMasks[col]
		}
		return
	}()

	// bottomRowMask flags row 0, used to seed the drop-target computation.
	bottomRowMask = func() (mask uint64) {
		for col := 0; col < NumColumns; col++ {
			mask |= CellMask(col, 0)
		}
		return
	}()
)

// ClipShift shifts the bitset left by amount and clips against the guard
// bits, so that cells never wrap into a neighboring column or row.
func ClipShift(b uint64, amount uint) uint64 {
	return (b << amount) & AllCells
}

// ClipShiftBack is the inverse direction of ClipShift.
func ClipShiftBack(b uint64, amount uint) uint64 {
	return (b >> amount) & AllCells
}

// ColumnMask returns the mask of all playable cells of the column.
func ColumnMask(col int) uint64 {
	return columnMasks[col]
}

// mirrorBits mirrors a bitset along the central column. Fixed unroll over the
// seven columns, no loop at call time.
func mirrorBits(b uint64) uint64 {
	m := (b & columnMasks[6]) >> 6
	m |= (b & columnMasks[5]) >> 4
	m |= (b & columnMasks[4]) >> 2
	m |= b & columnMasks[3]
	m |= (b & columnMasks[2]) << 2
	m |= (b & columnMasks[1]) << 4
	m |= (b & columnMasks[0]) << 6
	return m
}

// dropTarget returns the mask with the bit set where a stone dropped in the
// given column lands, considering all cells in filled as occupied. Zero if
// the column is full.
func dropTarget(filled uint64, col int) uint64 {
	// Shift the filled cells up one row, seed the bottom row, and the xor
	// with the original leaves exactly the lowest free cell of each column.
	return ((ClipShift(filled, rowStride) | bottomRowMask) ^ filled) & columnMasks[col]
}

// hasConnect4 reports whether the bitset contains four aligned cells in any
// of the four directions. Each direction folds the board twice: the first
// fold flags pairs, the second flags pairs-of-pairs, so a surviving bit
// stands for a full run of four.
func hasConnect4(b uint64) bool {
	for _, shift := range DirShifts {
		d := ClipShift(b, shift) & b
		dd := ClipShift(ClipShift(d, shift), shift)
		if dd&d != 0 {
			return true
		}
	}
	return false
}

// connect4Cells returns the mask of every cell participating in a run of
// four. hasConnect4 collapses a run into its furthest bit in shift
// direction; shifting back three times re-expands it.
func connect4Cells(b uint64) uint64 {
	var cells uint64
	for _, shift := range DirShifts {
		d := ClipShift(b, shift) & b
		flag := ClipShift(ClipShift(d, shift), shift) & d
		cells |= flag
		for i := 0; i < 3; i++ {
			flag >>= shift
			cells |= flag
		}
	}
	return cells
}
