package game

import (
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMove  = errors.New("invalid move")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrGameFinished = errors.New("game already finished")
)

// Valid reports whether m is one of the two player marks.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

// Opponent returns the other player's mark. None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// Move is a board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the move addresses a cell of the board.
func (m Move) InBounds() bool {
	return m.Row >= BorderMin && m.Row <= BorderMax && m.Col >= BorderMin && m.Col <= BorderMax
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Board is a row-major 3x3 grid. It is a value type: passing it around copies it.
//
// A board reached by alternating play never has symbol counts that differ by
// more than one. Nothing here enforces that; see Counts.
type Board [Size][Size]PlayerMark

// BoardFromRows converts a caller-supplied grid into a Board, rejecting grids
// that are not 3x3 or that hold anything other than X, O or empty.
func BoardFromRows(rows [][]PlayerMark) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidBoard, r, len(row), Size)
		}
		copy(b[r][:], row)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Rows converts the board to a slice of slices, the shape used on the wire.
func (b Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, Size)
	for i := range Size {
		rows[i] = make([]PlayerMark, Size)
		copy(rows[i], b[i][:])
	}
	return rows
}

// Validate checks that every cell holds an allowed value.
func (b Board) Validate() error {
	for r := range Size {
		for c := range Size {
			if cell := b[r][c]; cell != None && !cell.Valid() {
				return fmt.Errorf("%w: cell (%d,%d) holds %q", ErrInvalidBoard, r, c, string(cell))
			}
		}
	}
	return nil
}

// Counts returns how many X and O marks are on the board.
func (b Board) Counts() (x, o int) {
	for r := range Size {
		for c := range Size {
			switch b[r][c] {
			case PlayerX:
				x++
			case PlayerO:
				o++
			}
		}
	}
	return x, o
}

// EmptyCells lists the empty cells in row-major order.
func (b Board) EmptyCells() []Move {
	var moves []Move
	for r := range Size {
		for c := range Size {
			if b[r][c] == None {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// IsFull checks if no empty cell is left.
func (b Board) IsFull() bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == None {
				return false
			}
		}
	}
	return true
}

// At returns the mark at m. m must be in bounds.
func (b Board) At(m Move) PlayerMark {
	return b[m.Row][m.Col]
}

// Place returns a copy of the board with mark placed at m. The receiver is left untouched.
func (b Board) Place(m Move, mark PlayerMark) (Board, error) {
	if !m.InBounds() {
		return b, fmt.Errorf("%w: %s is out of bounds", ErrInvalidMove, m)
	}
	if !mark.Valid() {
		return b, fmt.Errorf("%w: cannot place %q", ErrInvalidMove, string(mark))
	}
	if b[m.Row][m.Col] != None {
		return b, fmt.Errorf("%w: %s", ErrCellOccupied, m)
	}
	b[m.Row][m.Col] = mark
	return b, nil
}

// Evaluate reports whether the board is won, drawn or still in progress.
// It fails only on boards holding values other than X, O or empty; boards that
// cannot arise in play, such as two complete lines, still get a verdict.
func Evaluate(b Board) (Outcome, error) {
	if err := b.Validate(); err != nil {
		return Outcome{}, err
	}
	return b.Outcome(), nil
}

// Outcome scans the lines without validating the cells first.
// Callers that hold untrusted boards should use Evaluate.
func (b Board) Outcome() Outcome {
	for _, line := range Lines {
		first := b.At(line[0])
		if first != None && first == b.At(line[1]) && first == b.At(line[2]) {
			return WinFor(first)
		}
	}

	if b.IsFull() {
		return Outcome{Status: Draw}
	}

	return Outcome{Status: InProgress}
}
