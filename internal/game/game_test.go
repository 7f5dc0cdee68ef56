package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Outcome
	}{
		{
			name:  "In progress - empty board",
			board: Board{},
			want:  Outcome{Status: InProgress},
		},
		{
			name: "In progress - partial board",
			board: Board{
				{PlayerX, None, None},
				{None, PlayerO, None},
				{None, None, None},
			},
			want: Outcome{Status: InProgress},
		},
		{
			name: "X wins - first row",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{None, PlayerO, None},
				{None, None, PlayerO},
			},
			want: WinFor(PlayerX),
		},
		{
			name: "O wins - second column",
			board: Board{
				{PlayerX, PlayerO, None},
				{PlayerX, PlayerO, None},
				{None, PlayerO, None},
			},
			want: WinFor(PlayerO),
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				{PlayerX, None, None},
				{None, PlayerX, None},
				{None, None, PlayerX},
			},
			want: WinFor(PlayerX),
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				{None, None, PlayerO},
				{None, PlayerO, None},
				{PlayerO, None, None},
			},
			want: WinFor(PlayerO),
		},
		{
			name: "Draw - full board",
			board: Board{
				{PlayerX, PlayerO, PlayerX},
				{PlayerX, PlayerO, PlayerO},
				{PlayerO, PlayerX, PlayerX},
			},
			want: Outcome{Status: Draw},
		},
		{
			name: "Win on a full board is not a draw",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{PlayerO, PlayerO, PlayerX},
				{PlayerO, PlayerX, PlayerO},
			},
			want: WinFor(PlayerX),
		},
		{
			name: "Row and column both complete",
			board: Board{
				{PlayerO, PlayerO, PlayerO},
				{PlayerO, PlayerX, None},
				{PlayerO, PlayerX, PlayerX},
			},
			want: WinFor(PlayerO),
		},
		{
			name: "Two columns for different marks - left column first",
			board: Board{
				{PlayerX, PlayerO, None},
				{PlayerX, PlayerO, None},
				{PlayerX, PlayerO, None},
			},
			want: WinFor(PlayerX),
		},
		{
			name: "Two rows for different marks - top row first",
			board: Board{
				{PlayerX, PlayerX, PlayerX},
				{PlayerO, PlayerO, PlayerO},
				{None, None, None},
			},
			want: WinFor(PlayerX),
		},
		{
			name: "Column and diagonal both complete",
			board: Board{
				{PlayerO, PlayerX, PlayerX},
				{PlayerO, PlayerO, PlayerX},
				{PlayerO, None, PlayerO},
			},
			want: WinFor(PlayerO),
		},
		{
			name: "Counts off by more than one still evaluated",
			board: Board{
				{PlayerX, PlayerX, None},
				{PlayerX, PlayerX, None},
				{None, None, None},
			},
			want: Outcome{Status: InProgress},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.board)
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	board := Board{
		{PlayerX, PlayerX, PlayerX},
		{PlayerO, PlayerO, PlayerO},
		{PlayerX, PlayerO, PlayerX},
	}
	first, err := Evaluate(board)
	require.NoError(t, err)

	for range 100 {
		got, err := Evaluate(board)
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}

func TestEvaluateRejectsUnknownCells(t *testing.T) {
	board := Board{
		{PlayerX, "Z", None},
		{None, None, None},
		{None, None, None},
	}

	_, err := Evaluate(board)

	assert.ErrorIs(t, err, ErrInvalidBoard)
}

func TestBoardFromRows(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]PlayerMark
		wantErr bool
	}{
		{
			name: "Valid grid",
			rows: [][]PlayerMark{{"X", "X", ""}, {"O", "O", ""}, {"", "", ""}},
		},
		{
			name:    "Too few rows",
			rows:    [][]PlayerMark{{"X", "X", ""}, {"O", "O", ""}},
			wantErr: true,
		},
		{
			name:    "Short row",
			rows:    [][]PlayerMark{{"X", "X"}, {"O", "O", ""}, {"", "", ""}},
			wantErr: true,
		},
		{
			name:    "Lowercase mark",
			rows:    [][]PlayerMark{{"x", "", ""}, {"", "", ""}, {"", "", ""}},
			wantErr: true,
		},
		{
			name:    "Nil grid",
			rows:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := BoardFromRows(tt.rows)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBoard)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, board.Rows())
		})
	}
}

func TestBoardPlaceDoesNotMutate(t *testing.T) {
	original := Board{
		{PlayerX, None, None},
		{None, PlayerO, None},
		{None, None, None},
	}
	snapshot := original

	next, err := original.Place(Move{Row: 2, Col: 2}, PlayerX)

	require.NoError(t, err)
	assert.Equal(t, snapshot, original)
	assert.Equal(t, PlayerX, next[2][2])

	_, err = original.Place(Move{Row: 1, Col: 1}, PlayerX)
	assert.ErrorIs(t, err, ErrCellOccupied)

	_, err = original.Place(Move{Row: 3, Col: 0}, PlayerX)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestBoardEmptyCellsRowMajor(t *testing.T) {
	board := Board{
		{PlayerX, None, PlayerO},
		{None, PlayerX, None},
		{PlayerO, None, None},
	}

	want := []Move{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}

	assert.Equal(t, want, board.EmptyCells())
	assert.False(t, board.IsFull())

	x, o := board.Counts()
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, o)
}

func TestGame_MoveAlternatesTurns(t *testing.T) {
	g := NewGame()
	require.NotEmpty(t, g.ID)
	require.Equal(t, PlayerX, g.CurrentTurn)
	require.Equal(t, AwaitingMove, g.Phase())

	require.NoError(t, g.Move(1, 1))
	assert.Equal(t, PlayerX, g.Board[1][1])
	assert.Equal(t, PlayerO, g.CurrentTurn)

	require.NoError(t, g.Move(0, 0))
	assert.Equal(t, PlayerO, g.Board[0][0])
	assert.Equal(t, PlayerX, g.CurrentTurn)
	assert.Equal(t, 2, g.Moves)
}

func TestGame_MoveErrors(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.Move(0, 0))

	err := g.Move(0, 0)
	assert.True(t, errors.Is(err, ErrCellOccupied), "got %v", err)

	err = g.Move(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidMove)

	assert.Equal(t, PlayerO, g.CurrentTurn, "a rejected move must not pass the turn")
}

func TestGame_TerminalIsAbsorbing(t *testing.T) {
	g := NewGame()
	// X: (0,0) (0,1) (0,2); O: (1,0) (1,1)
	for _, m := range []Move{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		require.NoError(t, g.Move(m.Row, m.Col))
	}

	assert.Equal(t, Terminal, g.Phase())
	assert.Equal(t, WinFor(PlayerX), g.Outcome)
	assert.Equal(t, PlayerX, g.CurrentTurn, "turn stays with the winner")

	err := g.Move(2, 2)
	assert.ErrorIs(t, err, ErrGameFinished)
	assert.Equal(t, None, g.Board[2][2])
}

func TestGame_Draw(t *testing.T) {
	g := NewGame()
	// X O X / X O O / O X X
	for _, m := range []Move{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}} {
		require.NoError(t, g.Move(m.Row, m.Col))
	}

	assert.True(t, g.IsOver())
	assert.Equal(t, Outcome{Status: Draw}, g.Outcome)
}

func TestGame_Reset(t *testing.T) {
	g := NewGame()
	id := g.ID
	require.NoError(t, g.Move(1, 1))
	require.NoError(t, g.Move(0, 0))

	g.Reset()

	assert.Equal(t, id, g.ID)
	assert.Equal(t, Board{}, g.Board)
	assert.Equal(t, StartingMark, g.CurrentTurn)
	assert.Equal(t, AwaitingMove, g.Phase())
	assert.Zero(t, g.Moves)
}
