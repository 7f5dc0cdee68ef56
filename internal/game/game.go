package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Phase is the position of a game in its lifecycle.
type Phase int

const (
	// AwaitingMove waits for CurrentTurn to play.
	AwaitingMove Phase = iota
	// Terminal is absorbing until Reset.
	Terminal
)

// Game is a single game of tic-tac-toe driven one move at a time.
type Game struct {
	ID          string
	Board       Board
	CurrentTurn PlayerMark
	Outcome     Outcome
	Moves       int
}

func NewGame() *Game {
	return &Game{
		ID:          uuid.New().String(),
		CurrentTurn: StartingMark,
	}
}

// Phase reports whether the game is waiting for a move or finished.
func (g *Game) Phase() Phase {
	if g.Outcome.IsTerminal() {
		return Terminal
	}
	return AwaitingMove
}

// IsOver checks if the game has been won or drawn.
func (g *Game) IsOver() bool {
	return g.Phase() == Terminal
}

// Move places the current player's mark at (row, col), re-evaluates the board
// and hands the turn over if the game goes on.
func (g *Game) Move(row, col int) error {
	if g.IsOver() {
		return fmt.Errorf("%w: %s", ErrGameFinished, g.Outcome)
	}

	board, err := g.Board.Place(Move{Row: row, Col: col}, g.CurrentTurn)
	if err != nil {
		return err
	}

	g.Board = board
	g.Moves++
	g.Outcome = board.Outcome()
	if !g.Outcome.IsTerminal() {
		g.CurrentTurn = g.CurrentTurn.Opponent()
	}
	return nil
}

// Reset clears the board and gives the first turn back to StartingMark.
// The game keeps its ID.
func (g *Game) Reset() {
	g.Board = Board{}
	g.CurrentTurn = StartingMark
	g.Outcome = Outcome{}
	g.Moves = 0
}
