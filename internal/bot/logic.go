package bot

import (
	"ctchen222/tictactoe-engine/internal/game"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Difficulty selects how hard the bot tries.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty converts a configured difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// MoveCalculator defines an interface for an agent that can calculate a game move.
type MoveCalculator interface {
	CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty Difficulty) (game.Move, error)
}

// BotMoveCalculator implements the MoveCalculator interface.
type BotMoveCalculator struct{}

// CalculateNextMove calls the package-level function to satisfy the interface.
func (c *BotMoveCalculator) CalculateNextMove(board game.Board, mark game.PlayerMark, difficulty Difficulty) (game.Move, error) {
	return CalculateNextMove(board, mark, difficulty)
}

// CalculateNextMove determines the bot's next move based on the specified difficulty.
// Unknown difficulties play like Hard.
func CalculateNextMove(board game.Board, botMark game.PlayerMark, difficulty Difficulty) (game.Move, error) {
	switch difficulty {
	case Easy, Medium:
		if err := checkPlayable(board, botMark); err != nil {
			return game.Move{}, err
		}
		if difficulty == Easy {
			return easyMove(board), nil
		}
		return mediumMove(board, botMark), nil
	default:
		return SelectMove(board, botMark, botMark.Opponent())
	}
}

// checkPlayable applies the same preconditions as SelectMove.
func checkPlayable(board game.Board, botMark game.PlayerMark) error {
	outcome, err := game.Evaluate(board)
	if err != nil {
		return err
	}
	if !botMark.Valid() {
		return fmt.Errorf("%w: bot mark %q", ErrPreconditionViolation, string(botMark))
	}
	if outcome.IsTerminal() {
		return fmt.Errorf("%w: board is already decided (%s)", ErrPreconditionViolation, outcome)
	}
	return nil
}

// easyMove makes a completely random move. The board must have an empty cell.
func easyMove(board game.Board) game.Move {
	availableMoves := board.EmptyCells()
	return availableMoves[rand.IntN(len(availableMoves))]
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(board game.Board, botMark game.PlayerMark) game.Move {
	// 1. Win: Check if the bot can win in the next move
	if move, canWin := findWinningMove(board, botMark); canWin {
		return move
	}

	// 2. Block: Check if the opponent is about to win and block them
	if move, canBlock := findWinningMove(board, botMark.Opponent()); canBlock {
		return move
	}

	// 3. Random: Otherwise, make a random move
	return easyMove(board)
}

// findWinningMove checks if a player has a potential winning move (two in a line with an empty third).
// Lines are checked in scan order.
func findWinningMove(board game.Board, mark game.PlayerMark) (game.Move, bool) {
	for _, line := range game.Lines {
		var (
			own   int
			empty game.Move
			holes int
		)
		for _, cell := range line {
			switch board.At(cell) {
			case mark:
				own++
			case game.None:
				empty = cell
				holes++
			}
		}
		if own == 2 && holes == 1 {
			return empty, true
		}
	}
	return game.Move{}, false
}
