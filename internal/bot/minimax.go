package bot

import (
	"ctchen222/tictactoe-engine/internal/game"
	"errors"
	"fmt"
)

// ErrPreconditionViolation is returned when a move is requested for a board
// that has no move to make, or for symbols that do not describe two opponents.
var ErrPreconditionViolation = errors.New("precondition violation")

// Leaf scores, from the bot's point of view.
const (
	scoreLoss = -1
	scoreDraw = 0
	scoreWin  = 1
)

// Analysis is the result of a full minimax search.
type Analysis struct {
	Move  game.Move
	Score int // scoreWin, scoreDraw or scoreLoss with perfect play from both sides
	Nodes int // boards visited, the root included
}

// SelectMove returns the optimal move for botMark on board using an exhaustive
// minimax search. Ties go to the first candidate in row-major order.
func SelectMove(board game.Board, botMark, opponentMark game.PlayerMark) (game.Move, error) {
	a, err := Analyze(board, botMark, opponentMark)
	if err != nil {
		return game.Move{}, err
	}
	return a.Move, nil
}

// Analyze runs the same search as SelectMove and also reports the score of the
// chosen move and the size of the explored tree.
func Analyze(board game.Board, botMark, opponentMark game.PlayerMark) (Analysis, error) {
	outcome, err := game.Evaluate(board)
	if err != nil {
		return Analysis{}, err
	}
	if !botMark.Valid() || botMark.Opponent() != opponentMark {
		return Analysis{}, fmt.Errorf("%w: bot %q and opponent %q must be X and O", ErrPreconditionViolation, string(botMark), string(opponentMark))
	}
	if outcome.IsTerminal() {
		return Analysis{}, fmt.Errorf("%w: board is already decided (%s)", ErrPreconditionViolation, outcome)
	}

	// board is a copy; the search mutates and restores it in place.
	s := &search{board: board, bot: botMark, opponent: opponentMark, nodes: 1}
	score, move := s.best(true)
	return Analysis{Move: move, Score: score, Nodes: s.nodes}, nil
}

type search struct {
	board    game.Board
	bot      game.PlayerMark
	opponent game.PlayerMark
	nodes    int
}

// value scores the current board with the given side to move.
func (s *search) value(maximizing bool) int {
	s.nodes++
	if outcome := s.board.Outcome(); outcome.IsTerminal() {
		return s.leaf(outcome)
	}
	score, _ := s.best(maximizing)
	return score
}

// best tries every empty cell for the side to move and keeps the first move
// reaching the best score. The board must not be terminal.
func (s *search) best(maximizing bool) (int, game.Move) {
	mark := s.opponent
	if maximizing {
		mark = s.bot
	}

	var (
		bestScore int
		bestMove  game.Move
		found     bool
	)
	for r := range game.Size {
		for c := range game.Size {
			if s.board[r][c] != game.None {
				continue
			}

			s.board[r][c] = mark
			score := s.value(!maximizing)
			s.board[r][c] = game.None

			if !found || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
				bestScore, bestMove, found = score, game.Move{Row: r, Col: c}, true
			}
		}
	}
	return bestScore, bestMove
}

func (s *search) leaf(outcome game.Outcome) int {
	switch {
	case outcome.Status == game.Win && outcome.Winner == s.bot:
		return scoreWin
	case outcome.Status == game.Win:
		return scoreLoss
	default:
		return scoreDraw
	}
}
