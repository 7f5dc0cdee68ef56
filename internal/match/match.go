package match

//go:generate mockgen -source=match.go -destination=mocks/mock_player.go -package=mocks

import (
	"context"
	"ctchen222/tictactoe-engine/internal/game"
	"errors"
	"fmt"
	"log/slog"
)

// Mode selects who plays the second mark.
type Mode string

const (
	ModeTwoPlayer Mode = "two-player"
	ModeBot       Mode = "bot"
)

var (
	ErrNoBot      = errors.New("match has no bot")
	ErrBotTurn    = errors.New("it's the bot's turn")
	ErrNotBotTurn = errors.New("it's not the bot's turn")
)

// Player is a computer opponent able to pick a move for its mark.
type Player interface {
	Mark() game.PlayerMark
	NextMove(ctx context.Context, board game.Board) (game.Move, error)
}

// Scoreboard counts finished games.
type Scoreboard struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (s *Scoreboard) record(outcome game.Outcome) {
	switch {
	case outcome.Status == game.Draw:
		s.Draws++
	case outcome.Winner == game.PlayerX:
		s.XWins++
	case outcome.Winner == game.PlayerO:
		s.OWins++
	}
}

// Match is a series of games between the same two sides. It owns the game
// state and calls into the engine on every turn.
type Match struct {
	mode  Mode
	game  *game.Game
	bot   Player
	score Scoreboard
}

// NewTwoPlayerMatch creates a match where both marks are played by humans.
func NewTwoPlayerMatch() *Match {
	return &Match{mode: ModeTwoPlayer, game: game.NewGame()}
}

// NewBotMatch creates a match where bot plays its own mark and a human plays the other one.
func NewBotMatch(bot Player) *Match {
	return &Match{mode: ModeBot, game: game.NewGame(), bot: bot}
}

func (m *Match) Mode() Mode {
	return m.mode
}

// Game returns a copy of the current game.
func (m *Match) Game() game.Game {
	return *m.game
}

// Score returns the running score of the match.
func (m *Match) Score() Scoreboard {
	return m.score
}

// IsOver reports whether the current game has finished.
func (m *Match) IsOver() bool {
	return m.game.IsOver()
}

// IsBotTurn reports whether the bot is expected to move next.
func (m *Match) IsBotTurn() bool {
	return m.bot != nil && !m.game.IsOver() && m.game.CurrentTurn == m.bot.Mark()
}

// Play applies a human move for the player whose turn it is.
func (m *Match) Play(row, col int) (game.Outcome, error) {
	if m.IsBotTurn() {
		return m.game.Outcome, ErrBotTurn
	}
	return m.apply(row, col)
}

// PlayBot asks the bot for its move and applies it.
func (m *Match) PlayBot(ctx context.Context) (game.Move, game.Outcome, error) {
	if m.bot == nil {
		return game.Move{}, m.game.Outcome, ErrNoBot
	}
	if !m.IsBotTurn() {
		return game.Move{}, m.game.Outcome, ErrNotBotTurn
	}

	move, err := m.bot.NextMove(ctx, m.game.Board)
	if err != nil {
		return game.Move{}, m.game.Outcome, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	outcome, err := m.apply(move.Row, move.Col)
	if err != nil {
		return move, outcome, fmt.Errorf("bot chose an illegal move %s: %w", move, err)
	}
	return move, outcome, nil
}

func (m *Match) apply(row, col int) (game.Outcome, error) {
	mark := m.game.CurrentTurn
	if err := m.game.Move(row, col); err != nil {
		return m.game.Outcome, err
	}

	outcome := m.game.Outcome
	if outcome.IsTerminal() {
		m.score.record(outcome)
		slog.Info("Game finished", "game.id", m.game.ID, "match.mode", m.mode, "outcome", outcome.String(), "moves", m.game.Moves)
	} else {
		slog.Debug("Move applied", "game.id", m.game.ID, "mark", mark, "move.row", row, "move.col", col)
	}
	return outcome, nil
}

// Rematch starts a new game. X moves first again and the score is kept.
func (m *Match) Rematch() {
	m.game.Reset()
	slog.Info("Rematch started", "game.id", m.game.ID, "match.mode", m.mode)
}
