package bot

import (
	"context"
	"ctchen222/tictactoe-engine/internal/game"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

var (
	movesCounter, _   = meter.Int64Counter("bot.moves", metric.WithDescription("Moves chosen by bots"))
	searchNodes, _    = meter.Int64Histogram("bot.search.nodes", metric.WithDescription("Boards visited by a minimax search"))
	searchDuration, _ = meter.Float64Histogram("bot.search.duration", metric.WithDescription("Time spent choosing a move"), metric.WithUnit("ms"))
)

// Bot is a computer player bound to one mark.
type Bot struct {
	ID         string
	mark       game.PlayerMark
	difficulty Difficulty
	thinkDelay time.Duration
}

// NewBot creates a bot playing mark at the given difficulty.
// thinkDelay makes the bot pause before every move; zero disables it.
func NewBot(mark game.PlayerMark, difficulty Difficulty, thinkDelay time.Duration) *Bot {
	return &Bot{
		ID:         "bot-" + uuid.New().String()[:8],
		mark:       mark,
		difficulty: difficulty,
		thinkDelay: thinkDelay,
	}
}

// Mark returns the mark the bot plays.
func (b *Bot) Mark() game.PlayerMark {
	return b.mark
}

// Difficulty returns the bot's difficulty.
func (b *Bot) Difficulty() Difficulty {
	return b.difficulty
}

// NextMove picks the bot's move on board. The board is not modified.
func (b *Bot) NextMove(ctx context.Context, board game.Board) (game.Move, error) {
	ctx, span := tracer.Start(ctx, "bot.NextMove", trace.WithAttributes(
		attribute.String("bot.id", b.ID),
		attribute.String("bot.mark", string(b.mark)),
		attribute.String("bot.difficulty", string(b.difficulty)),
	))
	defer span.End()

	if b.thinkDelay > 0 {
		slog.DebugContext(ctx, "Bot is thinking...", "bot.id", b.ID, "bot.mark", b.mark)
		timer := time.NewTimer(b.thinkDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "Cancelled while thinking")
			return game.Move{}, ctx.Err()
		case <-timer.C:
		}
	}

	start := time.Now()
	move, nodes, err := b.choose(board)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	attrs := metric.WithAttributes(attribute.String("bot.difficulty", string(b.difficulty)))
	searchDuration.Record(ctx, elapsed, attrs)

	if err != nil {
		slog.WarnContext(ctx, "bot could not choose a move", "bot.id", b.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not choose a move")
		return game.Move{}, err
	}

	movesCounter.Add(ctx, 1, attrs)
	if nodes > 0 {
		searchNodes.Record(ctx, int64(nodes), attrs)
		span.SetAttributes(attribute.Int("search.nodes", nodes))
	}
	span.SetAttributes(attribute.Int("move.row", move.Row), attribute.Int("move.col", move.Col))
	slog.InfoContext(ctx, "Bot chose a move", "bot.id", b.ID, "bot.mark", b.mark, "move.row", move.Row, "move.col", move.Col, "search.nodes", nodes)

	return move, nil
}

// choose returns the move and, for minimax searches, the number of boards visited.
func (b *Bot) choose(board game.Board) (game.Move, int, error) {
	switch b.difficulty {
	case Easy, Medium:
		move, err := CalculateNextMove(board, b.mark, b.difficulty)
		return move, 0, err
	default:
		a, err := Analyze(board, b.mark, b.mark.Opponent())
		return a.Move, a.Nodes, err
	}
}
