// Package selfplay pits two bots against each other from every opening cell.
package selfplay

import (
	"context"
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("selfplay")

// Result is one finished self-play game.
type Result struct {
	Opening game.Move
	Outcome game.Outcome
	Moves   []game.Move
	Board   game.Board
}

// Run plays one game per opening cell, X opening on that cell and both sides
// driven by bots at the given difficulties from then on. Games run
// concurrently; results come back in row-major order of their openings.
func Run(ctx context.Context, xDifficulty, oDifficulty bot.Difficulty) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "selfplay.Run", trace.WithAttributes(
		attribute.String("x.difficulty", string(xDifficulty)),
		attribute.String("o.difficulty", string(oDifficulty)),
	))
	defer span.End()

	openings := (game.Board{}).EmptyCells()
	results := make([]Result, len(openings))

	g, ctx := errgroup.WithContext(ctx)
	for i, opening := range openings {
		g.Go(func() error {
			res, err := playFrom(ctx, opening, xDifficulty, oDifficulty)
			if err != nil {
				return fmt.Errorf("game opening at %s: %w", opening, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Self-play failed")
		return nil, err
	}

	for _, res := range results {
		slog.InfoContext(ctx, "Self-play game finished", "opening", res.Opening.String(), "outcome", res.Outcome.String(), "moves", len(res.Moves))
	}
	return results, nil
}

func playFrom(ctx context.Context, opening game.Move, xDifficulty, oDifficulty bot.Difficulty) (Result, error) {
	g := game.NewGame()
	if err := g.Move(opening.Row, opening.Col); err != nil {
		return Result{}, err
	}

	bots := map[game.PlayerMark]*bot.Bot{
		game.PlayerX: bot.NewBot(game.PlayerX, xDifficulty, 0),
		game.PlayerO: bot.NewBot(game.PlayerO, oDifficulty, 0),
	}

	moves := []game.Move{opening}
	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		move, err := bots[g.CurrentTurn].NextMove(ctx, g.Board)
		if err != nil {
			return Result{}, err
		}
		if err := g.Move(move.Row, move.Col); err != nil {
			return Result{}, err
		}
		moves = append(moves, move)
	}

	return Result{Opening: opening, Outcome: g.Outcome, Moves: moves, Board: g.Board}, nil
}

// Tally counts wins and draws over a set of results.
func Tally(results []Result) (xWins, oWins, draws int) {
	for _, res := range results {
		switch {
		case res.Outcome.Status == game.Draw:
			draws++
		case res.Outcome.Winner == game.PlayerX:
			xWins++
		case res.Outcome.Winner == game.PlayerO:
			oWins++
		}
	}
	return xWins, oWins, draws
}
