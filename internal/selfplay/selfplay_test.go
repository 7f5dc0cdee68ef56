package selfplay

import (
	"context"
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_HardAgainstHardAlwaysDraws(t *testing.T) {
	results, err := Run(context.Background(), bot.Hard, bot.Hard)
	require.NoError(t, err)
	require.Len(t, results, 9)

	for i, res := range results {
		assert.Equal(t, game.Move{Row: i / 3, Col: i % 3}, res.Opening)
		assert.Equal(t, res.Opening, res.Moves[0])
		assert.Equal(t, game.Draw, res.Outcome.Status, "opening %s ended %s on %v", res.Opening, res.Outcome, res.Board)
		assert.Len(t, res.Moves, 9)
	}

	x, o, draws := Tally(results)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, o)
	assert.Equal(t, 9, draws)
}

func TestRun_HardNeverLosesToEasy(t *testing.T) {
	for range 5 {
		results, err := Run(context.Background(), bot.Easy, bot.Hard)
		require.NoError(t, err)

		x, _, _ := Tally(results)
		assert.Zero(t, x, "easy X beat hard O")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, bot.Hard, bot.Hard)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTally(t *testing.T) {
	results := []Result{
		{Outcome: game.WinFor(game.PlayerX)},
		{Outcome: game.WinFor(game.PlayerO)},
		{Outcome: game.WinFor(game.PlayerO)},
		{Outcome: game.Outcome{Status: game.Draw}},
	}

	x, o, draws := Tally(results)

	assert.Equal(t, 1, x)
	assert.Equal(t, 2, o)
	assert.Equal(t, 1, draws)
}
