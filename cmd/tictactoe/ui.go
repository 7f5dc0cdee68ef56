package main

import (
	"bufio"
	"context"
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/match"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const menuText = `
Tic Tac Toe
  1) 1 Player
  2) 2 Player
  3) Quit
> `

// terminal is the line-based front end for the play command.
type terminal struct {
	in  *bufio.Scanner
	out io.Writer
	s   settings
}

func newTerminal(in io.Reader, out io.Writer, s settings) *terminal {
	return &terminal{in: bufio.NewScanner(in), out: out, s: s}
}

// run shows the menu until the user quits or input ends.
func (t *terminal) run(ctx context.Context) error {
	for {
		fmt.Fprint(t.out, menuText)
		choice, err := t.readLine()
		if err != nil {
			return ignoreEOF(err)
		}

		var m *match.Match
		switch choice {
		case "1":
			m = match.NewBotMatch(bot.NewBot(t.s.botMark, t.s.difficulty, t.s.thinkDelay))
			fmt.Fprintf(t.out, "You play %s against a %s bot.\n", t.s.botMark.Opponent(), t.s.difficulty)
		case "2":
			m = match.NewTwoPlayerMatch()
		case "3", "q":
			fmt.Fprintln(t.out, "Bye!")
			return nil
		default:
			fmt.Fprintf(t.out, "Unknown option %q\n", choice)
			continue
		}

		if err := t.playMatch(ctx, m); err != nil {
			return ignoreEOF(err)
		}
	}
}

func (t *terminal) playMatch(ctx context.Context, m *match.Match) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		g := m.Game()
		fmt.Fprint(t.out, renderBoard(g.Board))

		if m.IsOver() {
			score := m.Score()
			fmt.Fprintln(t.out, resultText(g.Outcome))
			fmt.Fprintln(t.out, scoreText(score.XWins, score.OWins, score.Draws))
			fmt.Fprint(t.out, "r) Rematch  b) Back to menu\n> ")

			line, err := t.readLine()
			if err != nil {
				return err
			}
			if line != "r" {
				return nil
			}
			m.Rematch()
			continue
		}

		if m.IsBotTurn() {
			move, _, err := m.PlayBot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(t.out, "Bot plays %d %d\n", move.Row+1, move.Col+1)
			continue
		}

		fmt.Fprintf(t.out, "%s to move (row col, q to leave)\n> ", g.CurrentTurn)
		line, err := t.readLine()
		if err != nil {
			return err
		}
		if line == "q" {
			return nil
		}

		move, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}
		if _, err := m.Play(move.Row, move.Col); err != nil {
			fmt.Fprintln(t.out, err)
		}
	}
}

func (t *terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// parseMove reads a 1-based "row col" pair, comma separated pairs included.
func parseMove(s string) (game.Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 2 {
		return game.Move{}, fmt.Errorf("%w: want \"row col\", got %q", game.ErrInvalidMove, s)
	}

	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		return game.Move{}, fmt.Errorf("%w: %q is not a pair of numbers", game.ErrInvalidMove, s)
	}

	m := game.Move{Row: row - 1, Col: col - 1}
	if !m.InBounds() {
		return game.Move{}, fmt.Errorf("%w: %d %d is off the board", game.ErrInvalidMove, row, col)
	}
	return m, nil
}

func renderBoard(b game.Board) string {
	var sb strings.Builder
	for r := range game.Size {
		if r > 0 {
			sb.WriteString("---+---+---\n")
		}
		for c := range game.Size {
			if c > 0 {
				sb.WriteString("|")
			}
			cell := string(b[r][c])
			if cell == "" {
				cell = " "
			}
			sb.WriteString(" " + cell + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func resultText(outcome game.Outcome) string {
	if outcome.Status == game.Draw {
		return "It's a Draw!"
	}
	return fmt.Sprintf("%s Wins!", outcome.Winner)
}

func scoreText(xWins, oWins, draws int) string {
	return fmt.Sprintf("X %d - O %d - Draws %d", xWins, oWins, draws)
}
