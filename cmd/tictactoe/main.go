package main

import (
	"context"
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/config"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/logger"
	"ctchen222/tictactoe-engine/internal/selfplay"
	"ctchen222/tictactoe-engine/internal/service"
	"ctchen222/tictactoe-engine/internal/telemetry"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

var (
	configPath = ""
	difficulty = ""
	botMark    = ""
)

const usage = `Usage: tictactoe [flags] [command]

Commands:
  play                            terminal game with a menu (default)
  serve                           answer JSON requests, one per line, on stdin
  selfplay [x-level] [o-level]    bot against bot from every opening cell

Flags:
`

func main() {
	pflag.StringVarP(&configPath, "config", "c", configPath, "path to a YAML config file")
	pflag.StringVarP(&difficulty, "difficulty", "d", difficulty, "bot difficulty: easy, medium or hard")
	pflag.StringVarP(&botMark, "bot-mark", "m", botMark, "mark played by the bot: X or O")
	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(start(ctx, pflag.Args(), os.Stdin, os.Stdout))
}

func start(ctx context.Context, args []string, in io.Reader, out io.Writer) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if difficulty != "" {
		cfg.Bot.Difficulty = difficulty
	}
	if botMark != "" {
		cfg.Bot.Mark = botMark
	}

	if err := logger.Init(cfg.LogLevel, cfg.Telemetry.Enabled()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("failed to shut down telemetry", "error", err)
		}
	}()

	s, err := settingsFromConfig(cfg.Bot)
	if err != nil {
		slog.Error("invalid bot settings", "error", err)
		return 1
	}

	if err := dispatch(ctx, args, s, in, out); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("command failed", "error", err)
		return 1
	}
	return 0
}

type settings struct {
	difficulty bot.Difficulty
	botMark    game.PlayerMark
	thinkDelay time.Duration
}

func settingsFromConfig(cfg config.Bot) (settings, error) {
	d, err := bot.ParseDifficulty(strings.ToLower(cfg.Difficulty))
	if err != nil {
		return settings{}, err
	}
	mark := game.PlayerMark(strings.ToUpper(cfg.Mark))
	if !mark.Valid() {
		return settings{}, fmt.Errorf("bot mark must be X or O, got %q", cfg.Mark)
	}
	if cfg.ThinkDelay < 0 {
		return settings{}, fmt.Errorf("think delay must not be negative, got %s", cfg.ThinkDelay)
	}
	return settings{difficulty: d, botMark: mark, thinkDelay: cfg.ThinkDelay}, nil
}

func dispatch(ctx context.Context, args []string, s settings, in io.Reader, out io.Writer) error {
	cmd := "play"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "play":
		return newTerminal(in, out, s).run(ctx)
	case "serve":
		slog.InfoContext(ctx, "Serving engine requests on stdin", "bot.difficulty", s.difficulty)
		return serve(ctx, service.NewEngineService(s.difficulty), in, out)
	case "selfplay":
		return runSelfPlay(ctx, args, s, out)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runSelfPlay(ctx context.Context, args []string, s settings, out io.Writer) error {
	levels := []bot.Difficulty{s.difficulty, s.difficulty}
	if len(args) > 2 {
		return fmt.Errorf("selfplay takes at most two difficulties, got %d", len(args))
	}
	for i, arg := range args {
		d, err := bot.ParseDifficulty(strings.ToLower(arg))
		if err != nil {
			return err
		}
		levels[i] = d
	}

	results, err := selfplay.Run(ctx, levels[0], levels[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "X (%s) vs O (%s)\n", levels[0], levels[1])
	for _, res := range results {
		fmt.Fprintf(out, "opening %s: %s after %d moves\n", res.Opening, res.Outcome, len(res.Moves))
	}
	x, o, draws := selfplay.Tally(results)
	fmt.Fprintln(out, scoreText(x, o, draws))
	return nil
}
