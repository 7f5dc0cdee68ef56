package main

import (
	"bufio"
	"bytes"
	"context"
	"ctchen222/tictactoe-engine/internal/service"
	"io"
)

// serve answers one JSON response line per non-blank request line until in
// is exhausted or ctx is cancelled.
func serve(ctx context.Context, svc service.EngineService, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		scanErr <- scanLines(ctx, in, lines)
		close(lines)
	}()

	w := bufio.NewWriter(out)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			w.Write(svc.HandleRaw(ctx, line))
			w.WriteByte('\n')
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}

func scanLines(ctx context.Context, in io.Reader, lines chan<- []byte) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		select {
		case lines <- bytes.Clone(line):
		case <-ctx.Done():
			return nil
		}
	}
	return scanner.Err()
}
