package service

import (
	"context"
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/validator"
	"ctchen222/tictactoe-engine/pkg/proto"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("service.engine")

var ErrInvalidRequest = errors.New("invalid request")

// EngineService answers engine requests coming from a presentation layer.
type EngineService interface {
	Handle(ctx context.Context, req *proto.Request) (*proto.Response, error)
	HandleRaw(ctx context.Context, raw []byte) []byte
}

type engineService struct {
	defaultDifficulty bot.Difficulty
}

// NewEngineService creates an EngineService. Move requests without a
// difficulty are played at defaultDifficulty.
func NewEngineService(defaultDifficulty bot.Difficulty) EngineService {
	return &engineService{defaultDifficulty: defaultDifficulty}
}

// Handle validates req and runs the requested engine operation.
func (s *engineService) Handle(ctx context.Context, req *proto.Request) (*proto.Response, error) {
	ctx, span := tracer.Start(ctx, "EngineService.Handle", trace.WithAttributes(
		attribute.String("request.type", req.Type),
	))
	defer span.End()

	board, err := game.BoardFromRows(req.Board)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid board")
		return nil, err
	}
	if err := validator.Struct(req); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	var resp *proto.Response
	switch req.Type {
	case proto.TypeEvaluate:
		resp, err = s.evaluate(board)
	case proto.TypeMove:
		resp, err = s.move(ctx, board, req)
	}
	if err != nil {
		slog.WarnContext(ctx, "engine request failed", "request.type", req.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Engine request failed")
		return nil, err
	}
	return resp, nil
}

func (s *engineService) evaluate(board game.Board) (*proto.Response, error) {
	outcome, err := game.Evaluate(board)
	if err != nil {
		return nil, err
	}
	return outcomeResponse(proto.TypeOutcome, board, outcome), nil
}

func (s *engineService) move(ctx context.Context, board game.Board, req *proto.Request) (*proto.Response, error) {
	opponent := req.Opponent
	if opponent == game.None {
		opponent = req.Mark.Opponent()
	}
	difficulty := bot.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = s.defaultDifficulty
	}

	var (
		move  game.Move
		score *int
	)
	if difficulty == bot.Easy || difficulty == bot.Medium {
		m, err := bot.CalculateNextMove(board, req.Mark, difficulty)
		if err != nil {
			return nil, err
		}
		move = m
	} else {
		a, err := bot.Analyze(board, req.Mark, opponent)
		if err != nil {
			return nil, err
		}
		move, score = a.Move, &a.Score
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("search.nodes", a.Nodes))
	}

	next, err := board.Place(move, req.Mark)
	if err != nil {
		return nil, err
	}

	resp := outcomeResponse(proto.TypeMove, next, next.Outcome())
	resp.Position = []int{move.Row, move.Col}
	resp.Score = score
	if resp.Next != game.None {
		resp.Next = opponent
	}
	slog.DebugContext(ctx, "engine chose a move", "mark", req.Mark, "difficulty", difficulty, "move.row", move.Row, "move.col", move.Col)
	return resp, nil
}

// HandleRaw decodes one JSON request and always answers with a JSON response,
// an error response included.
func (s *engineService) HandleRaw(ctx context.Context, raw []byte) []byte {
	var req proto.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return encode(errorResponse(fmt.Errorf("%w: %v", ErrInvalidRequest, err)))
	}

	resp, err := s.Handle(ctx, &req)
	if err != nil {
		return encode(errorResponse(err))
	}
	return encode(resp)
}

func outcomeResponse(typ string, board game.Board, outcome game.Outcome) *proto.Response {
	resp := &proto.Response{
		Type:    typ,
		Outcome: outcome.Status.String(),
		Winner:  outcome.Winner,
		Board:   board.Rows(),
	}
	if !outcome.IsTerminal() {
		resp.Next = nextTurn(board)
	}
	return resp
}

// nextTurn infers whose turn it is from the mark counts, assuming X started.
func nextTurn(board game.Board) game.PlayerMark {
	x, o := board.Counts()
	if x > o {
		return game.PlayerO
	}
	return game.StartingMark
}

func errorResponse(err error) *proto.Response {
	return &proto.Response{Type: proto.TypeError, Reason: err.Error()}
}

func encode(resp *proto.Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"type":"error","reason":"failed to encode response"}`)
	}
	return data
}
