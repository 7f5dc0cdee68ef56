package proto

import "ctchen222/tictactoe-engine/internal/game"

// Request types
const (
	TypeEvaluate = "evaluate"
	TypeMove     = "move"
)

// Response types
const (
	TypeOutcome = "outcome"
	TypeError   = "error"
)

// Request is a message from the presentation layer to the engine.
type Request struct {
	Type       string              `json:"type" validate:"required,oneof=evaluate move"`
	Board      [][]game.PlayerMark `json:"board" validate:"required,len=3,dive,len=3,dive,omitempty,oneof=X O"`
	Mark       game.PlayerMark     `json:"mark,omitempty" validate:"required_if=Type move,omitempty,oneof=X O"`
	Opponent   game.PlayerMark     `json:"opponent,omitempty" validate:"omitempty,oneof=X O,nefield=Mark"`
	Difficulty string              `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// Response is a message from the engine back to the presentation layer.
type Response struct {
	Type     string              `json:"type"`
	Reason   string              `json:"reason,omitempty"`
	Outcome  string              `json:"outcome,omitempty"`
	Winner   game.PlayerMark     `json:"winner,omitempty"`
	Position []int               `json:"position,omitempty"`
	Score    *int                `json:"score,omitempty"`
	Board    [][]game.PlayerMark `json:"board,omitempty"`
	Next     game.PlayerMark     `json:"next,omitempty"`
}
