package game

// Status is the coarse state of a board.
type Status int

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Outcome is the verdict on a board. Winner is set only when Status is Win.
type Outcome struct {
	Status Status
	Winner PlayerMark
}

// WinFor returns a winning outcome for mark.
func WinFor(mark PlayerMark) Outcome {
	return Outcome{Status: Win, Winner: mark}
}

// IsTerminal reports whether the game is over.
func (o Outcome) IsTerminal() bool {
	return o.Status != InProgress
}

func (o Outcome) String() string {
	switch o.Status {
	case Win:
		return string(o.Winner) + " wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}
