package game

// Board boundaries
const (
	BorderMin = 0 // First index of the board
	BorderMax = 2 // Last index of the board
	Size      = 3
)

// StartingMark always opens a fresh or reset game.
const StartingMark = PlayerX

// Lines lists the eight winning triples in scan order: rows top to bottom,
// columns left to right, the main diagonal, then the anti-diagonal.
// The order decides the winner on malformed boards with several complete lines.
var Lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}
