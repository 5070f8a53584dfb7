package game

// ResultKind tells whether a game is still running, won or drawn.
type ResultKind uint8

const (
	None ResultKind = iota
	Win
	Draw
)

func (k ResultKind) String() string {
	switch k {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// MarshalText makes the kind readable in JSON payloads.
func (k ResultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the value written by MarshalText.
func (k *ResultKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "win":
		*k = Win
	case "draw":
		*k = Draw
	default:
		*k = None
	}
	return nil
}

// Result is the outcome of a board evaluation. Strike holds the winning
// triple for a win and every cell for a draw.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Winner Mark       `json:"winner,omitempty"`
	Strike []int      `json:"strike,omitempty"`
}

// Over reports whether the result ends the game.
func (r Result) Over() bool {
	return r.Kind != None
}

func (r Result) String() string {
	if r.Kind == Win {
		return r.Winner.String() + " wins"
	}
	return r.Kind.String()
}

var drawStrike = []int{0, 1, 2, 3, 4, 5, 6, 7, 8}

// CheckForWinner evaluates the board. The first combination in
// WinningCombinations order summing to +3 or -3 decides the winner. A board
// without a winner and without empty cells is a draw.
func CheckForWinner(b Board) Result {
	for _, line := range WinningCombinations {
		switch b.LineSum(line) {
		case 3:
			return Result{Kind: Win, Winner: PlayerX, Strike: []int{line[0], line[1], line[2]}}
		case -3:
			return Result{Kind: Win, Winner: PlayerO, Strike: []int{line[0], line[1], line[2]}}
		}
	}
	if b.IsFull() {
		return Result{Kind: Draw, Strike: append([]int(nil), drawStrike...)}
	}
	return Result{Kind: None}
}
