package entity

const (
	StatusOK    = "ok"
	StatusError = "error"

	GameName = "tic-tac-toe"

	FigureX = "X"
	FigureO = "O"

	CellEmpty = 0
	CellX     = 1
	CellO     = 2
)

// FigureValue - wire value of a figure on the board.
func FigureValue(figure string) int {
	if figure == FigureX {
		return CellX
	}
	return CellO
}

// MatchRequest - body of start and finish calls. Both fields are optional.
type MatchRequest struct {
	GameID *int   `json:"game_id,omitempty"`
	Figure string `json:"figure,omitempty"`
}

// TurnRequest - body of a turn call.
type TurnRequest struct {
	GameID     int        `json:"game_id"`
	TurnNumber int        `json:"turn_number"`
	Figure     string     `json:"figure"`
	Board      [][]int    `json:"board"`
	LastTurns  []LastTurn `json:"last_turns,omitempty"`
}

type LastTurn struct {
	TurnNumber int    `json:"turn_number"`
	PlayerID   int    `json:"player_id"`
	Ego        bool   `json:"ego"`
	Figure     string `json:"figure"`
	Move       [2]int `json:"move"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Game    string `json:"game"`
	Version string `json:"version"`
	Secret  string `json:"secret"`
	Message string `json:"message"`
}

type StartResponse struct {
	Status  string `json:"status"`
	Game    string `json:"game"`
	Version string `json:"version"`
	Secret  string `json:"secret"`
	Accept  bool   `json:"accept"`
	Message string `json:"message"`
}

type TurnResponse struct {
	Status  string `json:"status"`
	Game    string `json:"game"`
	Version string `json:"version"`
	Secret  string `json:"secret"`
	Move    [2]int `json:"move"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
