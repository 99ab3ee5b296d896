package tictactoe

const (
	// AnyBoard marks an unconstrained active sub-board.
	AnyBoard = -1
	// PassIndex in both coordinates asks ApplyMove to skip the turn.
	PassIndex = -1
)

// Status is the match state machine: InProgress until someone wins or every sub-board is decided.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWon
	StatusDrawn
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	default:
		return "in_progress"
	}
}

// Move addresses one cell of one sub-board.
type Move struct {
	SubBoard int `json:"sub_board"`
	Cell     int `json:"cell"`
}

// LastMove is the most recent placed mark, kept for highlighting and routing re-derivation.
type LastMove struct {
	SubBoard int  `json:"sub_board"`
	Cell     int  `json:"cell"`
	Player   Mark `json:"player"`
}

// Match is the authoritative state of one game. It is owned by a single caller
// and is not safe for concurrent use; copying a Match value yields an independent match.
type Match struct {
	boards        [BoardCells]SubBoard
	meta          MetaBoard
	currentPlayer Mark
	activeBoard   int
	rules         Rules
	winner        Mark
	isDraw        bool
	lastMove      *LastMove
}

// NewMatch - creates an empty match with player A to move.
func NewMatch(rules Rules) *Match {
	return &Match{
		currentPlayer: MarkA,
		activeBoard:   AnyBoard,
		rules:         rules,
	}
}

// CreateMatch - restores the match from snapshot when one is given, otherwise starts fresh.
// The given rules override the snapshot's own.
func CreateMatch(rules Rules, initial *Snapshot) (*Match, error) {
	if initial == nil {
		return NewMatch(rules), nil
	}

	match, err := FromSnapshot(*initial)
	if err != nil {
		return nil, err
	}

	match.SetRules(rules)

	return match, nil
}

func (that *Match) CurrentPlayer() Mark { return that.currentPlayer }

// ActiveSubBoard - returns the sub-board the current player is held to, or AnyBoard.
func (that *Match) ActiveSubBoard() int { return that.activeBoard }

func (that *Match) Rules() Rules { return that.rules }

func (that *Match) Winner() Mark { return that.winner }

func (that *Match) IsDraw() bool { return that.isDraw }

func (that *Match) Status() Status {
	switch {
	case that.winner != MarkNone:
		return StatusWon
	case that.isDraw:
		return StatusDrawn
	default:
		return StatusInProgress
	}
}

func (that *Match) IsInProgress() bool {
	return that.Status() == StatusInProgress
}

func (that *Match) LastMove() (LastMove, bool) {
	if that.lastMove == nil {
		return LastMove{}, false
	}
	return *that.lastMove, true
}

func (that *Match) Outcome(board int) Outcome {
	return that.meta.Outcome(board)
}

func (that *Match) Cell(board, cell int) Mark {
	if board < 0 || board >= BoardCells {
		return MarkNone
	}
	return that.boards[board].Cell(cell)
}

// SubBoard - returns a copy of the sub-board at index board.
func (that *Match) SubBoard(board int) SubBoard {
	if board < 0 || board >= BoardCells {
		return SubBoard{}
	}
	return that.boards[board]
}

// Clone - returns an independent copy for simulation.
func (that *Match) Clone() *Match {
	clone := *that
	return &clone
}

// CheckValidMove - reports whether ApplyMove would accept the move, without mutating anything.
func (that *Match) CheckValidMove(board, cell int) bool {
	if !that.IsInProgress() {
		return false
	}

	if board == PassIndex && cell == PassIndex {
		return true
	}

	if board < 0 || board >= BoardCells || cell < 0 || cell >= BoardCells {
		return false
	}

	if that.rules == RulesStandard && that.activeBoard != AnyBoard && board != that.activeBoard {
		return false
	}

	if that.meta.Outcome(board).IsDecided() {
		return false
	}

	return that.boards[board].Cell(cell) == MarkNone
}

// ApplyMove - places the current player's mark. Illegal moves are a no-op and report false.
// The (PassIndex, PassIndex) sentinel skips the turn instead.
func (that *Match) ApplyMove(board, cell int) bool {
	if board == PassIndex && cell == PassIndex {
		return that.PassTurn()
	}

	if !that.CheckValidMove(board, cell) {
		return false
	}

	player := that.currentPlayer
	if err := that.boards[board].SetCell(cell, player); err != nil {
		// unreachable: CheckValidMove guarantees an empty in-range cell
		return false
	}

	that.lastMove = &LastMove{SubBoard: board, Cell: cell, Player: player}

	if outcome := that.boards[board].outcome(); outcome.IsDecided() {
		that.meta.decide(board, outcome)
	}

	that.winner = that.meta.Winner()
	that.isDraw = that.winner == MarkNone && that.meta.AllDecided()

	that.activeBoard = that.route(cell)
	that.currentPlayer = player.Opponent()

	return true
}

// PassTurn - hands the turn to the opponent without touching any sub-board.
func (that *Match) PassTurn() bool {
	if !that.IsInProgress() {
		return false
	}

	that.activeBoard = AnyBoard
	that.currentPlayer = that.currentPlayer.Opponent()

	return true
}

// SetRules - switches rule sets mid-match. Free play drops any routing constraint.
func (that *Match) SetRules(rules Rules) {
	that.rules = rules
	if rules == RulesFreePlay {
		that.activeBoard = AnyBoard
	}
}

type resetConfig struct {
	rules       Rules
	keepRules   bool
	firstPlayer Mark
}

// ResetOption customises Reset.
type ResetOption func(*resetConfig)

// WithRules - resets into the given rules instead of keeping the current ones.
func WithRules(rules Rules) ResetOption {
	return func(conf *resetConfig) {
		conf.rules = rules
		conf.keepRules = false
	}
}

// WithFirstPlayer - lets B open the new match. Non-player marks are ignored.
func WithFirstPlayer(mark Mark) ResetOption {
	return func(conf *resetConfig) {
		if mark.IsPlayer() {
			conf.firstPlayer = mark
		}
	}
}

// Reset - clears the match back to its initial state, keeping the rules unless told otherwise.
func (that *Match) Reset(opts ...ResetOption) {
	conf := resetConfig{keepRules: true, firstPlayer: MarkA}
	for _, opt := range opts {
		opt(&conf)
	}

	rules := that.rules
	if !conf.keepRules {
		rules = conf.rules
	}

	*that = Match{
		currentPlayer: conf.firstPlayer,
		activeBoard:   AnyBoard,
		rules:         rules,
	}
}

// LegalMoves - enumerates legal moves by sub-board then cell, ascending.
func (that *Match) LegalMoves() []Move {
	if !that.IsInProgress() {
		return nil
	}

	if that.rules == RulesStandard && that.activeBoard != AnyBoard && !that.meta.Outcome(that.activeBoard).IsDecided() {
		return that.emptyCells(that.activeBoard, nil)
	}

	moves := make([]Move, 0, BoardCells*BoardCells)
	for board := range BoardCells {
		if that.meta.Outcome(board).IsDecided() {
			continue
		}
		moves = that.emptyCells(board, moves)
	}

	return moves
}

func (that *Match) emptyCells(board int, moves []Move) []Move {
	for cell := range BoardCells {
		if that.boards[board].Cell(cell) == MarkNone {
			moves = append(moves, Move{SubBoard: board, Cell: cell})
		}
	}
	return moves
}

// route - the played cell names the next sub-board unless it is already decided.
func (that *Match) route(cell int) int {
	if that.rules != RulesStandard {
		return AnyBoard
	}

	if that.meta.Outcome(cell).IsDecided() {
		return AnyBoard
	}

	return cell
}
