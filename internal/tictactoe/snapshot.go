package tictactoe

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
)

// ErrInvalidSnapshot is returned when a snapshot cannot describe a reachable match.
var ErrInvalidSnapshot = fmt.Errorf("tictactoe: %w", apperror.ErrInvalidSnapshot)

// Snapshot is the plain, serializable form of a Match used for persistence and network sync.
// Field names and shapes are stable: older snapshots must keep decoding.
type Snapshot struct {
	Boards         [BoardCells][BoardCells]Mark `json:"boards"`
	Outcomes       [BoardCells]Outcome          `json:"outcomes"`
	CurrentPlayer  Mark                         `json:"current_player"`
	ActiveSubBoard int                          `json:"active_sub_board"`
	Rules          Rules                        `json:"rules"`
	Winner         Mark                         `json:"winner"`
	IsDraw         bool                         `json:"is_draw"`
	LastMove       *LastMove                    `json:"last_move,omitempty"`
}

// snapshotJSON lets UnmarshalJSON tell a missing active_sub_board from an explicit one.
type snapshotJSON struct {
	Boards         [BoardCells][BoardCells]Mark `json:"boards"`
	Outcomes       [BoardCells]Outcome          `json:"outcomes"`
	CurrentPlayer  Mark                         `json:"current_player"`
	ActiveSubBoard *int                         `json:"active_sub_board"`
	Rules          Rules                        `json:"rules"`
	Winner         Mark                         `json:"winner"`
	IsDraw         bool                         `json:"is_draw"`
	LastMove       *LastMove                    `json:"last_move,omitempty"`
}

func (that *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	*that = Snapshot{
		Boards:         raw.Boards,
		Outcomes:       raw.Outcomes,
		CurrentPlayer:  raw.CurrentPlayer,
		ActiveSubBoard: AnyBoard,
		Rules:          raw.Rules,
		Winner:         raw.Winner,
		IsDraw:         raw.IsDraw,
		LastMove:       raw.LastMove,
	}

	switch {
	case raw.ActiveSubBoard != nil:
		that.ActiveSubBoard = *raw.ActiveSubBoard
	case raw.LastMove != nil && raw.Rules == RulesStandard:
		// older snapshots carried only the last move; routing is re-derived from it
		cell := raw.LastMove.Cell
		if cell >= 0 && cell < BoardCells && !that.boardOutcome(cell).IsDecided() {
			that.ActiveSubBoard = cell
		}
	}

	return nil
}

// boardOutcome - best-effort outcome of a board straight from the raw snapshot.
func (that *Snapshot) boardOutcome(board int) Outcome {
	if that.Outcomes[board].IsDecided() {
		return that.Outcomes[board]
	}

	sub := SubBoard{cells: that.Boards[board]}
	return sub.outcome()
}

// Snapshot - captures the full match state.
func (that *Match) Snapshot() Snapshot {
	snapshot := Snapshot{
		Outcomes:       that.meta.Outcomes(),
		CurrentPlayer:  that.currentPlayer,
		ActiveSubBoard: that.activeBoard,
		Rules:          that.rules,
		Winner:         that.winner,
		IsDraw:         that.isDraw,
	}

	for i := range that.boards {
		snapshot.Boards[i] = that.boards[i].Cells()
	}

	if that.lastMove != nil {
		lastMove := *that.lastMove
		snapshot.LastMove = &lastMove
	}

	return snapshot
}

// FromSnapshot - rebuilds a match, rejecting states no sequence of moves could reach.
func FromSnapshot(snapshot Snapshot) (*Match, error) {
	if !snapshot.CurrentPlayer.IsPlayer() {
		return nil, fmt.Errorf("%w: current player %q", ErrInvalidSnapshot, snapshot.CurrentPlayer)
	}

	if snapshot.Rules != RulesStandard && snapshot.Rules != RulesFreePlay {
		return nil, fmt.Errorf("%w: rules %d", ErrInvalidSnapshot, snapshot.Rules)
	}

	match := &Match{
		currentPlayer: snapshot.CurrentPlayer,
		rules:         snapshot.Rules,
	}

	for board := range BoardCells {
		for cell, mark := range snapshot.Boards[board] {
			if mark > MarkB {
				return nil, fmt.Errorf("%w: board %d cell %d holds mark %d", ErrInvalidSnapshot, board, cell, mark)
			}
		}
		match.boards[board] = SubBoard{cells: snapshot.Boards[board]}

		outcome, err := reconcileOutcome(board, snapshot.Outcomes[board], match.boards[board].outcome())
		if err != nil {
			return nil, err
		}
		match.meta.outcomes[board] = outcome
	}

	match.winner = match.meta.Winner()
	match.isDraw = match.winner == MarkNone && match.meta.AllDecided()

	if snapshot.Winner != match.winner {
		return nil, fmt.Errorf("%w: winner %q, meta-board says %q", ErrInvalidSnapshot, snapshot.Winner, match.winner)
	}

	if snapshot.IsDraw != match.isDraw {
		return nil, fmt.Errorf("%w: draw flag %t, meta-board says %t", ErrInvalidSnapshot, snapshot.IsDraw, match.isDraw)
	}

	active, err := validateActive(snapshot.ActiveSubBoard, &match.meta)
	if err != nil {
		return nil, err
	}
	match.activeBoard = active
	if match.rules == RulesFreePlay {
		match.activeBoard = AnyBoard
	}

	if snapshot.LastMove != nil {
		lastMove, err := validateLastMove(*snapshot.LastMove, match)
		if err != nil {
			return nil, err
		}
		match.lastMove = &lastMove
	}

	return match, nil
}

// reconcileOutcome - the cells are the source of truth; a stored outcome may only agree with them.
// An undecided outcome on a full line-less board is the legacy encoding of a draw.
func reconcileOutcome(board int, stored, derived Outcome) (Outcome, error) {
	if stored > OutcomeDrawn {
		return OutcomeUndecided, fmt.Errorf("%w: board %d outcome %d", ErrInvalidSnapshot, board, stored)
	}

	if stored == derived || stored == OutcomeUndecided {
		return derived, nil
	}

	return OutcomeUndecided, fmt.Errorf("%w: board %d outcome %s, cells say %s", ErrInvalidSnapshot, board, stored, derived)
}

func validateActive(active int, meta *MetaBoard) (int, error) {
	if active == AnyBoard {
		return AnyBoard, nil
	}

	if active < 0 || active >= BoardCells {
		return AnyBoard, fmt.Errorf("%w: active sub-board %d", ErrInvalidSnapshot, active)
	}

	if meta.Outcome(active).IsDecided() {
		return AnyBoard, fmt.Errorf("%w: active sub-board %d is already decided", ErrInvalidSnapshot, active)
	}

	return active, nil
}

func validateLastMove(lastMove LastMove, match *Match) (LastMove, error) {
	if lastMove.SubBoard < 0 || lastMove.SubBoard >= BoardCells || lastMove.Cell < 0 || lastMove.Cell >= BoardCells {
		return LastMove{}, fmt.Errorf("%w: last move (%d, %d) out of range", ErrInvalidSnapshot, lastMove.SubBoard, lastMove.Cell)
	}

	if !lastMove.Player.IsPlayer() {
		return LastMove{}, fmt.Errorf("%w: last move without player", ErrInvalidSnapshot)
	}

	if match.Cell(lastMove.SubBoard, lastMove.Cell) != lastMove.Player {
		return LastMove{}, fmt.Errorf("%w: last move (%d, %d) does not hold %s", ErrInvalidSnapshot, lastMove.SubBoard, lastMove.Cell, lastMove.Player)
	}

	return lastMove, nil
}
