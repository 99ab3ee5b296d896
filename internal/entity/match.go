package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

var (
	ErrUnknownMatchStatus = errors.New("unknown match status")
	ErrUnknownMatchType   = errors.New("unknown match type")
)

// Match is a session around one engine snapshot: who plays, how far it got, and whether it is over.
type Match struct {
	ID       string             `json:"id"`
	State    tictactoe.Snapshot `json:"state"`
	Status   string             `json:"status"`
	Type     string             `json:"type,omitempty"`
	Strength bot.Strength       `json:"strength"`
	Players  []*Player          `json:"players,omitempty"`
	Turn     int                `json:"turn"`
}

func NewMatch(id, matchType string, rules tictactoe.Rules) *Match {
	return &Match{
		ID:     id,
		State:  tictactoe.NewMatch(rules).Snapshot(),
		Status: StatusWaiting,
		Type:   matchType,
	}
}

// ValidateType - checks a client supplied match type.
func ValidateType(matchType string) error {
	switch matchType {
	case PublicType, PrivateType, WithBotType:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMatchType, matchType)
	}
}

// Engine - restores the engine from the stored snapshot.
func (that *Match) Engine() (*tictactoe.Match, error) {
	engine, err := tictactoe.FromSnapshot(that.State)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", that.ID, err)
	}

	return engine, nil
}

// commit - stores the engine state, counts the turn and finishes the match when the engine is done.
func (that *Match) commit(engine *tictactoe.Match) {
	that.State = engine.Snapshot()
	that.Turn++

	if !engine.IsInProgress() {
		that.Status = StatusFinished
	}
}

// MakeTurn - plays mark at (subBoard, cell). Rejected moves leave the match untouched.
func (that *Match) MakeTurn(mark tictactoe.Mark, subBoard, cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	engine, err := that.Engine()
	if err != nil {
		return err
	}

	if engine.CurrentPlayer() != mark {
		return apperror.ErrNotYourTurn
	}

	// passing is reserved for the turn timer
	if subBoard == tictactoe.PassIndex && cell == tictactoe.PassIndex {
		return fmt.Errorf("%w: pass is not a move", apperror.ErrIllegalMove)
	}

	if !engine.ApplyMove(subBoard, cell) {
		return fmt.Errorf("%w: sub-board %d cell %d", apperror.ErrIllegalMove, subBoard, cell)
	}

	that.commit(engine)

	return nil
}

// PassTurn - skips the current player's turn. turn must match the counter the caller saw
// when it armed its timer, so a late expiry cannot skip the next player.
func (that *Match) PassTurn(turn int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if turn != that.Turn {
		return fmt.Errorf("%w: expected %d, got %d", apperror.ErrStaleTurn, that.Turn, turn)
	}

	engine, err := that.Engine()
	if err != nil {
		return err
	}

	if !engine.PassTurn() {
		return apperror.ErrMatchFinished
	}

	that.commit(engine)

	return nil
}

func (that *Match) SetRules(rules tictactoe.Rules) error {
	if that.IsFinished() {
		return apperror.ErrMatchFinished
	}

	engine, err := that.Engine()
	if err != nil {
		return err
	}

	engine.SetRules(rules)
	that.State = engine.Snapshot()

	return nil
}

// Reset - starts the board over with rules, keeping the players and their marks.
func (that *Match) Reset(rules tictactoe.Rules) {
	engine := tictactoe.NewMatch(rules)

	that.State = engine.Snapshot()
	that.Turn++

	if len(that.Players) == 2 {
		that.Status = StatusOngoing
	} else {
		that.Status = StatusWaiting
	}
}

func (that *Match) CurrentMark() tictactoe.Mark {
	return that.State.CurrentPlayer
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrMatchIsNotStarted
	case that.IsFinished():
		return apperror.ErrMatchFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMatchStatus, that.Status)
	}
}

func (that *Match) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Match) IsWithBot() bool {
	return that.Type == WithBotType
}

// IsBotTurn - reports whether an ongoing bot match waits on the bot.
func (that *Match) IsBotTurn() bool {
	if !that.IsWithBot() || !that.IsOngoing() {
		return false
	}

	player := that.PlayerByMark(that.CurrentMark())

	return player != nil && player.IsBot
}

func (that *Match) PlayerByMark(mark tictactoe.Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

// Result - "A", "B", "draw", or "" while the match is still being played.
func (that *Match) Result() string {
	switch {
	case that.State.Winner.IsPlayer():
		return that.State.Winner.String()
	case that.State.IsDraw:
		return "draw"
	default:
		return ""
	}
}

// GetRandomMarks - hands out A and B in random order.
func (that *Match) GetRandomMarks() (tictactoe.Mark, tictactoe.Mark) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return tictactoe.MarkA, tictactoe.MarkB
	}
	return tictactoe.MarkB, tictactoe.MarkA
}
