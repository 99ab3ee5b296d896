package entity

import (
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

// ResultAbandoned marks archived matches that ended before a win or a draw.
const ResultAbandoned = "abandoned"

// ArchivedMatch is a finished match kept for history after it leaves the live store.
type ArchivedMatch struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Rules      tictactoe.Rules    `json:"rules"`
	Result     string             `json:"result"`
	Turns      int                `json:"turns"`
	State      tictactoe.Snapshot `json:"state"`
	FinishedAt time.Time          `json:"finished_at"`
}

func NewArchivedMatch(match *Match, finishedAt time.Time) *ArchivedMatch {
	result := match.Result()
	if result == "" {
		result = ResultAbandoned
	}

	return &ArchivedMatch{
		ID:         match.ID,
		Type:       match.Type,
		Rules:      match.State.Rules,
		Result:     result,
		Turns:      match.Turn,
		State:      match.State,
		FinishedAt: finishedAt,
	}
}
