package entity

import "github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"

const botPlayerPrefix = "bot:"

type Player struct {
	ID      string         `json:"id"`
	Mark    tictactoe.Mark `json:"mark,omitempty"`
	MatchID string         `json:"match_id,omitempty"`
	IsBot   bool           `json:"is_bot,omitempty"`
}

// NewBotPlayer - the computer opponent of a match. It lives only inside the match record.
func NewBotPlayer(matchID string, mark tictactoe.Mark) *Player {
	return &Player{
		ID:      botPlayerPrefix + matchID,
		Mark:    mark,
		MatchID: matchID,
		IsBot:   true,
	}
}

// Detach - clears the player's seat once its match is over.
func (that *Player) Detach() {
	that.Mark = tictactoe.MarkNone
	that.MatchID = ""
}
