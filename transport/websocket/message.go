package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and responses; each action reads the fields it needs.
type Payload struct {
	Player   *entity.Player   `json:"player,omitempty"`
	Match    *entity.Match    `json:"match,omitempty"`
	Rules    *tictactoe.Rules `json:"rules,omitempty"`
	Strength *bot.Strength    `json:"strength,omitempty"`
	SubBoard *int             `json:"sub_board,omitempty"`
	Cell     *int             `json:"cell,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// connection wraps a client socket. gorilla allows one concurrent writer, and timers write too.
type connection struct {
	socket *websocket.Conn
	mu     sync.Mutex
}

func newConnection(socket *websocket.Conn) *connection {
	return &connection{socket: socket}
}

func (that *connection) sendMessage(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.socket.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendError(action, errorMsg string) error {
	if err := that.sendMessage(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

// maskMatch hides the other players' session ids from the payload.
func maskMatch(match *entity.Match) *entity.Match {
	masked := *match
	masked.Players = nil

	return &masked
}

// isDecodeError reports a malformed frame body; the socket itself is still usable.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
