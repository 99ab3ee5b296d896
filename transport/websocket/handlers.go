package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	actionConnect = "connect"
	actionNew     = "match:new"
	actionJoin    = "match:join"
	actionTurn    = "match:turn"
	actionRules   = "match:rules"
	actionReset   = "match:reset"
	actionLeave   = "match:leave"

	// pushed by the server
	actionPass = "match:pass"
	actionBot  = "match:bot"
)

const errInternal = "internal error"

// clientErrors are safe to echo back; anything else is reported as errInternal.
var clientErrors = []error{
	apperror.ErrMatchFinished,
	apperror.ErrMatchIsNotStarted,
	apperror.ErrMatchAlreadyFull,
	apperror.ErrAlreadyInMatch,
	apperror.ErrNotYourTurn,
	apperror.ErrIllegalMove,
	apperror.ErrNotFound,
	entity.ErrUnknownMatchType,
}

func errorMessage(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return err.Error()
		}
	}

	return errInternal
}

// decodePayload - reads the payload and checks that it names a player.
func decodePayload(msg *Message, conn *connection) (*Payload, error) {
	var payload Payload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		if sendErr := conn.sendError(msg.Action, "invalid payload"); sendErr != nil {
			return nil, sendErr
		}
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Player == nil {
		if err := conn.sendError(msg.Action, "player is required"); err != nil {
			return nil, err
		}
		return nil, errPlayerMissing
	}

	return &payload, nil
}

var errPlayerMissing = errors.New("player is missing in payload")

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	player, err := that.matches.GetOrCreatePlayer(ctx, payload.Player.ID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return conn.sendError(msg.Action, "failed to create a new player")
	}

	that.register(player.ID, conn)

	response := Payload{Player: player}

	if player.MatchID != "" {
		match, err := that.matches.GetMatchByPlayerID(ctx, player.ID)
		if err != nil {
			log.Warn("failed to get match", "match_id", player.MatchID, "error", err)
		} else {
			response.Match = maskMatch(match)
		}
	}

	if err = conn.sendMessage(msg.Action, response); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "player_id", player.ID)

	return nil
}

func (that *Server) handleNewMatch(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewMatch")

	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	if payload.Match == nil {
		return conn.sendError(msg.Action, "match is required")
	}

	that.register(payload.Player.ID, conn)

	rules := tictactoe.RulesStandard
	if payload.Rules != nil {
		rules = *payload.Rules
	}

	strength := that.options.DefaultStrength
	if payload.Strength != nil {
		strength = *payload.Strength
	}

	match, err := that.matches.GetOrCreateMatch(ctx, payload.Player.ID, payload.Match.Type, rules, strength)
	if err != nil {
		log.Error("failed to create match", "type", payload.Match.Type, "error", err)
		return conn.sendError(msg.Action, errorMessage(err))
	}

	that.broadcast(msg.Action, match)
	that.afterChange(ctx, match)

	log.Info("match is ready", "match_id", match.ID, "type", match.Type)

	return nil
}

func (that *Server) handleJoinMatch(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinMatch")

	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	if payload.Match == nil || payload.Match.ID == "" {
		return conn.sendError(msg.Action, "match id is required")
	}

	that.register(payload.Player.ID, conn)

	log = log.With("player_id", payload.Player.ID, "match_id", payload.Match.ID)

	match, err := that.matches.JoinMatch(ctx, payload.Match.ID, payload.Player.ID)
	if err != nil {
		log.Error("failed to join match", "error", err)
		return conn.sendError(msg.Action, errorMessage(err))
	}

	that.broadcast(msg.Action, match)
	that.afterChange(ctx, match)

	log.Info("player joined match")

	return nil
}

func (that *Server) handleMatchTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleMatchTurn")

	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	if payload.SubBoard == nil || payload.Cell == nil {
		return conn.sendError(msg.Action, "sub_board and cell are required")
	}

	that.register(payload.Player.ID, conn)

	log = log.With("player_id", payload.Player.ID)

	match, err := that.matches.MakeTurn(ctx, payload.Player.ID, *payload.SubBoard, *payload.Cell)
	if err != nil {
		log.Warn("failed to make turn", "error", err)
		return conn.sendError(msg.Action, errorMessage(err))
	}

	that.broadcast(msg.Action, match)
	that.afterChange(ctx, match)

	log.Info("player made a turn", "match_id", match.ID)

	return nil
}

func (that *Server) handleMatchRules(ctx context.Context, msg *Message, conn *connection) error {
	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	if payload.Rules == nil {
		return conn.sendError(msg.Action, "rules are required")
	}

	that.register(payload.Player.ID, conn)

	match, err := that.matches.SetRules(ctx, payload.Player.ID, *payload.Rules)
	if err != nil {
		return conn.sendError(msg.Action, errorMessage(err))
	}

	that.broadcast(msg.Action, match)
	that.afterChange(ctx, match)

	return nil
}

// handleMatchReset - restarts the board. Without rules in the payload the current rules are kept.
func (that *Server) handleMatchReset(ctx context.Context, msg *Message, conn *connection) error {
	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	that.register(payload.Player.ID, conn)

	var rules tictactoe.Rules
	if payload.Rules != nil {
		rules = *payload.Rules
	} else {
		current, err := that.matches.GetMatchByPlayerID(ctx, payload.Player.ID)
		if err != nil {
			return conn.sendError(msg.Action, errorMessage(err))
		}
		rules = current.State.Rules
	}

	match, err := that.matches.ResetMatch(ctx, payload.Player.ID, rules)
	if err != nil {
		return conn.sendError(msg.Action, errorMessage(err))
	}

	that.broadcast(msg.Action, match)
	that.afterChange(ctx, match)

	return nil
}

func (that *Server) handleMatchLeave(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleMatchLeave")

	payload, err := decodePayload(msg, conn)
	if err != nil {
		return err
	}

	that.register(payload.Player.ID, conn)

	match, err := that.matches.LeaveMatch(ctx, payload.Player.ID)
	if err != nil {
		log.Error("failed to leave match", "error", err)
		return conn.sendError(msg.Action, errorMessage(err))
	}

	that.broadcast(msg.Action, match)
	that.afterChange(ctx, match)

	log.Info("player left", "player_id", payload.Player.ID, "match_id", match.ID)

	return nil
}
