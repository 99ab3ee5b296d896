package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

// afterChange - schedules whatever the new state waits on: the bot's move or the turn timer.
func (that *Server) afterChange(ctx context.Context, match *entity.Match) {
	if !match.IsOngoing() {
		that.stopTimer(match.ID)
		return
	}

	if match.IsBotTurn() {
		that.stopTimer(match.ID)
		that.scheduleBot(ctx, match.ID)
		return
	}

	that.armTimer(ctx, match)
}

// scheduleBot - plays the bot's move after the thinking delay, off the socket loop.
func (that *Server) scheduleBot(ctx context.Context, matchID string) {
	log := that.logger.With("method", "scheduleBot", "match_id", matchID)

	time.AfterFunc(that.options.ThinkingDelay, func() {
		if ctx.Err() != nil {
			return
		}

		match, err := that.matches.BotTurn(ctx, matchID)
		if err != nil {
			log.Error("bot failed to move", "error", err)
			return
		}

		that.broadcast(actionBot, match)
		that.afterChange(ctx, match)
	})
}

// armTimer - (re)starts the pass timer of the match for the current turn.
func (that *Server) armTimer(ctx context.Context, match *entity.Match) {
	if that.options.TurnTimeout <= 0 {
		return
	}

	log := that.logger.With("method", "armTimer", "match_id", match.ID)

	matchID, turn := match.ID, match.Turn

	timer := time.AfterFunc(that.options.TurnTimeout, func() {
		if ctx.Err() != nil {
			return
		}

		passed, err := that.matches.PassTurn(ctx, matchID, turn)
		if errors.Is(err, apperror.ErrStaleTurn) {
			return
		}

		if err != nil {
			log.Warn("failed to pass turn", "turn", turn, "error", err)
			return
		}

		log.Info("turn passed on timeout", "turn", turn)

		that.broadcast(actionPass, passed)
		that.afterChange(ctx, passed)
	})

	that.timersMutex.Lock()
	if previous, ok := that.timers[matchID]; ok {
		previous.Stop()
	}
	that.timers[matchID] = timer
	that.timersMutex.Unlock()
}

func (that *Server) stopTimer(matchID string) {
	that.timersMutex.Lock()
	defer that.timersMutex.Unlock()

	if timer, ok := that.timers[matchID]; ok {
		timer.Stop()
		delete(that.timers, matchID)
	}
}

func (that *Server) stopTimers() {
	that.timersMutex.Lock()
	defer that.timersMutex.Unlock()

	for matchID, timer := range that.timers {
		timer.Stop()
		delete(that.timers, matchID)
	}
}
