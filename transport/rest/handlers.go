package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

type botMoveRequest struct {
	Snapshot *tictactoe.Snapshot `json:"snapshot"`
	Strength *bot.Strength       `json:"strength,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleBotMove - picks a move for the side to play in the posted snapshot. Nothing is stored.
func (that *Server) handleBotMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleBotMove", "request_id", middleware.GetReqID(r.Context()))

	var request botMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if request.Snapshot == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "snapshot is required"})
		return
	}

	strength := that.defaultStrength
	if request.Strength != nil {
		strength = *request.Strength
	}

	move, err := that.bot.SelectMove(*request.Snapshot, strength)
	switch {
	case errors.Is(err, apperror.ErrNoLegalMoves):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperror.ErrInvalidSnapshot), errors.Is(err, bot.ErrUnknownStrength):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case err != nil:
		log.Error("failed to select move", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	default:
		that.writeJSON(w, http.StatusOK, move)
	}
}

// handleArchive - finished matches, newest first.
func (that *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleArchive", "request_id", middleware.GetReqID(r.Context()))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	matches, err := that.archive.List(r.Context(), limit)
	if err != nil {
		log.Error("failed to list archive", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	if matches == nil {
		matches = []*entity.ArchivedMatch{}
	}

	that.writeJSON(w, http.StatusOK, matches)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
