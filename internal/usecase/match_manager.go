package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/pkg"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

var ErrPlayerNotInMatch = fmt.Errorf("player is not in a match: %w", apperror.ErrNotFound)

// matchIDAttempts bounds how many fresh ids createMatch draws before giving up on collisions.
const matchIDAttempts = 5

type playerRepoDep interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type matchRepoDep interface {
	Create(ctx context.Context, match *entity.Match) error
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepoDep interface {
	Save(ctx context.Context, match *entity.ArchivedMatch) error
}

type botDep interface {
	SelectMove(snapshot tictactoe.Snapshot, strength bot.Strength) (tictactoe.Move, error)
}

// MatchManager owns every state change of a match: it restores the engine from the stored
// snapshot, applies one operation and stores the result. Operations on one match are serialized.
type MatchManager struct {
	logger      *slog.Logger
	playerRepo  playerRepoDep
	matchRepo   matchRepoDep
	archiveRepo archiveRepoDep
	bot         botDep

	locks *matchLocks
	now   func() time.Time
}

func NewMatchManager(
	logger *slog.Logger,
	playerRepo playerRepoDep,
	matchRepo matchRepoDep,
	archiveRepo archiveRepoDep,
	bot botDep,
) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match_manager"),

		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		archiveRepo: archiveRepo,
		bot:         bot,

		locks: newMatchLocks(),
		now:   time.Now,
	}
}

func (that *MatchManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		// the session expired; hand out a fresh one
		return that.GetOrCreatePlayer(ctx, "")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateMatch - returns the player's current match, or opens a new one.
// A bot match starts right away with marks handed out at random.
func (that *MatchManager) GetOrCreateMatch(
	ctx context.Context,
	playerID, matchType string,
	rules tictactoe.Rules,
	strength bot.Strength,
) (*entity.Match, error) {
	if err := entity.ValidateType(matchType); err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID != "" {
		existingMatch, err := that.matchRepo.GetByID(ctx, player.MatchID)
		switch {
		case err == nil:
			return existingMatch, nil
		case errors.Is(err, apperror.ErrInvalidSnapshot):
			that.dropCorruptMatch(ctx, player.MatchID, err)
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("failed to get match: %w", err)
		}

		// the match is gone, the player is free again
		player.Detach()
	}

	newMatch, err := that.createMatch(ctx, player, matchType, rules, strength)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return newMatch, nil
}

func (that *MatchManager) JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error) {
	unlock := that.locks.lock(matchID)
	defer unlock()

	existingMatch, err := that.getMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID == existingMatch.ID {
		return existingMatch, nil
	}

	if player.MatchID != "" {
		return nil, fmt.Errorf("%w: match id %s", apperror.ErrAlreadyInMatch, player.MatchID)
	}

	if len(existingMatch.Players) >= 2 {
		return nil, fmt.Errorf("%w: match id %s", apperror.ErrMatchAlreadyFull, matchID)
	}

	player.MatchID = existingMatch.ID
	player.Mark = tictactoe.MarkB
	if len(existingMatch.Players) == 1 {
		player.Mark = existingMatch.Players[0].Mark.Opponent()
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	existingMatch.Status = entity.StatusOngoing
	existingMatch.Players = append(existingMatch.Players, player)
	if err = that.updateMatch(ctx, existingMatch); err != nil {
		return nil, err
	}

	return existingMatch, nil
}

func (that *MatchManager) GetMatchByPlayerID(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID == "" {
		return nil, ErrPlayerNotInMatch
	}

	return that.getMatchByID(ctx, player.MatchID)
}

// MakeTurn - plays the player's mark. A move that ends the match archives it before returning.
func (that *MatchManager) MakeTurn(ctx context.Context, playerID string, subBoard, cell int) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID == "" {
		return nil, ErrPlayerNotInMatch
	}

	return that.mutate(ctx, player.MatchID, func(match *entity.Match) error {
		return match.MakeTurn(player.Mark, subBoard, cell)
	})
}

// BotTurn - lets the computer opponent move when it is its turn.
func (that *MatchManager) BotTurn(ctx context.Context, matchID string) (*entity.Match, error) {
	return that.mutate(ctx, matchID, func(match *entity.Match) error {
		if !match.IsBotTurn() {
			return apperror.ErrNotYourTurn
		}

		move, err := that.bot.SelectMove(match.State, match.Strength)
		if err != nil {
			return fmt.Errorf("bot failed to select move: %w", err)
		}

		return match.MakeTurn(match.CurrentMark(), move.SubBoard, move.Cell)
	})
}

// PassTurn - skips the current player after its turn timer ran out. turn is the counter
// the timer was armed with; a stale timer gets apperror.ErrStaleTurn.
func (that *MatchManager) PassTurn(ctx context.Context, matchID string, turn int) (*entity.Match, error) {
	return that.mutate(ctx, matchID, func(match *entity.Match) error {
		return match.PassTurn(turn)
	})
}

func (that *MatchManager) SetRules(ctx context.Context, playerID string, rules tictactoe.Rules) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID == "" {
		return nil, ErrPlayerNotInMatch
	}

	return that.mutate(ctx, player.MatchID, func(match *entity.Match) error {
		return match.SetRules(rules)
	})
}

// ResetMatch - restarts the board of the player's match under rules.
func (that *MatchManager) ResetMatch(ctx context.Context, playerID string, rules tictactoe.Rules) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID == "" {
		return nil, ErrPlayerNotInMatch
	}

	return that.mutate(ctx, player.MatchID, func(match *entity.Match) error {
		if match.IsFinished() {
			return apperror.ErrMatchFinished
		}

		match.Reset(rules)
		return nil
	})
}

// LeaveMatch - the player walks away; the match ends without a result.
func (that *MatchManager) LeaveMatch(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.MatchID == "" {
		return nil, ErrPlayerNotInMatch
	}

	return that.mutate(ctx, player.MatchID, func(match *entity.Match) error {
		match.Status = entity.StatusFinished
		return nil
	})
}

// EndMatch - archives a finished match, drops it from the live store and frees its players.
func (that *MatchManager) EndMatch(ctx context.Context, match *entity.Match) error {
	log := that.logger.With("method", "EndMatch", "match_id", match.ID)

	if err := that.archiveRepo.Save(ctx, entity.NewArchivedMatch(match, that.now())); err != nil {
		log.Error("failed to archive match", "error", err)
	}

	if err := that.matchRepo.DeleteByID(ctx, match.ID); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	for _, player := range match.Players {
		if player.IsBot {
			continue
		}

		player.Detach()

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "player_id", player.ID, "error", err)
		}
	}

	that.locks.forget(match.ID)

	log.Info("match ended", "result", match.Result(), "turns", match.Turn)

	return nil
}

// mutate - loads the match, applies fn and stores the outcome, ending the match when fn finished it.
// Nothing is stored when fn fails.
func (that *MatchManager) mutate(ctx context.Context, matchID string, fn func(*entity.Match) error) (*entity.Match, error) {
	unlock := that.locks.lock(matchID)
	defer unlock()

	match, err := that.getMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err = fn(match); err != nil {
		return nil, err
	}

	if match.IsFinished() {
		if err = that.EndMatch(ctx, match); err != nil {
			return nil, err
		}

		return match, nil
	}

	if err = that.updateMatch(ctx, match); err != nil {
		return nil, err
	}

	return match, nil
}

func (that *MatchManager) createMatch(
	ctx context.Context,
	player *entity.Player,
	matchType string,
	rules tictactoe.Rules,
	strength bot.Strength,
) (*entity.Match, error) {
	for range matchIDAttempts {
		newMatch := that.newMatch(player, pkg.GenerateMatchID(), matchType, rules, strength)

		err := that.matchRepo.Create(ctx, newMatch)
		if errors.Is(err, apperror.ErrAlreadyExists) {
			that.logger.Warn("match id collision", "match_id", newMatch.ID)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to store match: %w", err)
		}

		if err = that.updatePlayer(ctx, player); err != nil {
			return nil, err
		}

		return newMatch, nil
	}

	return nil, fmt.Errorf("no free match id after %d attempts: %w", matchIDAttempts, apperror.ErrAlreadyExists)
}

// newMatch - seats player in a fresh match. A bot match starts right away.
func (that *MatchManager) newMatch(
	player *entity.Player,
	matchID, matchType string,
	rules tictactoe.Rules,
	strength bot.Strength,
) *entity.Match {
	newMatch := entity.NewMatch(matchID, matchType, rules)
	player.MatchID = matchID
	player.Mark = tictactoe.MarkA

	if newMatch.IsWithBot() {
		playerMark, botMark := newMatch.GetRandomMarks()
		player.Mark = playerMark

		newMatch.Strength = strength
		newMatch.Status = entity.StatusOngoing
		newMatch.Players = []*entity.Player{player, entity.NewBotPlayer(matchID, botMark)}
	} else {
		newMatch.Players = []*entity.Player{player}
	}

	return newMatch
}

// dropCorruptMatch - removes a match record that no longer decodes, so its players can start over.
func (that *MatchManager) dropCorruptMatch(ctx context.Context, matchID string, cause error) {
	log := that.logger.With("method", "dropCorruptMatch", "match_id", matchID)
	log.Warn("dropping corrupt match", "error", cause)

	if err := that.matchRepo.DeleteByID(ctx, matchID); err != nil && !errors.Is(err, apperror.ErrNotFound) {
		log.Error("failed to delete corrupt match", "error", err)
	}

	that.locks.forget(matchID)
}

func (that *MatchManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *MatchManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *MatchManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *MatchManager) getMatchByID(ctx context.Context, id string) (*entity.Match, error) {
	existingMatch, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return existingMatch, nil
}

func (that *MatchManager) updateMatch(ctx context.Context, match *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	return nil
}

// matchLocks serializes operations per match id within this process.
type matchLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[string]*sync.Mutex)}
}

func (that *matchLocks) lock(id string) func() {
	that.mu.Lock()
	lock, ok := that.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[id] = lock
	}
	that.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (that *matchLocks) forget(id string) {
	that.mu.Lock()
	delete(that.locks, id)
	that.mu.Unlock()
}
