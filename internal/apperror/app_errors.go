package apperror

import "errors"

var (
	ErrMatchFinished     = errors.New("match is already finished")
	ErrMatchIsNotStarted = errors.New("match is not started")
	ErrMatchAlreadyFull  = errors.New("match already has two players")
	ErrAlreadyInMatch    = errors.New("player is already in another match")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrIllegalMove       = errors.New("illegal move")
	ErrInvalidSnapshot   = errors.New("invalid snapshot")
	ErrNoLegalMoves      = errors.New("no legal moves")
	ErrStaleTurn         = errors.New("turn has already moved on")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
)
