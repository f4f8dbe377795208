package game

import "errors"

var (
	ErrWrongPhase    = errors.New("action not allowed in current phase")
	ErrOutOfTurn     = errors.New("not your turn")
	ErrInvalidBid    = errors.New("bid out of range")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrTrickPending  = errors.New("trick awaiting resolution")
	ErrUnknownCard   = errors.New("unknown card")
)
