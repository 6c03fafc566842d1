package core

import "errors"

var (
	ErrRoomFull         = errors.New("room full")
	ErrRoundInProgress  = errors.New("round in progress")
	ErrNotAdmin         = errors.New("not admin")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNoActiveRound    = errors.New("no active round")
	ErrWrongPhase       = errors.New("wrong phase")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrUnknownPlayer    = errors.New("unknown player")
)
