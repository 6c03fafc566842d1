package signal

import (
	"errors"

	"impostor/internal/core"
	"impostor/internal/domain"
)

// errCode maps an operation error to the wire code plus a human message.
func errCode(err error) (string, string) {
	switch {
	case errors.Is(err, core.ErrRoomFull):
		return "room_full", "the room is full"
	case errors.Is(err, core.ErrRoundInProgress):
		return "round_in_progress", "a round is already in progress"
	case errors.Is(err, core.ErrNotEnoughPlayers):
		return "not_enough_players", "at least two players are needed"
	case errors.Is(err, core.ErrValueOutOfRange):
		return "value_out_of_range", "value is out of range"
	case errors.Is(err, core.ErrWrongPhase):
		return "wrong_phase", "operation is not valid in the current phase"
	case errors.Is(err, core.ErrNoActiveRound):
		return "no_active_round", "there is no active round"
	case errors.Is(err, core.ErrUnknownPlayer):
		return "not_in_room", "you are not in a room"
	case errors.Is(err, domain.ErrNameEmpty),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrIdentityLong):
		return "invalid_name", err.Error()
	default:
		return "internal", "something went wrong"
	}
}
