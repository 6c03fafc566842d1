package domain

import "strings"

type RoomCode string

// NormalizeCode upper-cases a client-chosen room code so that "abcd" and
// "ABCD" address the same room.
func NormalizeCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

type Status string

const (
	StatusLobby    Status = "lobby"
	StatusPlaying  Status = "playing"
	StatusRevealed Status = "revealed"
)

const (
	MinMaxPlayers     = 1
	MaxMaxPlayers     = 15
	DefaultMaxPlayers = 10
	DefaultCategory   = "Footballers"
)

// Config is the admin-controlled part of a room.
type Config struct {
	MaxPlayers int      `json:"maxPlayers"`
	Category   string   `json:"category"`
	AdminID    PlayerID `json:"adminId"`
	Status     Status   `json:"status"`
}

func DefaultConfig(admin PlayerID) Config {
	return Config{
		MaxPlayers: DefaultMaxPlayers,
		Category:   DefaultCategory,
		AdminID:    admin,
		Status:     StatusLobby,
	}
}

type Role string

const (
	RoleImpostor Role = "impostor"
	RoleCrew     Role = "crew"
)

// Round is one committed assignment of secret word and impostor. It is
// immutable once stored on a room; reconnects replay it, never re-roll it.
// ImpostorName is the display name at commit time, kept so the reveal still
// has a name after the impostor left the roster.
type Round struct {
	SecretWord   string
	ImpostorID   PlayerID
	ImpostorName string
}

// ViewFor computes the private role view a given player receives.
// The impostor never sees the word.
func (r Round) ViewFor(id PlayerID) (Role, string) {
	if id == r.ImpostorID {
		return RoleImpostor, ""
	}
	return RoleCrew, r.SecretWord
}
