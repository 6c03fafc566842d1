// Package protocol defines the server-to-client event payloads. Client
// payloads are parsed where they arrive, in the signal adapter.
package protocol

import "impostor/internal/domain"

// Event type tags, as they appear in the wire "type" field.
const (
	TypePlayersUpdated = "players_updated"
	TypeConfigUpdated  = "config_updated"
	TypeRoomError      = "room_error"
	TypeRoundStarted   = "round_started"
	TypeRoundRevealed  = "round_revealed"
	TypeLobbyReset     = "lobby_reset"
	TypeLeft           = "left"
	TypePong           = "pong"
)

// PlayersUpdated carries the full roster. Always broadcast, never diffed.
type PlayersUpdated struct {
	Type    string          `json:"type"`
	Players []domain.Player `json:"players"`
}

type ConfigUpdated struct {
	Type   string        `json:"type"`
	Config domain.Config `json:"config"`
}

type RoomError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoundStarted is the one private payload in the system. The impostor
// receives an empty word.
type RoundStarted struct {
	Type string      `json:"type"`
	Role domain.Role `json:"role"`
	Word string      `json:"word,omitempty"`
}

type RoundRevealed struct {
	Type         string `json:"type"`
	ImpostorName string `json:"impostorDisplayName"`
	SecretWord   string `json:"secretWord"`
}

type LobbyReset struct {
	Type string `json:"type"`
}

// Left acknowledges a voluntary leave to the leaver only; the remaining
// members learn about it through players_updated.
type Left struct {
	Type string `json:"type"`
}

type Pong struct {
	Type string `json:"type"`
}
