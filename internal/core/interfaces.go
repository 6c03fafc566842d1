package core

import "impostor/internal/domain"

// Frame is a marshaled wire payload, ready for the transport.
type Frame []byte

// ConnID identifies one live transport session. A player gets a new ConnID
// on every reconnect; domain.PlayerID is the stable handle.
type ConnID string

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure to the orchestrator.
type PublishResult struct {
	SentTo  int
	Dropped []domain.PlayerID
}

// RoleView is one player's private slice of an active round.
type RoleView struct {
	ID   domain.PlayerID
	Role domain.Role
	Word string
}

// RoomStore owns the roomCode -> Room mapping. It is the single source of
// truth for rooms; nothing else creates or deletes them.
type RoomStore interface {
	GetOrCreate(code domain.RoomCode, creator domain.PlayerID) *Room
	Get(code domain.RoomCode) (*Room, bool)
	// RemoveIfEmpty deletes the room only while its roster is empty; the
	// emptiness check and the delete are one atomic step against lookups.
	RemoveIfEmpty(code domain.RoomCode) bool
	List() []RoomInfo
}

type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	PlayerCount int             `json:"player_count"`
	Status      domain.Status   `json:"status"`
}
