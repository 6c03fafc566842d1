package app

import (
	"sync"

	"impostor/internal/core"
	"impostor/internal/domain"
)

type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]*core.Room
}

func NewRoomManager() core.RoomStore {
	return &RoomManagerImpl{rooms: make(map[domain.RoomCode]*core.Room)}
}

func (f *RoomManagerImpl) GetOrCreate(code domain.RoomCode, creator domain.PlayerID) *core.Room {
	f.mu.RLock()
	room, ok := f.rooms[code]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[code]; ok {
		return room
	}
	room = core.NewRoom(code, creator)
	f.rooms[code] = room
	return room
}

func (f *RoomManagerImpl) Get(code domain.RoomCode) (*core.Room, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[code]
	return room, ok
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for code, r := range f.rooms {
		out = append(out, core.RoomInfo{
			Code:        code,
			PlayerCount: r.PlayerCount(),
			Status:      r.ConfigSnapshot().Status,
		})
	}
	return out
}

// RemoveIfEmpty holds the store lock across the emptiness check and the
// delete, so a sweep cannot drop a room a concurrent lookup already got a
// member into.
func (f *RoomManagerImpl) RemoveIfEmpty(code domain.RoomCode) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[code]
	if !ok || !room.Empty() {
		return false
	}
	delete(f.rooms, code)
	return true
}
