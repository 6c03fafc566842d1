package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"impostor/internal/core"
	"impostor/internal/domain"
)

type connEntry struct {
	Identity domain.PlayerID
	Room     domain.RoomCode
	Conn     core.SignalConnection
	Cancel   context.CancelFunc
}

// Registry maps live connections to their stable identity and current room.
// A connection is transient and an identity is not: reconnects create a new
// ConnID bound to the same PlayerID, and the old entry dies with its socket.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[core.ConnID]*connEntry)}
}

func (r *Registry) Bind(cid core.ConnID, identity domain.PlayerID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[cid] = &connEntry{Identity: identity, Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("identity", string(identity)).Msg("bound connection")
}

// SetIdentity rebinds a connection to a client-supplied identity. The
// upgrade path binds the cookie token first; a join payload may carry the
// client's own stable id and takes precedence.
func (r *Registry) SetIdentity(cid core.ConnID, id domain.PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[cid]
	if !ok {
		return false
	}
	e.Identity = id
	return true
}

func (r *Registry) SetRoom(cid core.ConnID, code domain.RoomCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[cid]
	if !ok {
		return false
	}
	e.Room = code
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("room", string(code)).Msg("updated room")
	return true
}

func (r *Registry) ClearRoom(cid core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[cid]; ok {
		e.Room = ""
	}
}

// Resolve returns the identity and room a connection is bound to.
func (r *Registry) Resolve(cid core.ConnID) (domain.PlayerID, domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[cid]
	if !ok {
		return "", "", false
	}
	return e.Identity, e.Room, true
}

func (r *Registry) Conn(cid core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[cid]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

func (r *Registry) Unbind(cid core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, cid)
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("unbound connection")
}

// CancelByIdentity tears down whichever connection currently carries the
// given identity in the given room. Used when policy kicks a slow consumer.
func (r *Registry) CancelByIdentity(code domain.RoomCode, id domain.PlayerID) bool {
	r.mu.RLock()
	var found *connEntry
	for _, e := range r.conns {
		if e.Room == code && e.Identity == id {
			found = e
			break
		}
	}
	r.mu.RUnlock()
	if found == nil {
		return false
	}
	if found.Cancel != nil {
		found.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("identity", string(id)).Str("room", string(code)).Msg("canceled connection by identity")
	return true
}
