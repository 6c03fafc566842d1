package core

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"impostor/internal/domain"
)

// Room is a threadsafe in-memory room aggregate. It owns the roster, the
// config and the active round; it never closes adapter-owned connections.
// All mutation goes through its methods, so per-room operations are
// serialized by the mutex and observe each other in arrival order.
type Room struct {
	code domain.RoomCode

	mu      sync.Mutex
	players []*domain.Player
	conns   map[domain.PlayerID]SignalConnection
	config  domain.Config
	round   *domain.Round
}

func NewRoom(code domain.RoomCode, creator domain.PlayerID) *Room {
	return &Room{
		code:   code,
		conns:  make(map[domain.PlayerID]SignalConnection),
		config: domain.DefaultConfig(creator),
	}
}

func (r *Room) Code() domain.RoomCode { return r.code }

// JoinResult tells the caller which path a join took. View is set when the
// player rejoined a live round and must be re-sent its committed role.
type JoinResult struct {
	Rejoined bool
	View     *RoleView
}

// Join handles both the new-join and the reconnection path (spotting the
// difference by stable identity, not by connection).
func (r *Room) Join(id domain.PlayerID, name string, conn SignalConnection) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.findLocked(id); p != nil {
		// Reconnection: the player never left the roster, so capacity and
		// phase checks do not apply.
		if err := p.SetName(name); err != nil {
			return JoinResult{}, err
		}
		p.Online = true
		if r.config.Status == domain.StatusLobby {
			p.Ready = false
		}
		r.conns[id] = conn
		res := JoinResult{Rejoined: true}
		if r.config.Status == domain.StatusPlaying && r.round != nil {
			role, word := r.round.ViewFor(id)
			res.View = &RoleView{ID: id, Role: role, Word: word}
		}
		log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("player", string(id)).Msg("player reconnected")
		return res, nil
	}

	if len(r.players) >= r.config.MaxPlayers {
		return JoinResult{}, ErrRoomFull
	}
	if r.config.Status != domain.StatusLobby {
		return JoinResult{}, ErrRoundInProgress
	}

	p, err := domain.NewPlayer(id, name)
	if err != nil {
		return JoinResult{}, err
	}
	if len(r.players) == 0 {
		// The room was sitting empty in its deletion grace window; the
		// joiner takes it over.
		r.config.AdminID = id
	}
	r.players = append(r.players, p)
	r.conns[id] = conn
	r.assertAdminLocked()
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("player", string(id)).Msg("player joined")
	return JoinResult{}, nil
}

// Disconnect marks a player offline but keeps it on the roster for the
// ghost grace window. Readiness does not survive a dropped connection.
func (r *Room) Disconnect(id domain.PlayerID, conn SignalConnection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return false
	}
	// A reconnect may already have replaced the connection; only a
	// disconnect of the current one counts.
	if cur, ok := r.conns[id]; ok && cur != conn {
		return false
	}
	p.Online = false
	p.Ready = false
	delete(r.conns, id)
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("player", string(id)).Msg("player disconnected")
	return true
}

// RemoveResult reports the side effects of a roster removal.
type RemoveResult struct {
	Removed      bool
	AdminChanged bool
	Empty        bool
}

// Remove drops a player from the roster and runs admin failover: the
// oldest surviving join inherits the room.
func (r *Room) Remove(id domain.PlayerID) RemoveResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id, false)
}

// RemoveGhost removes the player only while it is still offline. A
// reconnect that slipped in ahead of an expiring grace timer wins.
func (r *Room) RemoveGhost(id domain.PlayerID) RemoveResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id, true)
}

func (r *Room) removeLocked(id domain.PlayerID, onlyOffline bool) RemoveResult {
	idx := -1
	for i, p := range r.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RemoveResult{}
	}
	if onlyOffline && r.players[idx].Online {
		return RemoveResult{}
	}
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.conns, id)

	res := RemoveResult{Removed: true, Empty: len(r.players) == 0}
	if r.config.AdminID == id && len(r.players) > 0 {
		r.config.AdminID = r.players[0].ID
		res.AdminChanged = true
		log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("admin", string(r.config.AdminID)).Msg("admin reassigned")
	}
	r.assertAdminLocked()
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("player", string(id)).Msg("player removed")
	return res
}

// ToggleReady flips the caller's ready flag, as the lobby button does.
func (r *Room) ToggleReady(id domain.PlayerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Ready = !p.Ready
	return nil
}

func (r *Room) SetMaxPlayers(by domain.PlayerID, v int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.AdminID != by {
		return ErrNotAdmin
	}
	if v < domain.MinMaxPlayers || v > domain.MaxMaxPlayers {
		return ErrValueOutOfRange
	}
	r.config.MaxPlayers = v
	return nil
}

// SetCategory accepts any string; unknown categories degrade to the
// fallback word pool at round start, they never block configuration.
func (r *Room) SetCategory(by domain.PlayerID, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.AdminID != by {
		return ErrNotAdmin
	}
	r.config.Category = category
	return nil
}

// StartRound commits a new round: the given secret word plus an impostor
// drawn uniformly from the current roster. from is the status the room must
// be in (lobby for a fresh game, revealed for the next round).
func (r *Room) StartRound(by domain.PlayerID, from domain.Status, word string) ([]RoleView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.AdminID != by {
		return nil, ErrNotAdmin
	}
	if r.config.Status != from {
		return nil, ErrWrongPhase
	}
	if len(r.players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	impostor := r.players[rand.Intn(len(r.players))]
	r.round = &domain.Round{SecretWord: word, ImpostorID: impostor.ID, ImpostorName: impostor.Name}
	r.config.Status = domain.StatusPlaying

	views := make([]RoleView, 0, len(r.players))
	for _, p := range r.players {
		role, w := r.round.ViewFor(p.ID)
		views = append(views, RoleView{ID: p.ID, Role: role, Word: w})
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Int("players", len(r.players)).Msg("round started")
	return views, nil
}

// Reveal closes the guessing phase. The impostor's display name is resolved
// now, not at round start, so a mid-round rename is reflected; a removed
// impostor keeps the name it had when the round was dealt. The stable id
// never goes on the wire.
func (r *Room) Reveal(by domain.PlayerID) (impostorName, word string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.AdminID != by {
		return "", "", ErrNotAdmin
	}
	if r.config.Status != domain.StatusPlaying {
		return "", "", ErrWrongPhase
	}
	if r.round == nil {
		return "", "", ErrNoActiveRound
	}
	name := r.round.ImpostorName
	if p := r.findLocked(r.round.ImpostorID); p != nil {
		name = p.Name
	}
	r.config.Status = domain.StatusRevealed
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Msg("round revealed")
	return name, r.round.SecretWord, nil
}

// ReturnToLobby clears the round and all readiness, from any phase.
func (r *Room) ReturnToLobby(by domain.PlayerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.AdminID != by {
		return ErrNotAdmin
	}
	r.round = nil
	r.config.Status = domain.StatusLobby
	for _, p := range r.players {
		p.Ready = false
	}
	return nil
}

// Broadcast fans a frame out to every online member. Slow consumers are
// reported back, not retried; delivery policy belongs to the orchestrator.
func (r *Room) Broadcast(frame Frame) PublishResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := PublishResult{}
	for _, p := range r.players {
		conn, ok := r.conns[p.ID]
		if !ok {
			continue
		}
		if err := conn.TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, p.ID)
			continue
		}
		res.SentTo++
	}
	return res
}

// SendTo delivers a frame to a single member's current connection. This is
// the only non-broadcast path in the system (private role payloads).
func (r *Room) SendTo(id domain.PlayerID, frame Frame) error {
	r.mu.Lock()
	conn, ok := r.conns[id]
	r.mu.Unlock()
	if !ok {
		return ErrUnknownPlayer
	}
	return conn.TrySend(frame)
}

func (r *Room) PlayersSnapshot() []domain.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out
}

func (r *Room) ConfigSnapshot() domain.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Room) Empty() bool { return r.PlayerCount() == 0 }

func (r *Room) findLocked(id domain.PlayerID) *domain.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// assertAdminLocked fails loudly on a dangling admin: the protocol
// guarantees it cannot happen, so reaching it is a bug, not a state to
// silently repair. An empty roster is exempt (the room is about to die).
func (r *Room) assertAdminLocked() {
	if len(r.players) == 0 {
		return
	}
	if r.findLocked(r.config.AdminID) == nil {
		panic(fmt.Sprintf("room %s: admin %s not on roster", r.code, r.config.AdminID))
	}
}
