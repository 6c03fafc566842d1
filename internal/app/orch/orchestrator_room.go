package orch

import (
	"github.com/rs/zerolog/log"

	"impostor/internal/core"
	"impostor/internal/domain"
	"impostor/internal/protocol"
)

// Join puts a connection's identity into a room, creating the room on
// first use. Room membership is keyed by identity, so a second join from a
// new socket is a reconnect, not a duplicate player.
func (o *Orchestrator) Join(cid core.ConnID, code domain.RoomCode, identity domain.PlayerID, name string, conn core.SignalConnection) error {
	if prevID, prevCode, ok := o.Registry.Resolve(cid); ok && prevCode != "" && prevCode != code {
		o.removeFromRoom(prevCode, prevID)
		log.Info().Str("module", "orch").Str("cid", string(cid)).Str("from_room", string(prevCode)).Msg("left previous room on join")
	}
	o.Registry.SetIdentity(cid, identity)
	o.Timers.CancelSweep(code)

	var room *core.Room
	var res core.JoinResult
	for {
		room = o.Rooms.GetOrCreate(code, identity)
		r, err := room.Join(identity, name, conn)
		if err != nil {
			// A rejected join must not leave a freshly minted room behind
			// with no timer to reap it.
			if room.Empty() {
				o.Timers.ScheduleSweep(code, o.RoomGrace, func() {
					o.sweepRoom(code)
				})
			}
			return err
		}
		// An in-flight sweep may have dropped the room between the store
		// lookup and the join; the joiner must never land in an aggregate
		// the store no longer knows.
		if cur, ok := o.Rooms.Get(code); ok && cur == room {
			res = r
			break
		}
		room.Remove(identity)
	}

	o.Timers.CancelGhost(code, identity)
	o.Registry.SetRoom(cid, code)

	o.broadcastPlayers(room)
	o.broadcastConfig(room)
	if res.View != nil {
		o.sendTo(room, identity, protocol.RoundStarted{
			Type: protocol.TypeRoundStarted,
			Role: res.View.Role,
			Word: res.View.Word,
		})
	}
	return nil
}

// Disconnect handles a dropped socket: the player turns into a ghost and a
// grace timer decides whether it ever really left.
func (o *Orchestrator) Disconnect(cid core.ConnID, conn core.SignalConnection) {
	identity, code, ok := o.Registry.Resolve(cid)
	o.Registry.Unbind(cid)
	if !ok || code == "" {
		return
	}
	room, ok := o.Rooms.Get(code)
	if !ok {
		return
	}
	if !room.Disconnect(identity, conn) {
		return
	}
	o.broadcastPlayers(room)
	o.Timers.ScheduleGhost(code, identity, o.GhostGrace, func() {
		o.expireGhost(code, identity)
	})
}

// Leave is the voluntary exit: no grace, immediate roster removal.
func (o *Orchestrator) Leave(cid core.ConnID) {
	identity, code, ok := o.Registry.Resolve(cid)
	if !ok || code == "" {
		return
	}
	o.Registry.ClearRoom(cid)
	o.removeFromRoom(code, identity)
}

func (o *Orchestrator) removeFromRoom(code domain.RoomCode, id domain.PlayerID) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return
	}
	res := room.Remove(id)
	if !res.Removed {
		return
	}
	o.Timers.CancelGhost(code, id)
	o.afterRemoval(code, room, res)
}

func (o *Orchestrator) expireGhost(code domain.RoomCode, id domain.PlayerID) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return
	}
	res := room.RemoveGhost(id)
	if !res.Removed {
		return
	}
	log.Info().Str("module", "orch").Str("room", string(code)).Str("player", string(id)).Msg("ghost expired")
	o.afterRemoval(code, room, res)
}

func (o *Orchestrator) afterRemoval(code domain.RoomCode, room *core.Room, res core.RemoveResult) {
	if res.Empty {
		o.Timers.ScheduleSweep(code, o.RoomGrace, func() {
			o.sweepRoom(code)
		})
		return
	}
	o.broadcastPlayers(room)
	if res.AdminChanged {
		o.broadcastConfig(room)
	}
}

func (o *Orchestrator) sweepRoom(code domain.RoomCode) {
	if o.Rooms.RemoveIfEmpty(code) {
		log.Info().Str("module", "orch").Str("room", string(code)).Msg("swept empty room")
	}
}
