package orch

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"impostor/internal/app"
	"impostor/internal/core"
	"impostor/internal/domain"
	"impostor/internal/protocol"
)

// Orchestrator ties the registry, the room store and the grace timers
// together. Adapters call it with a ConnID; everything below it speaks
// stable player identities.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomStore
	Policy   app.Policy
	Timers   *app.Scheduler

	GhostGrace time.Duration
	RoomGrace  time.Duration
}

func (o *Orchestrator) roomOf(cid core.ConnID) (domain.PlayerID, *core.Room, bool) {
	id, code, ok := o.Registry.Resolve(cid)
	if !ok || code == "" {
		return "", nil, false
	}
	room, ok := o.Rooms.Get(code)
	if !ok {
		return "", nil, false
	}
	return id, room, true
}

func (o *Orchestrator) broadcast(room *core.Room, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("broadcast marshal")
		return
	}
	res := room.Broadcast(b)
	o.applyPolicy(room, res)
}

func (o *Orchestrator) sendTo(room *core.Room, id domain.PlayerID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("sendTo marshal")
		return
	}
	if err := room.SendTo(id, b); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("player", string(id)).Msg("private send failed")
	}
}

func (o *Orchestrator) applyPolicy(room *core.Room, res core.PublishResult) {
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			// Kill the socket; the normal disconnect path then handles the
			// roster, so a kicked member still gets its ghost grace.
			o.Registry.CancelByIdentity(room.Code(), slow)
		case app.MarkSlow, app.DropFrame, app.NoAction:
		}
	}
}

func (o *Orchestrator) broadcastPlayers(room *core.Room) {
	o.broadcast(room, protocol.PlayersUpdated{
		Type:    protocol.TypePlayersUpdated,
		Players: room.PlayersSnapshot(),
	})
}

func (o *Orchestrator) broadcastConfig(room *core.Room) {
	o.broadcast(room, protocol.ConfigUpdated{
		Type:   protocol.TypeConfigUpdated,
		Config: room.ConfigSnapshot(),
	})
}
