package orch

import (
	"errors"

	"github.com/rs/zerolog/log"

	"impostor/internal/core"
	"impostor/internal/domain"
	"impostor/internal/protocol"
	"impostor/internal/words"
)

// Game operations. Admin-gated ones from a non-admin are dropped without a
// reply; everything else surfaces as an error for the adapter to report.

func (o *Orchestrator) ToggleReady(cid core.ConnID) error {
	id, room, ok := o.roomOf(cid)
	if !ok {
		return core.ErrUnknownPlayer
	}
	if err := room.ToggleReady(id); err != nil {
		return err
	}
	o.broadcastPlayers(room)
	return nil
}

func (o *Orchestrator) SetMaxPlayers(cid core.ConnID, v int) error {
	id, room, ok := o.roomOf(cid)
	if !ok {
		return core.ErrUnknownPlayer
	}
	err := room.SetMaxPlayers(id, v)
	if errors.Is(err, core.ErrNotAdmin) {
		return nil
	}
	if err != nil {
		return err
	}
	o.broadcastConfig(room)
	return nil
}

func (o *Orchestrator) SetCategory(cid core.ConnID, category string) error {
	id, room, ok := o.roomOf(cid)
	if !ok {
		return core.ErrUnknownPlayer
	}
	err := room.SetCategory(id, category)
	if errors.Is(err, core.ErrNotAdmin) {
		return nil
	}
	if err != nil {
		return err
	}
	o.broadcastConfig(room)
	return nil
}

// StartGame begins the first round of a game, out of the lobby.
func (o *Orchestrator) StartGame(cid core.ConnID) error {
	return o.startRound(cid, domain.StatusLobby)
}

// NextRound begins a fresh round directly from the reveal screen, with a
// new word and a new impostor draw.
func (o *Orchestrator) NextRound(cid core.ConnID) error {
	return o.startRound(cid, domain.StatusRevealed)
}

func (o *Orchestrator) startRound(cid core.ConnID, from domain.Status) error {
	id, room, ok := o.roomOf(cid)
	if !ok {
		return core.ErrUnknownPlayer
	}
	word := words.Pick(room.ConfigSnapshot().Category)
	views, err := room.StartRound(id, from, word)
	if errors.Is(err, core.ErrNotAdmin) {
		return nil
	}
	if err != nil {
		return err
	}
	o.broadcastConfig(room)
	for _, v := range views {
		o.sendTo(room, v.ID, protocol.RoundStarted{
			Type: protocol.TypeRoundStarted,
			Role: v.Role,
			Word: v.Word,
		})
	}
	log.Info().Str("module", "orch").Str("room", string(room.Code())).Msg("round dealt")
	return nil
}

func (o *Orchestrator) RevealGame(cid core.ConnID) error {
	id, room, ok := o.roomOf(cid)
	if !ok {
		return core.ErrUnknownPlayer
	}
	impostorName, word, err := room.Reveal(id)
	if errors.Is(err, core.ErrNotAdmin) {
		return nil
	}
	if err != nil {
		return err
	}
	o.broadcastConfig(room)
	o.broadcast(room, protocol.RoundRevealed{
		Type:         protocol.TypeRoundRevealed,
		ImpostorName: impostorName,
		SecretWord:   word,
	})
	return nil
}

func (o *Orchestrator) ReturnToLobby(cid core.ConnID) error {
	id, room, ok := o.roomOf(cid)
	if !ok {
		return core.ErrUnknownPlayer
	}
	err := room.ReturnToLobby(id)
	if errors.Is(err, core.ErrNotAdmin) {
		return nil
	}
	if err != nil {
		return err
	}
	o.broadcast(room, protocol.LobbyReset{Type: protocol.TypeLobbyReset})
	o.broadcastPlayers(room)
	o.broadcastConfig(room)
	return nil
}
