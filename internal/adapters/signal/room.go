package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"impostor/internal/core"
	"impostor/internal/domain"
	"impostor/internal/protocol"
)

func (ctl *SignalWSController) handleJoin(
	cid core.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type        string `json:"type"`
		RoomCode    string `json:"roomCode"`
		DisplayName string `json:"displayName"`
		Identity    string `json:"identity,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, protocol.RoomError{
			Type: protocol.TypeRoomError, Code: "bad_payload", Message: "malformed join payload",
		})
		return
	}
	code := domain.NormalizeCode(p.RoomCode)
	if code == "" {
		ctl.sendJSON(conn, protocol.RoomError{
			Type: protocol.TypeRoomError, Code: "bad_payload", Message: "room code is required",
		})
		return
	}

	identity := domain.PlayerID(p.Identity)
	if identity == "" {
		// No client-side id; the cookie token carried at upgrade stays.
		id, _, ok := ctl.Orch.Registry.Resolve(cid)
		if !ok {
			return
		}
		identity = id
	}
	if len(identity) > domain.MaxPlayerIDLen {
		ctl.sendError(conn, domain.ErrIdentityLong)
		return
	}

	log.Info().Str("module", "signal").Str("cid", string(cid)).Str("room", string(code)).Msg("join_room")
	if err := ctl.Orch.Join(cid, code, identity, p.DisplayName, conn); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *SignalWSController) handleLeave(
	cid core.ConnID,
	conn *WsSignalConn,
) {
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("leave_room")
	ctl.Orch.Leave(cid)
	ctl.sendJSON(conn, protocol.Left{Type: protocol.TypeLeft})
}
