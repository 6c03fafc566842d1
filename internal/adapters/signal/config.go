package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"impostor/internal/core"
	"impostor/internal/protocol"
)

func (ctl *SignalWSController) handleChangeMaxPlayers(
	cid core.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type payload struct {
		Type  string `json:"type"`
		Value int    `json:"value"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad change_max_players payload")
		ctl.sendJSON(conn, protocol.RoomError{
			Type: protocol.TypeRoomError, Code: "bad_payload", Message: "malformed payload",
		})
		return
	}
	if err := ctl.Orch.SetMaxPlayers(cid, p.Value); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *SignalWSController) handleChangeCategory(
	cid core.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type payload struct {
		Type     string `json:"type"`
		Category string `json:"category"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad change_category payload")
		ctl.sendJSON(conn, protocol.RoomError{
			Type: protocol.TypeRoomError, Code: "bad_payload", Message: "malformed payload",
		})
		return
	}
	if err := ctl.Orch.SetCategory(cid, p.Category); err != nil {
		ctl.sendError(conn, err)
	}
}
