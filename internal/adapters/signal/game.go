package signal

import (
	"github.com/rs/zerolog/log"

	"impostor/internal/core"
)

func (ctl *SignalWSController) handleReady(cid core.ConnID, conn *WsSignalConn) {
	if err := ctl.Orch.ToggleReady(cid); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *SignalWSController) handleStartGame(cid core.ConnID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("start_game")
	if err := ctl.Orch.StartGame(cid); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *SignalWSController) handleRevealGame(cid core.ConnID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("reveal_game")
	if err := ctl.Orch.RevealGame(cid); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *SignalWSController) handleNextRound(cid core.ConnID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("next_round")
	if err := ctl.Orch.NextRound(cid); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *SignalWSController) handleReturnToLobby(cid core.ConnID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("return_to_lobby")
	if err := ctl.Orch.ReturnToLobby(cid); err != nil {
		ctl.sendError(conn, err)
	}
}
