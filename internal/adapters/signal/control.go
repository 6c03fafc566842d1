package signal

import "impostor/internal/protocol"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	ctl.sendJSON(conn, protocol.Pong{Type: protocol.TypePong})
}
