package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleStream pushes a state snapshot to the renderer over a websocket:
// one on connect, then one per session change signal. The session's
// change channel carries a single buffered signal, so the stream supports
// one renderer connection; a second connection competes for signals.
func (s *Server) handleStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// drain reads so a client close ends the stream
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(s.stateSnapshot()); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-s.cfg.Session.Changed():
			if err := conn.WriteJSON(s.stateSnapshot()); err != nil {
				return
			}
		}
	}
}

func (s *Server) stateSnapshot() gin.H {
	sess := s.cfg.Session
	ident := sess.Identity()
	return gin.H{
		"bootstrapped":      !ident.IsZero(),
		"pubkey":            ident.Pubkey,
		"order_dialog_open": sess.OrderDialogOpen(),
		"wallet_creating":   sess.WalletCreating(),
		"balances":          sess.Balances(),
		"wallets":           sess.Wallets(),
		"deposits":          sess.DepositAddresses(),
	}
}
