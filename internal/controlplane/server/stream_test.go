package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, h *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.URL, "http") + "/api/state/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestStreamSendsSnapshotOnConnect(t *testing.T) {
	h, _, _ := newTestServer(t, &stubExchange{})
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialStream(t, srv)

	var snap map[string]any
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, false, snap["bootstrapped"])
	assert.Equal(t, false, snap["order_dialog_open"])
	assert.NotNil(t, snap["balances"])
}

func TestStreamPushesOnStateChange(t *testing.T) {
	h, sess, _ := newTestServer(t, &stubExchange{})
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialStream(t, srv)

	var snap map[string]any
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, false, snap["order_dialog_open"])

	sess.OpenOrderDialog()

	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, true, snap["order_dialog_open"])
}
