package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/events", hub.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHubBroadcastsLifecycleEvents(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)

	ev := readEvent(t, conn)
	assert.Equal(t, "connected", ev.Type)

	// The hub registers the client before the welcome message, so the
	// broadcast below is guaranteed to reach it.
	hub.SessionActivated("srf_1", "sess_1")
	ev = readEvent(t, conn)
	assert.Equal(t, "session_activated", ev.Type)
	assert.Equal(t, "srf_1", ev.SurfaceID)
	assert.Equal(t, "sess_1", ev.SessionID)

	hub.SessionKilled("srf_1", "sess_1")
	ev = readEvent(t, conn)
	assert.Equal(t, "session_killed", ev.Type)

	hub.SurfaceReclaimed("srf_1", "")
	ev = readEvent(t, conn)
	assert.Equal(t, "surface_reclaimed", ev.Type)
	assert.Empty(t, ev.SessionID)
}

func TestClientCountDropsOnDisconnect(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)
	_ = readEvent(t, conn) // welcome

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}
