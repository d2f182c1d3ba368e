// internal/realtime/channel_test.go
package realtime_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func sendEvent(t *testing.T, conn *websocket.Conn, event rt.EventType, data interface{}) {
	t.Helper()
	msg, err := rt.NewMessage(event, data)
	require.NoError(t, err)
	payload, err := msg.ToJSON()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
}

func TestEmitWhileDisconnected(t *testing.T) {
	ch := realtime.NewChannel(realtime.ChannelConfig{URL: "ws://127.0.0.1:1/ws"}, nil)
	assert.False(t, ch.Emit(rt.EventPing, nil))
	assert.False(t, ch.IsConnected())
}

func TestChannelRoundTrip(t *testing.T) {
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		// First inbound frame must be the presence announcement.
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		msg, err := rt.ParseMessage(payload)
		require.NoError(t, err)
		assert.Equal(t, rt.EventJoinAdmin, msg.Event)

		sendEvent(t, conn, rt.EventMemberAdded, map[string]string{"name": "Jane Doe"})
		sendEvent(t, conn, rt.EventRefreshMembers, nil)
		sendEvent(t, conn, rt.EventSystemNotification, rt.SystemNotification{
			Title:    "Maintenance",
			Message:  "Tonight at 10pm",
			Priority: "high",
		})
		// Peer presence; also one for ourselves, which must be filtered out.
		sendEvent(t, conn, rt.EventAdminLogin, rt.Presence{AdminID: "peer-2", Name: "Peer Admin"})
		sendEvent(t, conn, rt.EventAdminLogin, rt.Presence{AdminID: "admin-1", Name: "Self"})

		<-done
	}))
	defer srv.Close()
	defer close(done)

	ch := realtime.NewChannel(realtime.ChannelConfig{URL: wsURL(srv)}, nil)

	signalHits := make(chan struct{}, 1)
	ch.Signals().Subscribe(rt.EventRefreshMembers, func() {
		select {
		case signalHits <- struct{}{}:
		default:
		}
	})

	alerts := make(chan rt.SystemNotification, 1)
	ch.OnAlert(func(n rt.SystemNotification) { alerts <- n })

	ch.Connect(rt.JoinAdmin{AdminID: "admin-1", Name: "Super Administrator", Role: "super_admin"})

	assert.Eventually(t, func() bool { return ch.IsConnected() }, 2*time.Second, 10*time.Millisecond)

	// member-added + system-notification + peer presence; self presence skipped.
	assert.Eventually(t, func() bool {
		return ch.Notifications().Len() == 3
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case <-signalHits:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh-members signal never published")
	}

	select {
	case alert := <-alerts:
		assert.Equal(t, "Maintenance", alert.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("high-priority alert never raised")
	}

	all := ch.Notifications().All()
	messages := make([]string, 0, len(all))
	for _, n := range all {
		messages = append(messages, n.Message)
	}
	assert.Contains(t, messages, "Peer Admin signed in")
	assert.NotContains(t, messages, "Self signed in")

	assert.True(t, ch.Emit(rt.EventPing, nil))

	// Disconnect tears everything down: connection, feed, outbound path.
	ch.Disconnect()
	assert.False(t, ch.IsConnected())
	assert.Equal(t, 0, ch.Notifications().Len())
	assert.False(t, ch.Emit(rt.EventPing, nil))
}

func TestDisconnectCancelsPendingReconnect(t *testing.T) {
	// A server that is already gone: every dial fails immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := wsURL(srv)
	srv.Close()

	ch := realtime.NewChannel(realtime.ChannelConfig{
		URL:        url,
		MaxRetries: 5,
		BaseDelay:  40 * time.Millisecond,
		MaxDelay:   40 * time.Millisecond,
	}, nil)

	ch.Connect(rt.JoinAdmin{AdminID: "admin-1"})
	time.Sleep(20 * time.Millisecond) // first dial fails, retry timer pending
	ch.Disconnect()

	// Well past several retry windows: nothing may have happened.
	time.Sleep(250 * time.Millisecond)
	assert.False(t, ch.IsConnected())
	assert.Equal(t, 0, ch.Notifications().Len())
}

func TestReconnectAbandonedAfterMaxRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := wsURL(srv)
	srv.Close()

	ch := realtime.NewChannel(realtime.ChannelConfig{
		URL:        url,
		MaxRetries: 2,
		BaseDelay:  5 * time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
	}, nil)

	var unavailable atomic.Bool
	ch.OnUnavailable(func() { unavailable.Store(true) })

	ch.Connect(rt.JoinAdmin{AdminID: "admin-1"})

	assert.Eventually(t, func() bool { return unavailable.Load() }, 2*time.Second, 10*time.Millisecond)

	all := ch.Notifications().All()
	require.NotEmpty(t, all)
	assert.Equal(t, "Real-time updates unavailable", all[0].Title)

	// The giving-up notice sticks around; no further dials revive it.
	time.Sleep(100 * time.Millisecond)
	assert.False(t, ch.IsConnected())
	assert.Equal(t, 1, ch.Notifications().Len())
}
