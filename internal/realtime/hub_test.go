// internal/realtime/hub_test.go
package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/pkg/jwt"
	"gracehub-service/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type hubFixture struct {
	hub    *realtime.Hub
	tokens *jwt.Manager
	srv    *httptest.Server
	cancel context.CancelFunc
}

func newHubFixture(t *testing.T) *hubFixture {
	t.Helper()

	tokens, err := jwt.LoadAndBuild(jwt.Config{
		Issuer:     "gracehub",
		Audience:   "gracehub-admins",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		KID:        "test-key",
	})
	require.NoError(t, err)

	hub := realtime.NewHub(tokens.Verifier, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, err := hub.AuthenticateClient(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := realtime.NewClient(hub, conn, auth)
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))

	f := &hubFixture{hub: hub, tokens: tokens, srv: srv, cancel: cancel}
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return f
}

// connect dials, waits for the connected handshake, and joins the room.
func (f *hubFixture) connect(t *testing.T, adminID, name, role string) *websocket.Conn {
	t.Helper()

	token, _, err := f.tokens.Generator.GenerateAccessToken(adminID, role, []string{"all"})
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(f.srv)+"/?token="+token, nil)
	require.NoError(t, err)

	msg := readEvent(t, conn, rt.EventConnected)
	require.NotNil(t, msg)

	sendEvent(t, conn, rt.EventJoinAdmin, rt.JoinAdmin{AdminID: adminID, Name: name, Role: role})

	// Frames are handled in order per connection, so a pong here proves the
	// join above was processed.
	sendEvent(t, conn, rt.EventPing, nil)
	readEvent(t, conn, rt.EventPong)
	return conn
}

// readEvent reads frames until it sees the wanted event or times out.
func readEvent(t *testing.T, conn *websocket.Conn, want rt.EventType) *rt.Message {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	conn.SetReadDeadline(deadline)
	for time.Now().Before(deadline) {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("reading for %s: %v", want, err)
		}
		msg, err := rt.ParseMessage(payload)
		require.NoError(t, err)
		if msg.Event == want {
			return msg
		}
	}
	t.Fatalf("never received %s", want)
	return nil
}

func jsonUnmarshal(data json.RawMessage, v interface{}) error {
	return json.Unmarshal(data, v)
}

func TestHubRejectsBadToken(t *testing.T) {
	f := newHubFixture(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(f.srv)+"/?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubAnnouncesPresence(t *testing.T) {
	f := newHubFixture(t)

	connA := f.connect(t, "admin-a", "Admin A", "super_admin")
	defer connA.Close()

	connB := f.connect(t, "admin-b", "Admin B", "admin")

	// A hears about B joining; B never hears about itself.
	msg := readEvent(t, connA, rt.EventAdminLogin)
	var p rt.Presence
	require.NoError(t, jsonUnmarshal(msg.Data, &p))
	assert.Equal(t, "admin-b", p.AdminID)
	assert.Equal(t, "Admin B", p.Name)

	// B leaving is announced to A.
	connB.Close()
	msg = readEvent(t, connA, rt.EventAdminLogout)
	require.NoError(t, jsonUnmarshal(msg.Data, &p))
	assert.Equal(t, "admin-b", p.AdminID)
}

func TestHubBroadcastReachesJoinedClients(t *testing.T) {
	f := newHubFixture(t)

	connA := f.connect(t, "admin-a", "Admin A", "super_admin")
	defer connA.Close()
	connB := f.connect(t, "admin-b", "Admin B", "admin")
	defer connB.Close()

	assert.Eventually(t, func() bool { return f.hub.TotalClients() == 2 }, 2*time.Second, 10*time.Millisecond)

	f.hub.Broadcast(rt.EventMemberAdded, map[string]string{"name": "Jane Doe"})
	f.hub.BroadcastRefresh(rt.EventRefreshMembers)

	for _, conn := range []*websocket.Conn{connA, connB} {
		msg := readEvent(t, conn, rt.EventMemberAdded)
		assert.NotNil(t, msg)
		msg = readEvent(t, conn, rt.EventRefreshMembers)
		assert.Empty(t, msg.Data, "refresh signals carry no payload")
	}
}

func TestHubRejectsIdentityMismatchOnJoin(t *testing.T) {
	f := newHubFixture(t)

	token, _, err := f.tokens.Generator.GenerateAccessToken("admin-a", "admin", nil)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(f.srv)+"/?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	readEvent(t, conn, rt.EventConnected)
	sendEvent(t, conn, rt.EventJoinAdmin, rt.JoinAdmin{AdminID: "somebody-else", Name: "Mallory"})

	msg := readEvent(t, conn, rt.EventError)
	var errData rt.ErrorData
	require.NoError(t, jsonUnmarshal(msg.Data, &errData))
	assert.Equal(t, "identity_mismatch", errData.Code)
}

func TestHubPingPong(t *testing.T) {
	f := newHubFixture(t)

	conn := f.connect(t, "admin-a", "Admin A", "admin")
	defer conn.Close()

	sendEvent(t, conn, rt.EventPing, nil)
	readEvent(t, conn, rt.EventPong)
}
