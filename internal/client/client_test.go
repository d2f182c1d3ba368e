// internal/client/client_test.go
package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gracehub-service/internal/client"
	"gracehub-service/internal/domain/admin"
	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/pkg/tokenstore"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/session"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthAPI struct {
	grant *admin.AuthGrant
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (*admin.AuthGrant, error) {
	return s.grant, nil
}
func (s *stubAuthAPI) VerifyToken(ctx context.Context, accessToken string) (*admin.Profile, error) {
	return s.grant.Admin, nil
}
func (s *stubAuthAPI) RefreshToken(ctx context.Context, refreshToken string) (*admin.AuthGrant, error) {
	return s.grant, nil
}
func (s *stubAuthAPI) Logout(ctx context.Context, refreshToken string) error { return nil }
func (s *stubAuthAPI) UpdateProfile(ctx context.Context, accessToken string, req *admin.UpdateProfileRequest) (*admin.Profile, error) {
	return s.grant.Admin, nil
}
func (s *stubAuthAPI) ChangePassword(ctx context.Context, accessToken string, req *admin.ChangePasswordRequest) error {
	return nil
}

// TestDashboardBindsChannelToSession checks the shell contract: channel
// live exactly while the session is authenticated.
func TestDashboardBindsChannelToSession(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	joins := make(chan rt.JoinAdmin, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := rt.ParseMessage(payload)
			if err != nil || msg.Event != rt.EventJoinAdmin {
				continue
			}
			var join rt.JoinAdmin
			if jsonErr := json.Unmarshal(msg.Data, &join); jsonErr == nil {
				joins <- join
			}
		}
	}))
	defer srv.Close()

	api := &stubAuthAPI{grant: &admin.AuthGrant{
		Admin: &admin.Profile{
			ID:       "01HDASH",
			Name:     "Super Administrator",
			Role:     admin.RoleSuperAdmin,
			IsActive: true,
		},
		AccessToken:  "acc-1",
		RefreshToken: "ref-1",
	}}

	controller := session.NewController(api, tokenstore.New(nil, nil), time.Hour, nil)
	channel := realtime.NewChannel(realtime.ChannelConfig{
		URL: "ws" + strings.TrimPrefix(srv.URL, "http"),
	}, nil)

	dash := client.NewDashboard(controller, channel, nil)
	defer dash.Close()

	require.True(t, controller.Login(context.Background(), "a", "b").Success)

	assert.Eventually(t, func() bool { return channel.IsConnected() }, 2*time.Second, 10*time.Millisecond)

	select {
	case join := <-joins:
		assert.Equal(t, "01HDASH", join.AdminID)
		assert.Equal(t, "super_admin", join.Role)
	case <-time.After(2 * time.Second):
		t.Fatal("join-admin never announced")
	}

	controller.Logout(context.Background(), false)

	assert.Eventually(t, func() bool { return !channel.IsConnected() }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, channel.Notifications().Len())
}
