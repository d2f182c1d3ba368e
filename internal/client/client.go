// internal/client/client.go
package client

import (
	"sync"

	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/session"

	"go.uber.org/zap"
)

// Dashboard is the admin dashboard shell: it binds the session controller
// to the realtime channel. The channel is live exactly while the session is
// authenticated; everything else about the two halves stays decoupled.
type Dashboard struct {
	Session *session.Controller
	Channel *realtime.Channel

	logger      *zap.Logger
	unsubscribe func()

	mu        sync.Mutex
	wasAuthed bool
}

func NewDashboard(controller *session.Controller, channel *realtime.Channel, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{
		Session: controller,
		Channel: channel,
		logger:  logger,
	}
	d.unsubscribe = controller.Subscribe(d.onSession)
	return d
}

// onSession reacts to session transitions. Only the authenticated edge
// matters; repeated snapshots in the same state are no-ops.
func (d *Dashboard) onSession(sess session.Session) {
	authed := sess.IsAuthenticated && sess.Admin != nil

	d.mu.Lock()
	if authed == d.wasAuthed {
		d.mu.Unlock()
		return
	}
	d.wasAuthed = authed
	d.mu.Unlock()

	if authed {
		d.Channel.Connect(rt.JoinAdmin{
			AdminID: sess.Admin.ID,
			Name:    sess.Admin.Name,
			Role:    string(sess.Admin.Role),
		})
		return
	}
	d.Channel.Disconnect()
}

// Close detaches from the session and tears the channel down.
func (d *Dashboard) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	d.Channel.Disconnect()
}
