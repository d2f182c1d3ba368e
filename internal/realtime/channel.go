// internal/realtime/channel.go
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	rt "gracehub-service/internal/domain/realtime"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ChannelConfig tunes the client-side channel.
type ChannelConfig struct {
	URL        string
	MaxRetries int           // reconnect attempts before giving up
	BaseDelay  time.Duration // first reconnect delay; grows per attempt
	MaxDelay   time.Duration // delay ceiling
}

func (c *ChannelConfig) applyDefaults() {
	if c.MaxRetries == 0 {
		c.MaxRetries = 5
	}
	if c.BaseDelay == 0 {
		c.BaseDelay = time.Second
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = 30 * time.Second
	}
}

// Channel maintains a single live duplex connection while a session is
// authenticated, translating pushed events into local notifications and
// refresh signals. Connectivity is best effort: nothing here touches the
// session itself.
type Channel struct {
	cfg    ChannelConfig
	logger *zap.Logger
	dialer *websocket.Dialer

	notifications *NotificationBuffer
	signals       *SignalBus

	// onAlert fires for high-priority system notifications.
	onAlert func(rt.SystemNotification)
	// onUnavailable fires once the reconnect budget is exhausted.
	onUnavailable func()

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	epoch     int64 // bumped on every Connect/Disconnect; stale goroutines check it
	attempts  int
	retry     *time.Timer
	self      rt.JoinAdmin

	writeMu sync.Mutex
}

func NewChannel(cfg ChannelConfig, logger *zap.Logger) *Channel {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{
		cfg:           cfg,
		logger:        logger,
		dialer:        websocket.DefaultDialer,
		notifications: NewNotificationBuffer(DefaultNotificationCap),
		signals:       NewSignalBus(),
	}
}

// Notifications exposes the local feed.
func (c *Channel) Notifications() *NotificationBuffer { return c.notifications }

// Signals exposes the refresh signal bus.
func (c *Channel) Signals() *SignalBus { return c.signals }

// OnAlert registers the transient-alert callback for high-priority
// system notifications.
func (c *Channel) OnAlert(fn func(rt.SystemNotification)) { c.onAlert = fn }

// OnUnavailable registers the callback fired when reconnection is
// abandoned.
func (c *Channel) OnUnavailable(fn func()) { c.onUnavailable = fn }

// IsConnected reports whether a connection is currently live.
func (c *Channel) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect opens the channel for the given principal. Any previous
// connection or pending reconnect is torn down first, so rapid auth
// flapping never yields two live connections.
func (c *Channel) Connect(self rt.JoinAdmin) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.self = self
	c.attempts = 0
	c.stopRetryLocked()
	c.closeConnLocked()
	c.mu.Unlock()

	go c.dial(epoch)
}

// Disconnect tears the channel down unconditionally: live connection,
// pending reconnect timers, and the notification feed all go.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.epoch++
	c.attempts = 0
	c.stopRetryLocked()
	c.closeConnLocked()
	c.mu.Unlock()

	c.notifications.Clear()
}

// Emit sends an event to the server. Returns false when not connected;
// callers must not assume delivery.
func (c *Channel) Emit(event rt.EventType, data interface{}) bool {
	c.mu.Lock()
	conn := c.conn
	ok := c.connected
	c.mu.Unlock()
	if !ok || conn == nil {
		return false
	}

	msg, err := rt.NewMessage(event, data)
	if err != nil {
		c.logger.Error("failed to encode outbound event", zap.String("event", string(event)), zap.Error(err))
		return false
	}
	payload, err := msg.ToJSON()
	if err != nil {
		return false
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.logger.Warn("outbound write failed", zap.Error(err))
		return false
	}
	return true
}

func (c *Channel) dial(epoch int64) {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	url := c.cfg.URL
	c.mu.Unlock()

	conn, _, err := c.dialer.Dial(url, nil)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("realtime dial failed", zap.String("url", url), zap.Error(err))
		c.scheduleReconnect(epoch)
		return
	}

	c.conn = conn
	c.connected = true
	c.attempts = 0
	self := c.self
	c.mu.Unlock()

	c.logger.Info("realtime channel connected", zap.String("admin_id", self.AdminID))

	// Announce presence so the server can route room-scoped events.
	c.Emit(rt.EventJoinAdmin, self)

	go c.readLoop(epoch, conn)
}

func (c *Channel) readLoop(epoch int64, conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}

		msg, perr := rt.ParseMessage(payload)
		if perr != nil {
			c.logger.Warn("unparseable inbound message", zap.Error(perr))
			continue
		}
		c.dispatch(msg)
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.connected = false
	c.conn = nil
	c.mu.Unlock()

	// No reconnection replay: the local feed dies with the connection.
	c.notifications.Clear()
	c.logger.Warn("realtime channel lost")
	c.scheduleReconnect(epoch)
}

func (c *Channel) scheduleReconnect(epoch int64) {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}

	c.attempts++
	if c.attempts > c.cfg.MaxRetries {
		c.mu.Unlock()
		c.logger.Warn("realtime reconnection abandoned", zap.Int("attempts", c.cfg.MaxRetries))
		c.notifications.Add(Notification{
			Type:    rt.EventError,
			Title:   "Real-time updates unavailable",
			Message: "Live updates are paused. Data shown may be stale until you reload.",
			Icon:    "wifi-off",
			Color:   "red",
		})
		if c.onUnavailable != nil {
			c.onUnavailable()
		}
		return
	}

	delay := time.Duration(c.attempts) * c.cfg.BaseDelay
	if delay > c.cfg.MaxDelay {
		delay = c.cfg.MaxDelay
	}
	attempt := c.attempts

	c.stopRetryLocked()
	c.retry = time.AfterFunc(delay, func() {
		c.mu.Lock()
		stale := epoch != c.epoch
		c.mu.Unlock()
		if stale {
			return
		}
		c.dial(epoch)
	})
	c.mu.Unlock()

	c.logger.Info("realtime reconnect scheduled",
		zap.Int("attempt", attempt),
		zap.Duration("delay", delay),
	)
}

// stopRetryLocked cancels a pending reconnect timer. Caller holds c.mu.
func (c *Channel) stopRetryLocked() {
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
}

// closeConnLocked closes the live connection. Caller holds c.mu.
func (c *Channel) closeConnLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

// dispatch routes one inbound message. Every inbound category flows
// through here, so adding an event means extending exactly one switch.
func (c *Channel) dispatch(msg *rt.Message) {
	switch {
	case msg.Event.IsRefresh():
		c.signals.Publish(msg.Event)

	case msg.Event == rt.EventAdminLogin || msg.Event == rt.EventAdminLogout:
		var p rt.Presence
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			c.logger.Warn("bad presence payload", zap.Error(err))
			return
		}
		if p.AdminID == c.selfID() {
			return // never announce ourselves to ourselves
		}
		verb := "signed in"
		if msg.Event == rt.EventAdminLogout {
			verb = "signed out"
		}
		d := rt.DisplayFor(msg.Event)
		c.notifications.Add(Notification{
			Type:    msg.Event,
			Title:   "Admin activity",
			Message: fmt.Sprintf("%s %s", p.Name, verb),
			Icon:    d.Icon,
			Color:   d.Color,
		})

	case msg.Event == rt.EventMemberAdded || msg.Event == rt.EventEventCreated ||
		msg.Event == rt.EventCelebrationSubmitted || msg.Event == rt.EventAttendanceRecorded:
		title, body := domainSummary(msg)
		d := rt.DisplayFor(msg.Event)
		c.notifications.Add(Notification{
			Type:    msg.Event,
			Title:   title,
			Message: body,
			Icon:    d.Icon,
			Color:   d.Color,
		})

	case msg.Event == rt.EventSystemNotification:
		var sn rt.SystemNotification
		if err := json.Unmarshal(msg.Data, &sn); err != nil {
			c.logger.Warn("bad system notification payload", zap.Error(err))
			return
		}
		d := rt.DisplayFor(msg.Event)
		if sn.Icon == "" {
			sn.Icon = d.Icon
		}
		if sn.Color == "" {
			sn.Color = d.Color
		}
		c.notifications.Add(Notification{
			Type:    msg.Event,
			Title:   sn.Title,
			Message: sn.Message,
			Icon:    sn.Icon,
			Color:   sn.Color,
		})
		if sn.Priority == "high" && c.onAlert != nil {
			c.onAlert(sn)
		}

	case msg.Event == rt.EventConnected || msg.Event == rt.EventPong:
		// Handshake noise.

	default:
		c.logger.Debug("unhandled inbound event", zap.String("event", string(msg.Event)))
	}
}

func (c *Channel) selfID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.self.AdminID
}

// domainSummary builds a human line for a domain mutation event, using the
// payload's name/title when one is present.
func domainSummary(msg *rt.Message) (string, string) {
	var data map[string]interface{}
	if len(msg.Data) > 0 {
		_ = json.Unmarshal(msg.Data, &data)
	}
	str := func(key string) string {
		if v, ok := data[key].(string); ok {
			return v
		}
		return ""
	}

	switch msg.Event {
	case rt.EventMemberAdded:
		if name := str("name"); name != "" {
			return "New member", name + " was added to the register"
		}
		return "New member", "A new member was added to the register"
	case rt.EventEventCreated:
		if title := str("title"); title != "" {
			return "Event created", title + " was added to the calendar"
		}
		return "Event created", "A new event was added to the calendar"
	case rt.EventCelebrationSubmitted:
		if name := str("name"); name != "" {
			return "Celebration submitted", name + " sent a celebration request"
		}
		return "Celebration submitted", "A celebration request is awaiting review"
	case rt.EventAttendanceRecorded:
		return "Attendance recorded", "A service head count was recorded"
	}
	return "Update", "Something changed"
}
