// internal/realtime/notifications_test.go
package realtime_test

import (
	"fmt"
	"testing"

	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferCapsAtFiftyNewestFirst(t *testing.T) {
	buf := realtime.NewNotificationBuffer(realtime.DefaultNotificationCap)

	for i := 0; i < 60; i++ {
		buf.Add(realtime.Notification{
			Type:    rt.EventMemberAdded,
			Title:   fmt.Sprintf("member %d", i),
			Message: "added",
		})
	}

	assert.Equal(t, 50, buf.Len())

	all := buf.All()
	require.Len(t, all, 50)
	assert.Equal(t, "member 59", all[0].Title, "newest entry first")
	assert.Equal(t, "member 10", all[49].Title, "first ten evicted")

	// IDs are strictly descending front to back.
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].ID, all[i].ID)
	}
}

func TestBufferRemoveByID(t *testing.T) {
	buf := realtime.NewNotificationBuffer(10)

	a := buf.Add(realtime.Notification{Title: "a"})
	b := buf.Add(realtime.Notification{Title: "b"})
	c := buf.Add(realtime.Notification{Title: "c"})

	require.True(t, buf.Remove(b.ID))
	assert.False(t, buf.Remove(b.ID), "second remove of the same id is a no-op")

	all := buf.All()
	require.Len(t, all, 2)
	assert.Equal(t, c.ID, all[0].ID)
	assert.Equal(t, a.ID, all[1].ID)
}

func TestBufferClear(t *testing.T) {
	buf := realtime.NewNotificationBuffer(10)
	for i := 0; i < 5; i++ {
		buf.Add(realtime.Notification{Title: "x"})
	}

	buf.Clear()
	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.All())

	// Still usable after a clear.
	buf.Add(realtime.Notification{Title: "y"})
	assert.Equal(t, 1, buf.Len())
}
