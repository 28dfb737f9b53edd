package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesAdminClients(t *testing.T) {
	hub := NewHub()
	admin := hub.Register("admin-1", "")
	defer hub.Unregister("admin-1")

	hub.Broadcast(&Event{Event: EventOrderPaid, OrderNo: "PL-20260831-ABC123"})

	require.Len(t, admin.Events, 1)
	var got Event
	require.NoError(t, json.Unmarshal(<-admin.Events, &got))
	assert.Equal(t, EventOrderPaid, got.Event)
	assert.Equal(t, "PL-20260831-ABC123", got.OrderNo)
}

func TestHubBroadcastFiltersByTopic(t *testing.T) {
	hub := NewHub()
	admin := hub.Register("admin-1", "")
	convA := hub.Register("cust-a", "conv-a")
	convB := hub.Register("cust-b", "conv-b")

	hub.Broadcast(&Event{Event: EventChatMessage, Topic: "conv-a", ConversationID: "conv-a", Body: "hello"})

	// Admin sees everything, conv-a sees its own event, conv-b sees nothing.
	assert.Len(t, admin.Events, 1)
	assert.Len(t, convA.Events, 1)
	assert.Len(t, convB.Events, 0)
}

func TestHubTopicClientMissesUntopicedEvents(t *testing.T) {
	hub := NewHub()
	conv := hub.Register("cust-a", "conv-a")

	hub.Broadcast(&Event{Event: EventOrderPaid, OrderNo: "PL-1"})

	assert.Len(t, conv.Events, 0)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	c := hub.Register("x", "")
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister("x")
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-c.Events
	assert.False(t, open, "channel should be closed after unregister")

	// Unregistering twice is a no-op.
	hub.Unregister("x")
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := hub.Register("slow", "")

	for i := 0; i < 100; i++ {
		hub.Broadcast(&Event{Event: EventOrderPaid})
	}
	assert.Equal(t, cap(c.Events), len(c.Events))
}
