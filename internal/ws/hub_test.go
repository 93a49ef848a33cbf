package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	a := &Client{hub: hub, send: make(chan []byte, 4)}
	b := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.NotifyJobsUpdated(42, "active")

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			var evt JobsUpdatedEvent
			require.NoError(t, json.Unmarshal(msg, &evt))
			assert.Equal(t, EventJobsUpdated, evt.Type)
			assert.EqualValues(t, 42, evt.JobID)
			assert.Equal(t, "active", evt.Status)
		case <-time.After(time.Second):
			t.Fatal("no broadcast received")
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_StopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	_, open := <-c.send
	assert.False(t, open)
}

func TestNilHubIsSafe(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() {
		hub.NotifyJobsUpdated(1, "active")
		hub.Broadcast([]byte("x"))
	})
	assert.Equal(t, 0, hub.ClientCount())
}
