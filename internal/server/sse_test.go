package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/javajack/xlgrid"
)

func receive(t *testing.T, c *client) event {
	t.Helper()
	select {
	case ev, ok := <-c.ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return event{}
	}
}

func TestBroadcasterRegisterUnregister(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())

	c1 := b.Register()
	c2 := b.Register()
	assert.NotEqual(t, c1.id, c2.id)
	assert.Equal(t, 2, b.ClientCount())

	b.Unregister(c1)
	assert.Equal(t, 1, b.ClientCount())
	b.Unregister(c1) // should not panic

	b.CloseAll()
	assert.Equal(t, 0, b.ClientCount())
	_, ok := <-c2.ch
	assert.False(t, ok)
}

func TestBroadcastGridEvents(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	c := b.Register()
	defer b.Unregister(c)

	g, err := xlgrid.NewGrid(5, 30, xlgrid.WithListener(b))
	require.NoError(t, err)

	require.NoError(t, g.Set(2, 27, "hello"))
	ev := receive(t, c)
	assert.Equal(t, "cell", ev.Name)
	var ce cellEvent
	require.NoError(t, json.Unmarshal(ev.Data, &ce))
	assert.Equal(t, cellEvent{Ref: "AB3", Row: 2, Col: 27, Value: "hello"}, ce)

	require.NoError(t, g.Focus(0, 0))
	require.NoError(t, g.Focus(1, 1))
	g.Blur()

	var fe focusEvent
	for _, want := range []focusEvent{{Ref: "A1"}, {Ref: "B2", Previous: "A1"}, {Ref: "", Previous: "B2"}} {
		ev = receive(t, c)
		assert.Equal(t, "focus", ev.Name)
		require.NoError(t, json.Unmarshal(ev.Data, &fe))
		assert.Equal(t, want, fe)
		fe = focusEvent{}
	}
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	c := b.Register()
	defer b.Unregister(c)

	for i := 0; i < sseChannelBuffer+10; i++ {
		b.Broadcast("cell", cellEvent{Row: i})
	}
	assert.Len(t, c.ch, sseChannelBuffer)
}

func TestSendToUnregisteredClient(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	c := b.Register()
	b.Unregister(c)
	b.SendTo(c, "focus", focusEvent{}) // closed channel, must not panic
}
