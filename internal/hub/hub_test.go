package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	h := NewHub()
	a := make(Client, 1)
	b := make(Client, 1)
	other := make(Client, 1)

	h.Subscribe("populate", a)
	h.Subscribe("populate", b)
	h.Subscribe("other", other)
	require.Equal(t, 2, h.Subscribers("populate"))

	h.Broadcast("populate", Event{Type: "game", Payload: map[string]string{"title": "Foo"}})

	for _, c := range []Client{a, b} {
		var got Event
		require.NoError(t, json.Unmarshal(<-c, &got))
		require.Equal(t, "game", got.Type)
	}
	require.Len(t, other, 0)
}

func TestBroadcastDropsForFullClient(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe("populate", c)

	h.Broadcast("populate", Event{Type: "first"})
	h.Broadcast("populate", Event{Type: "second"})

	var got Event
	require.NoError(t, json.Unmarshal(<-c, &got))
	require.Equal(t, "first", got.Type)
	require.Len(t, c, 0)
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe("populate", c)
	h.Unsubscribe("populate", c)

	_, open := <-c
	require.False(t, open)
	require.Zero(t, h.Subscribers("populate"))

	// second unsubscribe is a no-op
	h.Unsubscribe("populate", c)
	h.Broadcast("populate", Event{Type: "ignored"})
}
