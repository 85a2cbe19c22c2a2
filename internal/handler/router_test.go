package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprayline/sprayline-server/internal/encounter"
	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/store"
	"github.com/sprayline/sprayline-server/internal/ws"
)

// mockClient creates a ws.Client with a buffered Send channel for testing.
func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

// identifiedClient creates a client that already passed the identify
// handshake.
func identifiedClient(id, userID string) *ws.Client {
	c := mockClient(id)
	c.UserID = userID
	c.Nickname = userID
	c.Identified = true
	return c
}

// drainMessages reads all pending messages from a client's send channel.
func drainMessages(client *ws.Client) []ws.Message {
	var msgs []ws.Message
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				msgs = append(msgs, msg)
			}
		default:
			return msgs
		}
	}
}

// findMessageByType finds the first message of a given type.
func findMessageByType(msgs []ws.Message, msgType string) *ws.Message {
	for _, m := range msgs {
		if m.Type == msgType {
			return &m
		}
	}
	return nil
}

func rawMessage(t *testing.T, msgType string, payload any) []byte {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	require.NoError(t, err)
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return data
}

func setupRouter(t *testing.T) (*Router, *progression.Store, *encounter.Manager) {
	t.Helper()
	ps := progression.NewStore(store.NewMemoryStore(), 0)
	em := encounter.NewManager()
	t.Cleanup(em.CancelAll)
	hub := ws.NewHub()
	go hub.Run()
	return NewRouter(hub, em, ps, 0), ps, em
}

func TestRouterRejectsInvalidJSON(t *testing.T) {
	r, _, _ := setupRouter(t)
	c := mockClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: []byte("not json")})

	msgs := drainMessages(c)
	require.NotNil(t, findMessageByType(msgs, ws.TypeError))
}

func TestRouterGuardsUnidentifiedClients(t *testing.T) {
	r, _, _ := setupRouter(t)
	c := mockClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: rawMessage(t, ws.TypeGetState, struct{}{})})

	msgs := drainMessages(c)
	errMsg := findMessageByType(msgs, ws.TypeError)
	require.NotNil(t, errMsg)

	var payload ws.ErrorMessage
	require.NoError(t, json.Unmarshal(errMsg.Data, &payload))
	assert.Equal(t, "identification required", payload.Message)
}

func TestRouterIdentify(t *testing.T) {
	r, ps, _ := setupRouter(t)
	c := mockClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: rawMessage(t, ws.TypeIdentify, identifyRequest{Nickname: "vandal"})})

	assert.True(t, c.Identified)
	assert.NotEmpty(t, c.UserID)

	msgs := drainMessages(c)
	ack := findMessageByType(msgs, ws.TypeIdentify)
	require.NotNil(t, ack)

	var resp identifyResponse
	require.NoError(t, json.Unmarshal(ack.Data, &resp))
	assert.Equal(t, "vandal", resp.Nickname)
	assert.Equal(t, c.UserID, resp.UserID)

	// Identify also pushes the snapshot and persists the user pointer.
	require.NotNil(t, findMessageByType(msgs, ws.TypePlayerState))
	u, ok := ps.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, c.UserID, u.ID)
}

func TestRouterIdentifyKeepsExistingUserID(t *testing.T) {
	r, _, _ := setupRouter(t)
	c := mockClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: rawMessage(t, ws.TypeIdentify, identifyRequest{UserID: "u-returning", Nickname: "vandal"})})
	assert.Equal(t, "u-returning", c.UserID)
}

func TestRouterIdentifyRequiresNickname(t *testing.T) {
	r, _, _ := setupRouter(t)
	c := mockClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: rawMessage(t, ws.TypeIdentify, identifyRequest{})})
	assert.False(t, c.Identified)
	require.NotNil(t, findMessageByType(drainMessages(c), ws.TypeError))
}

func TestRouterUnknownMessageType(t *testing.T) {
	r, _, _ := setupRouter(t)
	c := identifiedClient("c1", "u1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: rawMessage(t, "dance", struct{}{})})
	require.NotNil(t, findMessageByType(drainMessages(c), ws.TypeError))
}

func TestRouterGetState(t *testing.T) {
	r, _, _ := setupRouter(t)
	c := identifiedClient("c1", "u1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: rawMessage(t, ws.TypeGetState, struct{}{})})

	msg := findMessageByType(drainMessages(c), ws.TypePlayerState)
	require.NotNil(t, msg)

	var snap progression.PlayerState
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	assert.Equal(t, progression.StartingMoney, snap.Money)
}
