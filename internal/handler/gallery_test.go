package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprayline/sprayline-server/internal/game"
	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/store"
	"github.com/sprayline/sprayline-server/internal/ws"
)

func setupGalleryHandler(t *testing.T) (*GalleryHandler, *progression.Store, *ws.Hub) {
	t.Helper()
	ps := progression.NewStore(store.NewMemoryStore(), 0)
	hub := ws.NewHub()
	go hub.Run()
	return NewGalleryHandler(ps, hub), ps, hub
}

// connect registers clients on the hub and waits until the hub sees them.
func connect(t *testing.T, hub *ws.Hub, clients ...*ws.Client) {
	t.Helper()
	for _, c := range clients {
		hub.Register <- c
	}
	require.Eventually(t, func() bool {
		return hub.ClientCount() == len(clients)
	}, time.Second, time.Millisecond)
}

func TestGetSpots(t *testing.T) {
	h, _, _ := setupGalleryHandler(t)
	c := identifiedClient("c1", "u1")

	h.HandleGetSpots(c, ws.Message{})

	msg := findMessageByType(drainMessages(c), ws.TypeGetSpots)
	require.NotNil(t, msg)

	var spots []progression.Spot
	require.NoError(t, json.Unmarshal(msg.Data, &spots))
	assert.NotEmpty(t, spots)
}

func TestGetGallery(t *testing.T) {
	h, ps, _ := setupGalleryHandler(t)
	c := identifiedClient("c1", "u1")

	ps.SaveToGallery(progression.NewGalleryPiece("wall", game.DifficultyEasy, 1.0, 10, 5))
	h.HandleGetGallery(c, ws.Message{})

	msg := findMessageByType(drainMessages(c), ws.TypeGetGallery)
	require.NotNil(t, msg)

	var gallery []progression.GalleryPiece
	require.NoError(t, json.Unmarshal(msg.Data, &gallery))
	require.Len(t, gallery, 1)
	assert.Equal(t, "wall", gallery[0].SpotName)
}

func TestRatePiece(t *testing.T) {
	h, ps, hub := setupGalleryHandler(t)
	piece := progression.NewGalleryPiece("wall", game.DifficultyEasy, 1.0, 10, 5)
	ps.SaveToGallery(piece)

	alice := identifiedClient("c1", "alice")
	bob := identifiedClient("c2", "bob")
	connect(t, hub, alice, bob)

	msg, _ := ws.NewMessage(ws.TypeRatePiece, ratePieceRequest{PieceID: piece.ID, Rating: 5})
	h.HandleRatePiece(alice, msg)

	// Rating updates reach every connected viewer.
	var payload ratePieceResponse
	for _, c := range []*ws.Client{alice, bob} {
		resp := findMessageByType(drainMessages(c), ws.TypeRatePiece)
		require.NotNil(t, resp, "client %s missed the rating update", c.ID)
		require.NoError(t, json.Unmarshal(resp.Data, &payload))
		assert.Equal(t, 1, payload.Stats.Count)
		assert.InDelta(t, 5.0, payload.Stats.Average, 0.0001)
	}

	// Same user rating again is rejected, and only the rater hears about it.
	h.HandleRatePiece(alice, msg)
	require.NotNil(t, findMessageByType(drainMessages(alice), ws.TypeError))
	assert.Empty(t, drainMessages(bob))

	// A different user still counts, and the average follows.
	msg2, _ := ws.NewMessage(ws.TypeRatePiece, ratePieceRequest{PieceID: piece.ID, Rating: 3})
	h.HandleRatePiece(bob, msg2)

	resp := findMessageByType(drainMessages(bob), ws.TypeRatePiece)
	require.NotNil(t, resp)
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.Equal(t, 2, payload.Stats.Count)
	assert.InDelta(t, 4.0, payload.Stats.Average, 0.0001)
}

func TestRatePieceUnknown(t *testing.T) {
	h, _, _ := setupGalleryHandler(t)
	c := identifiedClient("c1", "u1")

	msg, _ := ws.NewMessage(ws.TypeRatePiece, ratePieceRequest{PieceID: "missing", Rating: 4})
	h.HandleRatePiece(c, msg)
	require.NotNil(t, findMessageByType(drainMessages(c), ws.TypeError))
}

func TestSavePiece(t *testing.T) {
	h, ps, _ := setupGalleryHandler(t)
	c := identifiedClient("c1", "u1")

	msg, _ := ws.NewMessage(ws.TypeSavePiece, savePieceRequest{
		ImageData:  "data:image/png;base64,xyz",
		SpotName:   "Freestyle Wall",
		Difficulty: game.DifficultyMedium,
		Quality:    0.8,
	})
	h.HandleSavePiece(c, msg)

	resp := findMessageByType(drainMessages(c), ws.TypeSavePiece)
	require.NotNil(t, resp)

	var payload savePieceResponse
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.NotEmpty(t, payload.PieceID)

	gallery := ps.Gallery()
	require.Len(t, gallery, 1)
	assert.Equal(t, "Freestyle Wall", gallery[0].SpotName)
	assert.Equal(t, "u1", gallery[0].UserID)
	// Manual captures never pay out.
	assert.Equal(t, 0, gallery[0].FameEarned)
	assert.Equal(t, 0, gallery[0].MoneyEarned)
}

func TestSavePieceValidation(t *testing.T) {
	h, ps, _ := setupGalleryHandler(t)
	c := identifiedClient("c1", "u1")

	msg, _ := ws.NewMessage(ws.TypeSavePiece, savePieceRequest{Quality: 0.5})
	h.HandleSavePiece(c, msg)
	require.NotNil(t, findMessageByType(drainMessages(c), ws.TypeError))

	msg, _ = ws.NewMessage(ws.TypeSavePiece, savePieceRequest{SpotName: "Wall", Quality: 1.5})
	h.HandleSavePiece(c, msg)
	require.NotNil(t, findMessageByType(drainMessages(c), ws.TypeError))

	assert.Empty(t, ps.Gallery())
}
