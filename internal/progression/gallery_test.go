package progression

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprayline/sprayline-server/internal/game"
	"github.com/sprayline/sprayline-server/internal/store"
)

func TestNewGalleryPieceSerializesEmptyRatings(t *testing.T) {
	piece := NewGalleryPiece("wall", game.DifficultyEasy, 1.0, 10, 5)

	data, err := json.Marshal(piece)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ratings":[]`)
}

func TestSaveToGalleryNewestFirst(t *testing.T) {
	s := newTestStore(t)

	s.SaveToGallery(NewGalleryPiece("first", game.DifficultyEasy, 0.5, 5, 2))
	s.SaveToGallery(NewGalleryPiece("second", game.DifficultyEasy, 0.5, 5, 2))
	s.SaveToGallery(NewGalleryPiece("third", game.DifficultyEasy, 0.5, 5, 2))

	gallery := s.Gallery()
	require.Len(t, gallery, 3)
	assert.Equal(t, "third", gallery[0].SpotName)
	assert.Equal(t, "first", gallery[2].SpotName)
}

func TestGalleryCapEvictsOldest(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 101; i++ {
		s.SaveToGallery(NewGalleryPiece(fmt.Sprintf("piece-%d", i), game.DifficultyEasy, 1.0, 1, 1))
	}

	gallery := s.Gallery()
	require.Len(t, gallery, 100)
	assert.Equal(t, "piece-101", gallery[0].SpotName)
	assert.Equal(t, "piece-2", gallery[99].SpotName)
}

func TestGalleryCustomLimit(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), 3)

	for i := 1; i <= 5; i++ {
		s.SaveToGallery(NewGalleryPiece(fmt.Sprintf("piece-%d", i), game.DifficultyEasy, 1.0, 1, 1))
	}
	assert.Len(t, s.Gallery(), 3)
}

func TestSaveToGalleryStampsCurrentUser(t *testing.T) {
	s := newTestStore(t)
	s.SetCurrentUser(User{ID: "u1", Nickname: "vandal"})

	s.SaveToGallery(NewGalleryPiece("wall", game.DifficultyEasy, 1.0, 1, 1))
	assert.Equal(t, "u1", s.Gallery()[0].UserID)

	// An explicit owner is kept.
	piece := NewGalleryPiece("wall", game.DifficultyEasy, 1.0, 1, 1)
	piece.UserID = "u2"
	s.SaveToGallery(piece)
	assert.Equal(t, "u2", s.Gallery()[0].UserID)
}
