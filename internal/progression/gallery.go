package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/sprayline/sprayline-server/internal/game"
)

// Rating is one viewer's rating of a piece.
type Rating struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// GalleryPiece is one finished painting. AverageRating is always derived
// from Ratings, never set independently.
type GalleryPiece struct {
	ID            string          `json:"id"`
	ImageData     string          `json:"image_data,omitempty"`
	SpotName      string          `json:"spot_name"`
	Difficulty    game.Difficulty `json:"difficulty"`
	Quality       float64         `json:"quality"`
	FameEarned    int             `json:"fame_earned"`
	MoneyEarned   int             `json:"money_earned"`
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id,omitempty"`
	Ratings       []Rating        `json:"ratings"`
	AverageRating float64         `json:"average_rating"`
}

// NewGalleryPiece creates a piece with a fresh id and timestamp.
func NewGalleryPiece(spotName string, difficulty game.Difficulty, quality float64, fameEarned, moneyEarned int) *GalleryPiece {
	return &GalleryPiece{
		ID:          uuid.New().String(),
		SpotName:    spotName,
		Difficulty:  difficulty,
		Quality:     quality,
		FameEarned:  fameEarned,
		MoneyEarned: moneyEarned,
		Timestamp:   time.Now(),
		// Empty, not nil: an unrated piece serializes as [] on the wire.
		Ratings: []Rating{},
	}
}

// recomputeAverage recalculates AverageRating as the arithmetic mean of
// the current ratings list.
func (p *GalleryPiece) recomputeAverage() {
	if len(p.Ratings) == 0 {
		p.AverageRating = 0
		return
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Rating
	}
	p.AverageRating = float64(sum) / float64(len(p.Ratings))
}
