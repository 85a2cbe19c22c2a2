package progression

import (
	"log/slog"
	"time"
)

// RatingStats summarizes the ledger for one piece.
type RatingStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// AddUserRating records one user's rating of a piece. It fails with no
// mutation when the piece is unknown, the rating is out of range, or the
// user already rated this piece. On success the average is recomputed
// from the full ratings list.
func (s *Store) AddUserRating(pieceID, userID string, rating int) bool {
	if userID == "" || rating < 1 || rating > 5 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	piece := s.findPieceLocked(pieceID)
	if piece == nil {
		return false
	}
	for _, r := range piece.Ratings {
		if r.UserID == userID {
			return false
		}
	}

	piece.Ratings = append(piece.Ratings, Rating{
		UserID:    userID,
		Rating:    rating,
		Timestamp: time.Now(),
	})
	piece.recomputeAverage()
	s.persistGalleryLocked()

	slog.Debug("piece rated", "piece", pieceID, "user", userID, "rating", rating, "average", piece.AverageRating)
	return true
}

// HasUserRated reports whether the user already rated the piece.
func (s *Store) HasUserRated(pieceID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece := s.findPieceLocked(pieceID)
	if piece == nil {
		return false
	}
	for _, r := range piece.Ratings {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// GetUserRating returns the user's rating of the piece, if any.
func (s *Store) GetUserRating(pieceID, userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece := s.findPieceLocked(pieceID)
	if piece == nil {
		return 0, false
	}
	for _, r := range piece.Ratings {
		if r.UserID == userID {
			return r.Rating, true
		}
	}
	return 0, false
}

// GetRatingStats returns the rating count and average for a piece.
func (s *Store) GetRatingStats(pieceID string) (RatingStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece := s.findPieceLocked(pieceID)
	if piece == nil {
		return RatingStats{}, false
	}
	return RatingStats{
		Count:   len(piece.Ratings),
		Average: piece.AverageRating,
	}, true
}

// Caller must hold s.mu.
func (s *Store) findPieceLocked(pieceID string) *GalleryPiece {
	for _, p := range s.gallery {
		if p.ID == pieceID {
			return p
		}
	}
	return nil
}
