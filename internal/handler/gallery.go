package handler

import (
	"encoding/json"

	"github.com/sprayline/sprayline-server/internal/game"
	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/ws"
)

// GalleryHandler handles gallery reads, ratings and manual captures.
type GalleryHandler struct {
	ps  *progression.Store
	hub *ws.Hub
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(ps *progression.Store, hub *ws.Hub) *GalleryHandler {
	return &GalleryHandler{ps: ps, hub: hub}
}

// HandleGetGallery sends the gallery, newest first.
func (h *GalleryHandler) HandleGetGallery(client *ws.Client, _ ws.Message) {
	resp, _ := ws.NewMessage(ws.TypeGetGallery, h.ps.Gallery())
	client.SendMessage(resp)
}

// HandleGetSpots sends the spot catalog.
func (h *GalleryHandler) HandleGetSpots(client *ws.Client, _ ws.Message) {
	resp, _ := ws.NewMessage(ws.TypeGetSpots, h.ps.Spots())
	client.SendMessage(resp)
}

type ratePieceRequest struct {
	PieceID string `json:"piece_id"`
	Rating  int    `json:"rating"`
}

type ratePieceResponse struct {
	PieceID string                  `json:"piece_id"`
	Stats   progression.RatingStats `json:"stats"`
}

// HandleRatePiece records the client's rating of a piece. At most one
// rating per user per piece; a duplicate is a denial.
func (h *GalleryHandler) HandleRatePiece(client *ws.Client, msg ws.Message) {
	var req ratePieceRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.PieceID == "" {
		client.SendMessage(ws.NewErrorMessage("piece_id and rating are required"))
		return
	}

	if !h.ps.AddUserRating(req.PieceID, client.UserID, req.Rating) {
		client.SendMessage(ws.NewErrorMessage("rating rejected"))
		return
	}

	// Fresh stats go to every connected viewer, not just the rater.
	stats, _ := h.ps.GetRatingStats(req.PieceID)
	resp, _ := ws.NewMessage(ws.TypeRatePiece, ratePieceResponse{
		PieceID: req.PieceID,
		Stats:   stats,
	})
	h.hub.BroadcastMessage(resp)
}

type savePieceRequest struct {
	ImageData  string          `json:"image_data"`
	SpotName   string          `json:"spot_name"`
	Difficulty game.Difficulty `json:"difficulty"`
	Quality    float64         `json:"quality"`
}

type savePieceResponse struct {
	PieceID string `json:"piece_id"`
}

// HandleSavePiece saves a manually captured piece. Manual captures earn
// nothing; they only enter the gallery.
func (h *GalleryHandler) HandleSavePiece(client *ws.Client, msg ws.Message) {
	var req savePieceRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.SpotName == "" {
		client.SendMessage(ws.NewErrorMessage("spot_name is required"))
		return
	}
	if req.Quality < 0 || req.Quality > 1 {
		client.SendMessage(ws.NewErrorMessage("quality must be between 0 and 1"))
		return
	}

	piece := progression.NewGalleryPiece(req.SpotName, req.Difficulty, req.Quality, 0, 0)
	piece.ImageData = req.ImageData
	piece.UserID = client.UserID
	h.ps.SaveToGallery(piece)

	resp, _ := ws.NewMessage(ws.TypeSavePiece, savePieceResponse{PieceID: piece.ID})
	client.SendMessage(resp)
}
