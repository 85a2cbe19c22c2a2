package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/sprayline/sprayline-server/internal/encounter"
	"github.com/sprayline/sprayline-server/internal/game"
	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/ws"
)

// EncounterHandler handles encounter messages and applies terminal
// outcomes to the progression store. The core simulation never touches
// the socket; this handler is the relay between the two.
type EncounterHandler struct {
	em *encounter.Manager
	ps *progression.Store

	perfectCoverage float64

	// owners maps encounter ID -> owning client.
	owners map[string]*ws.Client
	mu     sync.Mutex
}

// NewEncounterHandler creates a new encounter handler.
func NewEncounterHandler(em *encounter.Manager, ps *progression.Store, perfectCoverage float64) *EncounterHandler {
	return &EncounterHandler{
		em:              em,
		ps:              ps,
		perfectCoverage: perfectCoverage,
		owners:          make(map[string]*ws.Client),
	}
}

type startEncounterRequest struct {
	SpotID string `json:"spot_id"`
}

type encounterStartedResponse struct {
	EncounterID string          `json:"encounter_id"`
	SpotID      string          `json:"spot_id"`
	Difficulty  game.Difficulty `json:"difficulty"`
	TimeLimit   float64         `json:"time_limit"`
	HasGuard    bool            `json:"has_guard"`
}

// HandleStartEncounter starts an encounter at a spot.
func (h *EncounterHandler) HandleStartEncounter(client *ws.Client, msg ws.Message) {
	var req startEncounterRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.SpotID == "" {
		client.SendMessage(ws.NewErrorMessage("spot_id is required"))
		return
	}

	spot, ok := h.ps.GetSpot(req.SpotID)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("unknown spot"))
		return
	}
	if spot.Painted {
		client.SendMessage(ws.NewErrorMessage("spot is already painted"))
		return
	}

	e := h.em.Start(spot.ID, spot.Difficulty, encounter.Options{
		HasGuard:        spot.HasGuard,
		PerfectCoverage: h.perfectCoverage,
		OnState: func(state encounter.State) {
			resp, _ := ws.NewMessage(ws.TypeEncounterState, state)
			client.SendMessage(resp)
		},
		OnOutcome: func(result encounter.Result) {
			h.applyOutcome(client, spot, result)
		},
	})

	h.mu.Lock()
	h.owners[e.ID] = client
	h.mu.Unlock()

	resp, _ := ws.NewMessage(ws.TypeEncounterStarted, encounterStartedResponse{
		EncounterID: e.ID,
		SpotID:      spot.ID,
		Difficulty:  spot.Difficulty,
		TimeLimit:   game.ConfigFor(spot.Difficulty).TimeLimit.Seconds(),
		HasGuard:    spot.HasGuard,
	})
	client.SendMessage(resp)
}

type strokeRequest struct {
	EncounterID string `json:"encounter_id"`
}

// HandleSubmitStroke ingests a stroke event for an active encounter.
func (h *EncounterHandler) HandleSubmitStroke(client *ws.Client, msg ws.Message) {
	var req strokeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.EncounterID == "" {
		client.SendMessage(ws.NewErrorMessage("encounter_id is required"))
		return
	}

	e := h.owned(client, req.EncounterID)
	if e == nil {
		client.SendMessage(ws.NewErrorMessage("no such encounter"))
		return
	}

	// Strokes after resolution are silently dropped; the next state
	// broadcast makes the phase clear to the client.
	e.SubmitStroke()
}

// HandleCancelEncounter tears an encounter down with no outcome.
func (h *EncounterHandler) HandleCancelEncounter(client *ws.Client, msg ws.Message) {
	var req strokeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.EncounterID == "" {
		client.SendMessage(ws.NewErrorMessage("encounter_id is required"))
		return
	}

	e := h.owned(client, req.EncounterID)
	if e == nil {
		client.SendMessage(ws.NewErrorMessage("no such encounter"))
		return
	}

	e.Cancel()
	h.release(req.EncounterID)
}

// CancelForClient cancels every encounter owned by a disconnecting client.
func (h *EncounterHandler) CancelForClient(client *ws.Client) {
	h.mu.Lock()
	var ids []string
	for id, owner := range h.owners {
		if owner == client {
			ids = append(ids, id)
		}
	}
	h.mu.Unlock()

	for _, id := range ids {
		if e := h.em.Get(id); e != nil {
			e.Cancel()
		}
		h.release(id)
	}
}

type encounterOverMessage struct {
	EncounterID string       `json:"encounter_id"`
	Outcome     game.Outcome `json:"outcome"`
	Quality     float64      `json:"quality,omitempty"`
	FameEarned  int          `json:"fame_earned,omitempty"`
	MoneyEarned int          `json:"money_earned,omitempty"`
	WantedLevel int          `json:"wanted_level"`
	PieceID     string       `json:"piece_id,omitempty"`
	Arrested    bool         `json:"arrested,omitempty"`
}

// applyOutcome consumes the single terminal result: a bust raises the
// wanted level, a success pays out through the progression store and
// appends the piece to the gallery. A bust at the wanted cap ends in an
// arrest with its confiscation penalty.
func (h *EncounterHandler) applyOutcome(client *ws.Client, spot progression.Spot, result encounter.Result) {
	over := encounterOverMessage{
		EncounterID: result.EncounterID,
		Outcome:     result.Outcome,
	}

	switch result.Outcome {
	case game.OutcomeBusted:
		over.WantedLevel = h.ps.RaiseWanted()
		if over.WantedLevel >= game.MaxWantedLevel {
			arrest := h.ps.GetArrested()
			over.Arrested = true
			over.WantedLevel = arrest.WantedLevel
		}

	case game.OutcomeSuccess:
		paint, ok := h.ps.PaintSpot(result.SpotID, result.Quality)
		if !ok {
			// Spot vanished or was painted in the meantime; the run
			// still counts as a piece but pays nothing.
			slog.Warn("paint rejected at resolution", "spot", result.SpotID)
		}
		piece := progression.NewGalleryPiece(spot.Name, spot.Difficulty, result.Quality, paint.FameEarned, paint.MoneyEarned)
		h.ps.SaveToGallery(piece)

		over.Quality = result.Quality
		over.FameEarned = paint.FameEarned
		over.MoneyEarned = paint.MoneyEarned
		over.WantedLevel = paint.WantedLevel
		over.PieceID = piece.ID
	}

	resp, _ := ws.NewMessage(ws.TypeEncounterOver, over)
	client.SendMessage(resp)

	state, _ := ws.NewMessage(ws.TypePlayerState, h.ps.Snapshot())
	client.SendMessage(state)

	h.release(result.EncounterID)
}

// owned returns the encounter only if this client started it.
func (h *EncounterHandler) owned(client *ws.Client, id string) *encounter.Encounter {
	h.mu.Lock()
	owner := h.owners[id]
	h.mu.Unlock()
	if owner != client {
		return nil
	}
	return h.em.Get(id)
}

func (h *EncounterHandler) release(id string) {
	h.mu.Lock()
	delete(h.owners, id)
	h.mu.Unlock()
	h.em.Remove(id)
}
