package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sprayline/sprayline-server/internal/encounter"
	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	encounters *EncounterHandler
	shop       *ShopHandler
	gallery    *GalleryHandler

	ps *progression.Store
}

// NewRouter creates a new message router.
func NewRouter(hub *ws.Hub, em *encounter.Manager, ps *progression.Store, perfectCoverage float64) *Router {
	return &Router{
		encounters: NewEncounterHandler(em, ps, perfectCoverage),
		shop:       NewShopHandler(ps),
		gallery:    NewGalleryHandler(ps, hub),
		ps:         ps,
	}
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	// Identify is always allowed
	if msg.Type == ws.TypeIdentify {
		r.handleIdentify(cm.Client, msg)
		return
	}

	// Identity guard: every other message needs a bound user
	if !cm.Client.Identified {
		cm.Client.SendMessage(ws.NewErrorMessage("identification required"))
		return
	}

	switch msg.Type {
	// Encounter messages
	case ws.TypeStartEncounter:
		r.encounters.HandleStartEncounter(cm.Client, msg)
	case ws.TypeSubmitStroke:
		r.encounters.HandleSubmitStroke(cm.Client, msg)
	case ws.TypeCancelEncounter:
		r.encounters.HandleCancelEncounter(cm.Client, msg)

	// Shop and inventory messages
	case ws.TypeBuyColor:
		r.shop.HandleBuyColor(cm.Client, msg)
	case ws.TypeBuyDesign:
		r.shop.HandleBuyDesign(cm.Client, msg)
	case ws.TypeSelectColor:
		r.shop.HandleSelectColor(cm.Client, msg)
	case ws.TypeSelectDesign:
		r.shop.HandleSelectDesign(cm.Client, msg)

	// Gallery messages
	case ws.TypeGetGallery:
		r.gallery.HandleGetGallery(cm.Client, msg)
	case ws.TypeGetSpots:
		r.gallery.HandleGetSpots(cm.Client, msg)
	case ws.TypeRatePiece:
		r.gallery.HandleRatePiece(cm.Client, msg)
	case ws.TypeSavePiece:
		r.gallery.HandleSavePiece(cm.Client, msg)

	// Session messages
	case ws.TypeGetState:
		r.handleGetState(cm.Client)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection, cancelling any
// encounter the client still has running.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.encounters.CancelForClient(client)
}

type identifyRequest struct {
	UserID   string `json:"user_id,omitempty"`
	Nickname string `json:"nickname"`
}

type identifyResponse struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
}

// handleIdentify binds the connection to a user. A missing user id means
// a first visit and gets a fresh one.
func (r *Router) handleIdentify(client *ws.Client, msg ws.Message) {
	var req identifyRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}

	if req.UserID == "" {
		req.UserID = uuid.New().String()
	}
	client.UserID = req.UserID
	client.Nickname = req.Nickname
	client.Identified = true

	r.ps.SetCurrentUser(progression.User{ID: req.UserID, Nickname: req.Nickname})

	resp, _ := ws.NewMessage(ws.TypeIdentify, identifyResponse{
		UserID:   req.UserID,
		Nickname: req.Nickname,
	})
	client.SendMessage(resp)
	r.handleGetState(client)

	slog.Info("client identified", "client", client.ID, "user", req.UserID, "nickname", req.Nickname)
}

// handleGetState sends the player snapshot.
func (r *Router) handleGetState(client *ws.Client) {
	resp, _ := ws.NewMessage(ws.TypePlayerState, r.ps.Snapshot())
	client.SendMessage(resp)
}
