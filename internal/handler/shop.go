package handler

import (
	"encoding/json"
	"errors"

	"github.com/sprayline/sprayline-server/internal/progression"
	"github.com/sprayline/sprayline-server/internal/ws"
)

// ShopHandler handles purchase and selection messages.
type ShopHandler struct {
	ps *progression.Store
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(ps *progression.Store) *ShopHandler {
	return &ShopHandler{ps: ps}
}

type itemRequest struct {
	ID string `json:"id"`
}

// HandleBuyColor purchases a color from the catalog.
func (h *ShopHandler) HandleBuyColor(client *ws.Client, msg ws.Message) {
	h.handleBuy(client, msg, h.ps.BuyColor)
}

// HandleBuyDesign purchases a design from the catalog.
func (h *ShopHandler) HandleBuyDesign(client *ws.Client, msg ws.Message) {
	h.handleBuy(client, msg, h.ps.BuyDesign)
}

func (h *ShopHandler) handleBuy(client *ws.Client, msg ws.Message, buy func(string) error) {
	var req itemRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.ID == "" {
		client.SendMessage(ws.NewErrorMessage("item id is required"))
		return
	}

	switch err := buy(req.ID); {
	case errors.Is(err, progression.ErrUnknownItem):
		client.SendMessage(ws.NewErrorMessage("unknown item"))
		return
	case errors.Is(err, progression.ErrAlreadyOwned):
		client.SendMessage(ws.NewErrorMessage("item already owned"))
		return
	case errors.Is(err, progression.ErrInsufficientFunds):
		client.SendMessage(ws.NewErrorMessage("not enough money"))
		return
	}

	h.sendState(client)
}

// HandleSelectColor changes the active color.
func (h *ShopHandler) HandleSelectColor(client *ws.Client, msg ws.Message) {
	h.handleSelect(client, msg, h.ps.SelectColor)
}

// HandleSelectDesign changes the active design.
func (h *ShopHandler) HandleSelectDesign(client *ws.Client, msg ws.Message) {
	h.handleSelect(client, msg, h.ps.SelectDesign)
}

func (h *ShopHandler) handleSelect(client *ws.Client, msg ws.Message, sel func(string) bool) {
	var req itemRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.ID == "" {
		client.SendMessage(ws.NewErrorMessage("item id is required"))
		return
	}

	if !sel(req.ID) {
		client.SendMessage(ws.NewErrorMessage("item not owned"))
		return
	}
	h.sendState(client)
}

func (h *ShopHandler) sendState(client *ws.Client) {
	resp, _ := ws.NewMessage(ws.TypePlayerState, h.ps.Snapshot())
	client.SendMessage(resp)
}
