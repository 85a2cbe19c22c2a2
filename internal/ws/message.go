package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message types - Session
const (
	TypeIdentify = "identify"
	TypeGetState = "get_state"
)

// Message types - Encounter
const (
	TypeStartEncounter   = "start_encounter"
	TypeSubmitStroke     = "submit_stroke"
	TypeCancelEncounter  = "cancel_encounter"
	TypeEncounterStarted = "encounter_started"
	TypeEncounterState   = "encounter_state"
	TypeEncounterOver    = "encounter_over"
)

// Message types - Shop and inventory
const (
	TypeBuyColor     = "buy_color"
	TypeBuyDesign    = "buy_design"
	TypeSelectColor  = "select_color"
	TypeSelectDesign = "select_design"
)

// Message types - Gallery
const (
	TypeGetGallery = "get_gallery"
	TypeGetSpots   = "get_spots"
	TypeRatePiece  = "rate_piece"
	TypeSavePiece  = "save_piece"
)

// Message types - System
const (
	TypeError       = "error"
	TypePlayerState = "player_state"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
