package game

import "encoding/json"

// Outcome is the terminal result of an encounter.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeBusted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeBusted:
		return "busted"
	default:
		return "none"
	}
}

// MarshalJSON serializes Outcome as a string.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON deserializes Outcome from a string.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "success":
		*o = OutcomeSuccess
	case "busted":
		*o = OutcomeBusted
	default:
		*o = OutcomeNone
	}
	return nil
}

// Phase is the lifecycle state of an encounter.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// MarshalJSON serializes Phase as a string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
