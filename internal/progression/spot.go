package progression

import "github.com/sprayline/sprayline-server/internal/game"

// Position is a map coordinate for a spot.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Spot is a paintable map location. Reward fields are fixed at creation
// and never mutated; Painted never reverts once set.
type Spot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Position    Position        `json:"position"`
	Difficulty  game.Difficulty `json:"difficulty"`
	FameReward  int             `json:"fame_reward"`
	MoneyReward int             `json:"money_reward"`
	HasGuard    bool            `json:"has_guard"`
	Painted     bool            `json:"painted"`
	PlayerPiece string          `json:"player_piece,omitempty"`
}

// DefaultSpots returns the seeded spot catalog. Rewards scale with
// difficulty so the risk ordering of ConfigFor carries through to payout.
func DefaultSpots() []*Spot {
	return []*Spot{
		{ID: "alley-wall", Name: "Back Alley Wall", Position: Position{Lat: 37.5665, Lng: 126.9780}, Difficulty: game.DifficultyEasy, FameReward: 10, MoneyReward: 5},
		{ID: "underpass", Name: "River Underpass", Position: Position{Lat: 37.5512, Lng: 126.9882}, Difficulty: game.DifficultyEasy, FameReward: 12, MoneyReward: 6},
		{ID: "substation", Name: "Power Substation", Position: Position{Lat: 37.5598, Lng: 126.9752}, Difficulty: game.DifficultyMedium, FameReward: 25, MoneyReward: 12, HasGuard: true},
		{ID: "rail-yard", Name: "Rail Yard Fence", Position: Position{Lat: 37.5444, Lng: 126.9706}, Difficulty: game.DifficultyMedium, FameReward: 30, MoneyReward: 15, HasGuard: true},
		{ID: "rooftop-billboard", Name: "Rooftop Billboard", Position: Position{Lat: 37.5701, Lng: 126.9919}, Difficulty: game.DifficultyHard, FameReward: 60, MoneyReward: 30, HasGuard: true},
		{ID: "metro-platform", Name: "Metro Platform", Position: Position{Lat: 37.5547, Lng: 126.9970}, Difficulty: game.DifficultyHard, FameReward: 70, MoneyReward: 35, HasGuard: true},
		{ID: "police-hq", Name: "Police HQ Wall", Position: Position{Lat: 37.5636, Lng: 126.9895}, Difficulty: game.DifficultyExtreme, FameReward: 150, MoneyReward: 75, HasGuard: true},
	}
}
