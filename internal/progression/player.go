package progression

// Inventory holds the player's unlocked cosmetics and current selection.
// Unlock sets are append-only; the selection always points at an owned item.
type Inventory struct {
	Colors         []string `json:"colors"`
	Designs        []string `json:"designs"`
	SelectedColor  string   `json:"selected_color"`
	SelectedDesign string   `json:"selected_design"`
}

// Stats tracks lifetime counters.
type Stats struct {
	TotalPieces   int `json:"total_pieces"`
	SpotsPainted  int `json:"spots_painted"`
	TimesArrested int `json:"times_arrested"`
	BestFame      int `json:"best_fame"`
}

// PlayerState is the durable progression state. Mutated only through the
// Store's operations.
type PlayerState struct {
	Fame        int       `json:"fame"`
	Money       int       `json:"money"`
	WantedLevel int       `json:"wanted_level"`
	Inventory   Inventory `json:"inventory"`
	Stats       Stats     `json:"stats"`
}

// NewPlayerState creates a fresh player with the default loadout.
func NewPlayerState() *PlayerState {
	return &PlayerState{
		Money: StartingMoney,
		Inventory: Inventory{
			Colors:         []string{DefaultColor},
			Designs:        []string{DefaultDesign},
			SelectedColor:  DefaultColor,
			SelectedDesign: DefaultDesign,
		},
	}
}

// ownsColor reports whether the color is unlocked.
func (p *PlayerState) ownsColor(id string) bool {
	return contains(p.Inventory.Colors, id)
}

// ownsDesign reports whether the design is unlocked.
func (p *PlayerState) ownsDesign(id string) bool {
	return contains(p.Inventory.Designs, id)
}

func contains(items []string, id string) bool {
	for _, v := range items {
		if v == id {
			return true
		}
	}
	return false
}

// User is the current-user pointer persisted alongside the gallery.
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}
